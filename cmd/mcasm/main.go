// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/tebeka/atexit"

	"github.com/ezrec/minicpu/config"
	"github.com/ezrec/minicpu/cpu"
	"github.com/ezrec/minicpu/listing"
	"github.com/ezrec/minicpu/translate"
)

// options applies the configuration file, if any, under the explicitly
// set command line flags.
func options(flags *flag.FlagSet, cfg config.Config, configFile string) (config.Config, error) {
	if len(configFile) == 0 {
		return cfg, nil
	}

	loaded, err := config.Load(configFile, nil)
	if err != nil {
		return cfg, err
	}

	flags.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "f":
			loaded.Format = cfg.Format
		case "o":
			loaded.Output = cfg.Output
		case "v":
			loaded.Verbose = cfg.Verbose
		case "j":
			loaded.Workers = cfg.Workers
		case "strict":
			loaded.Strict = cfg.Strict
		}
	})

	return loaded, nil
}

// banner describes the run for verbose logging.
func banner(cfg config.Config) string {
	return fmt.Sprintf("locale %v, format %v, workers %v, strict %v", translate.Tag, cfg.Format, cfg.Workers, cfg.Strict)
}

// open returns the input stream and the name diagnostics report it as.
func open(args []string) (input io.Reader, name string, err error) {
	if len(args) == 0 || args[0] == "-" {
		return os.Stdin, "<stdin>", nil
	}

	inf, err := os.Open(args[0])
	if err != nil {
		return
	}
	atexit.Register(func() { inf.Close() })

	return inf, args[0], nil
}

// create returns the output stream.
func create(output string) (w io.Writer, err error) {
	if output == "-" {
		return os.Stdout, nil
	}

	ouf, err := os.Create(output)
	if err != nil {
		return
	}
	atexit.Register(func() {
		err := ouf.Close()
		if err != nil {
			log.Printf("%v: %v", output, err)
		}
	})

	return ouf, nil
}

func main() {
	log.SetFlags(0)
	log.SetPrefix(filepath.Base(os.Args[0]) + ": ")

	cfg := config.Default()

	var configFile string
	var ops bool

	flags := flag.CommandLine
	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), "usage: %v [options] [file.asm]\n", os.Args[0])
		flags.PrintDefaults()
	}
	flags.StringVar(&configFile, "config", "", "Starlark options file")
	flags.StringVar(&cfg.Format, "f", cfg.Format, "Output format: bin, hex or list")
	flags.StringVar(&cfg.Output, "o", cfg.Output, "Output file")
	flags.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "Verbose mode")
	flags.IntVar(&cfg.Workers, "j", cfg.Workers, "Lines to assemble concurrently")
	flags.BoolVar(&cfg.Strict, "strict", cfg.Strict, "Write no output if any line fails")
	flags.BoolVar(&ops, "ops", false, "List the mnemonics and exit")

	flag.Parse()

	if flag.NArg() > 1 {
		log.Printf("unknown arguments: %v", flag.Args()[1:])
		flags.Usage()
		atexit.Exit(2)
	}

	if ops {
		err := listing.WriteOpcodes(os.Stdout)
		if err != nil {
			atexit.Fatal(err)
		}
		atexit.Exit(0)
	}

	cfg, err := options(flags, cfg, configFile)
	if err != nil {
		atexit.Fatalf("%v: %v", configFile, err)
	}

	if cfg.Verbose {
		log.Print(banner(cfg))
	}

	format, err := listing.ParseFormat(cfg.Format)
	if err != nil {
		atexit.Fatal(err)
	}

	input, name, err := open(flag.Args())
	if err != nil {
		atexit.Fatal(err)
	}

	asm := &cpu.Assembler{
		Verbose: cfg.Verbose,
		Workers: cfg.Workers,
	}
	prog, err := asm.Parse(input)
	if err != nil {
		atexit.Fatalf("%v: %v", name, err)
	}

	for _, diag := range prog.Diagnostics {
		log.Printf("%v:%v: %v", name, diag.LineNo, diag.Err)
	}

	rc := 0
	if len(prog.Diagnostics) != 0 {
		rc = 1
		if cfg.Strict {
			atexit.Exit(rc)
		}
	}

	output, err := create(cfg.Output)
	if err != nil {
		atexit.Fatal(err)
	}

	err = listing.Write(output, format, prog)
	if err != nil {
		atexit.Fatalf("%v: %v", cfg.Output, err)
	}

	atexit.Exit(rc)
}
