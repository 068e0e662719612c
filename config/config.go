// Package config loads mcasm options from a Starlark file.
//
// The file is ordinary Starlark. Its top level assignments set options:
//
//	format = "list"
//	output = "boot.hex"
//	verbose = False
//	workers = ncpu
//	strict = True
//
// Names starting with an underscore are private to the file.
package config

import (
	"errors"
	"runtime"
	"strings"

	"github.com/ezrec/minicpu/translate"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

var f = translate.From

var ErrWorkers = errors.New(f("workers must not be negative"))

// ErrKeyUnknown is a top level name that is not an option.
type ErrKeyUnknown string

func (err ErrKeyUnknown) Error() string {
	return f("option '%v' unknown", string(err))
}

// ErrValue is an option assigned a value of the wrong type.
type ErrValue struct {
	Key  string
	Want string
	Got  string
}

func (err *ErrValue) Error() string {
	return f("option '%v' must be %v, not %v", err.Key, err.Want, err.Got)
}

// Config holds the options of an mcasm run.
type Config struct {
	Format  string // Output format: bin, hex or list.
	Output  string // Output file, '-' for standard output.
	Verbose bool   // Log each assembled line.
	Workers int    // Concurrent line assemblers; 0 or 1 assembles in order.
	Strict  bool   // Write no output when any line fails.
}

// Default returns the options used when no file is given.
func Default() Config {
	return Config{
		Format:  "hex",
		Output:  "-",
		Workers: 1,
	}
}

// predeclared are the names visible to a configuration file.
func predeclared() starlark.StringDict {
	return starlark.StringDict{
		"ncpu": starlark.MakeInt(runtime.NumCPU()),
	}
}

func asString(key string, value starlark.Value) (str string, err error) {
	str, ok := starlark.AsString(value)
	if !ok {
		err = &ErrValue{Key: key, Want: "string", Got: value.Type()}
	}
	return
}

func asBool(key string, value starlark.Value) (b bool, err error) {
	st_bool, ok := value.(starlark.Bool)
	if !ok {
		err = &ErrValue{Key: key, Want: "bool", Got: value.Type()}
		return
	}
	b = bool(st_bool)
	return
}

func asInt(key string, value starlark.Value) (n int, err error) {
	st_int, ok := value.(starlark.Int)
	if !ok {
		err = &ErrValue{Key: key, Want: "int", Got: value.Type()}
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = &ErrValue{Key: key, Want: "int", Got: st_int.String()}
		return
	}
	n = int(st_int64)
	return
}

// Load evaluates a configuration file over the defaults. If src is not nil
// it is used as the file contents, as for starlark.ExecFile.
func Load(filename string, src any) (cfg Config, err error) {
	cfg = Default()

	thread := &starlark.Thread{Name: filename}
	opts := syntax.FileOptions{}
	globals, err := starlark.ExecFileOptions(&opts, thread, filename, src, predeclared())
	if err != nil {
		return
	}

	for _, key := range globals.Keys() {
		value := globals[key]
		switch {
		case strings.HasPrefix(key, "_"):
		case key == "format":
			cfg.Format, err = asString(key, value)
		case key == "output":
			cfg.Output, err = asString(key, value)
		case key == "verbose":
			cfg.Verbose, err = asBool(key, value)
		case key == "workers":
			cfg.Workers, err = asInt(key, value)
			if err == nil && cfg.Workers < 0 {
				err = ErrWorkers
			}
		case key == "strict":
			cfg.Strict, err = asBool(key, value)
		default:
			err = ErrKeyUnknown(key)
		}
		if err != nil {
			return
		}
	}

	return
}
