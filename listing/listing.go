// Package listing writes assembled programs as machine images or as a
// human readable table.
package listing

import (
	"bufio"
	"cmp"
	"encoding/binary"
	"fmt"
	"io"
	"iter"
	"slices"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/ezrec/minicpu/cpu"
	"github.com/ezrec/minicpu/internal"
	"github.com/ezrec/minicpu/translate"
)

var f = translate.From

// Format is an output format.
type Format string

const (
	FORMAT_BIN  = Format("bin")  // Little endian 32-bit words.
	FORMAT_HEX  = Format("hex")  // One hexadecimal word per line.
	FORMAT_LIST = Format("list") // Table of lines, words and decoded text.
)

// Formats lists the known output formats.
var Formats = []Format{FORMAT_BIN, FORMAT_HEX, FORMAT_LIST}

type ErrFormatUnknown string

func (err ErrFormatUnknown) Error() string {
	return f("output format '%v' unknown", string(err))
}

// ParseFormat returns the format named by text, ignoring case.
func ParseFormat(text string) (format Format, err error) {
	format = Format(strings.ToLower(text))
	if !slices.Contains(Formats, format) {
		err = ErrFormatUnknown(text)
	}
	return
}

// WriteBinary writes each word as four little endian bytes.
func WriteBinary(w io.Writer, words iter.Seq[cpu.Word]) (err error) {
	buff := bufio.NewWriter(w)
	for word := range words {
		err = binary.Write(buff, binary.LittleEndian, uint32(word))
		if err != nil {
			return
		}
	}
	return buff.Flush()
}

// WriteHex writes each word as 0x-prefixed hexadecimal, one per line.
func WriteHex(w io.Writer, words iter.Seq[cpu.Word]) (err error) {
	buff := bufio.NewWriter(w)
	for word := range words {
		_, err = fmt.Fprintf(buff, "0x%08x\n", uint32(word))
		if err != nil {
			return
		}
	}
	return buff.Flush()
}

// row is one source line of a listing.
type row struct {
	lineNo int
	cells  table.Row
}

// rows returns the listing rows of the assembled lines, then of the failed
// lines.
func rows(prog *cpu.Program) iter.Seq[row] {
	assembled := func(yield func(row) bool) {
		for addr, ins := range internal.Enumerate(slices.Values(prog.Instructions)) {
			cells := table.Row{
				ins.LineNo,
				fmt.Sprintf("%04x", addr),
				fmt.Sprintf("%08x", uint32(ins.Word)),
				ins.Format.Layout(),
				ins.Format,
				strings.TrimSpace(ins.Line),
			}
			if !yield(row{lineNo: ins.LineNo, cells: cells}) {
				return
			}
		}
	}

	failed := func(yield func(row) bool) {
		for _, diag := range prog.Diagnostics {
			cells := table.Row{
				diag.LineNo,
				"",
				"",
				"",
				f("error: %v", diag.Err),
				strings.TrimSpace(diag.Line),
			}
			if !yield(row{lineNo: diag.LineNo, cells: cells}) {
				return
			}
		}
	}

	return internal.Concat(assembled, failed)
}

// WriteTable writes a table of the program in source line order, with
// failed lines shown in place.
func WriteTable(w io.Writer, prog *cpu.Program) (err error) {
	lines := slices.SortedStableFunc(rows(prog), func(a, b row) int {
		return cmp.Compare(a.lineNo, b.lineNo)
	})

	tw := table.NewWriter()
	tw.AppendHeader(table.Row{f("Line"), f("Addr"), f("Word"), f("Layout"), f("Instruction"), f("Source")})
	for _, line := range lines {
		tw.AppendRow(line.cells)
	}
	tw.AppendFooter(table.Row{"", "", len(prog.Instructions), "", f("%d errors", len(prog.Diagnostics)), ""})

	_, err = io.WriteString(w, tw.Render()+"\n")
	return
}

// WriteOpcodes writes a table of every mnemonic and its encoding.
func WriteOpcodes(w io.Writer) (err error) {
	load, err := cpu.Select(cpu.MNEMONIC_LOAD)
	if err != nil {
		return
	}

	tw := table.NewWriter()
	tw.AppendHeader(table.Row{f("Mnemonic"), f("Opcode"), f("Layout"), f("Types")})
	for info := range internal.Concat(cpu.Ops(), slices.Values([]cpu.OpInfo{load})) {
		opcode := "-"
		if info.Op != cpu.OP_NONE {
			opcode = fmt.Sprintf("%02x", int(info.Op))
		}
		tw.AppendRow(table.Row{info.Mnemonic, opcode, info.Layout, info.Space})
	}

	_, err = io.WriteString(w, tw.Render()+"\n")
	return
}

// Write writes the program in the given format.
func Write(w io.Writer, format Format, prog *cpu.Program) (err error) {
	switch format {
	case FORMAT_BIN:
		err = WriteBinary(w, prog.Words())
	case FORMAT_HEX:
		err = WriteHex(w, prog.Words())
	case FORMAT_LIST:
		err = WriteTable(w, prog)
	default:
		err = ErrFormatUnknown(format)
	}
	return
}
