package cpu

import (
	"errors"
	"iter"
)

// Program is the output of an assembler run.
type Program struct {
	Instructions []Instruction // Assembled lines, in source order.
	Diagnostics  []Diagnostic  // Lines that failed, in source order.
}

// Words returns the machine words of the program.
func (prog *Program) Words() iter.Seq[Word] {
	return func(yield func(Word) bool) {
		for _, ins := range prog.Instructions {
			if !yield(ins.Word) {
				return
			}
		}
	}
}

// Binary returns the machine words of the program as plain integers.
func (prog *Program) Binary() (bins []uint32) {
	for word := range prog.Words() {
		bins = append(bins, uint32(word))
	}

	return
}

// Err returns all diagnostics joined into one error, or nil.
func (prog *Program) Err() error {
	errs := make([]error, len(prog.Diagnostics))
	for n, diag := range prog.Diagnostics {
		errs[n] = diag
	}
	return errors.Join(errs...)
}

// Find returns the instruction assembled from a source line.
func (prog *Program) Find(lineNo int) (ins *Instruction, ok bool) {
	for n := range prog.Instructions {
		if prog.Instructions[n].LineNo == lineNo {
			return &prog.Instructions[n], true
		}
	}

	return
}
