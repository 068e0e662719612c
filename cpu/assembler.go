// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"io"
	"log"
	"slices"

	"golang.org/x/sync/errgroup"
)

// Assembler translates MiniCPU assembly text into machine words. It is not
// a macro assembler: every line is exactly one instruction.
type Assembler struct {
	Verbose bool // If set, verbosely logs the assembler actions.
	Workers int  // If more than one, lines are assembled concurrently.
}

// Instruction is an assembled line.
type Instruction struct {
	LineNo   int                   // Source line number.
	Line     string                // Source line text.
	Mnemonic string                // Mnemonic as written.
	Operands [OPERAND_COUNT]string // Operands as written.
	Format   Format                // Resolved layout and field values.
	Word     Word                  // Packed machine word.
}

// result is the outcome of assembling one line.
type result struct {
	ins  Instruction
	ok   bool
	diag *Diagnostic
}

// resolveStandard resolves the operands of a Standard layout instruction:
// data type, source, destination, constant.
func resolveStandard(info OpInfo, operands [OPERAND_COUNT]string) (format Format, err error) {
	ins := Standard{Op: info.Op}

	ins.Type, err = ResolveType(operands[0], info.Space)
	if err != nil {
		return
	}

	ins.Source, err = ResolveRegister(operands[1])
	if err != nil {
		return
	}

	ins.Dest, err = ResolveRegister(operands[2])
	if err != nil {
		return
	}

	constant, err := ResolveUnsigned(operands[3], STANDARD_CONST_BITS)
	if err != nil {
		return
	}
	ins.Constant = uint16(constant)

	format = ins
	return
}

// resolveLoad resolves the operands of a Load layout instruction:
// or-with-dest, shift, destination, constant.
func resolveLoad(operands [OPERAND_COUNT]string) (format Format, err error) {
	var ins Load

	or, err := ResolveFlag(operands[0], OR_BITS)
	if err != nil {
		return
	}
	ins.OrWithDest = or == 1

	shift, err := ResolveFlag(operands[1], SHIFT_BITS)
	if err != nil {
		return
	}
	ins.Shift = uint8(shift)

	ins.Dest, err = ResolveRegister(operands[2])
	if err != nil {
		return
	}

	ins.Constant, err = ResolveUnsigned(operands[3], LOAD_CONST_BITS)
	if err != nil {
		return
	}

	format = ins
	return
}

// resolveJump resolves the operands of a Jump layout instruction:
// condition, pc-relative, offset register, constant.
func resolveJump(operands [OPERAND_COUNT]string) (format Format, err error) {
	var ins Jump

	ins.Cond, err = ResolveCondition(operands[0])
	if err != nil {
		return
	}

	pc, err := ResolveFlag(operands[1], PC_RELATIVE_BITS)
	if err != nil {
		return
	}
	ins.PCRelative = pc == 1

	ins.Offset, err = ResolveRegister(operands[2])
	if err != nil {
		return
	}

	constant, err := ResolveSigned(operands[3], JUMP_CONST_BITS)
	if err != nil {
		return
	}
	ins.Constant = int16(constant)

	format = ins
	return
}

// Assemble assembles a single line. Blank and comment-only lines return
// ok == false and no error.
func Assemble(line string) (ins Instruction, ok bool, err error) {
	tokens, ok, err := Lex(line)
	if !ok || err != nil {
		return
	}
	ok = false

	info, err := Select(tokens.Mnemonic)
	if err != nil {
		return
	}

	var format Format
	switch info.Layout {
	case LAYOUT_LOAD:
		format, err = resolveLoad(tokens.Operands)
	case LAYOUT_JUMP:
		format, err = resolveJump(tokens.Operands)
	default:
		format, err = resolveStandard(info, tokens.Operands)
	}
	if err != nil {
		return
	}

	word, err := format.Encode()
	if err != nil {
		return
	}

	ins = Instruction{
		Line:     line,
		Mnemonic: tokens.Mnemonic,
		Operands: tokens.Operands,
		Format:   format,
		Word:     word,
	}
	ok = true

	return
}

// assembleLine assembles a numbered line, converting any failure into a
// diagnostic.
func assembleLine(line Line) (res result) {
	ins, ok, err := Assemble(line.Text)
	if err != nil {
		res.diag = &Diagnostic{LineNo: line.LineNo, Line: line.Text, Err: err}
		return
	}

	ins.LineNo = line.LineNo
	res.ins = ins
	res.ok = ok

	return
}

// assemble assembles all the lines. Results are collected by index, so the
// program keeps source order whether or not lines run concurrently.
func (asm *Assembler) assemble(lines []Line) (prog *Program) {
	results := make([]result, len(lines))

	if asm.Workers > 1 {
		var group errgroup.Group
		group.SetLimit(asm.Workers)
		for n, line := range lines {
			group.Go(func() error {
				results[n] = assembleLine(line)
				return nil
			})
		}
		// Line failures are results, never group errors.
		_ = group.Wait()
	} else {
		for n, line := range lines {
			results[n] = assembleLine(line)
		}
	}

	prog = &Program{}
	for n, res := range results {
		if asm.Verbose {
			log.Printf("%v: %v\n", lines[n].LineNo, lines[n].Text)
		}
		switch {
		case res.diag != nil:
			if asm.Verbose {
				log.Printf("%v: %v\n", lines[n].LineNo, res.diag.Err)
			}
			prog.Diagnostics = append(prog.Diagnostics, *res.diag)
		case res.ok:
			if asm.Verbose {
				log.Printf("%v: %#08x %v\n", lines[n].LineNo, uint32(res.ins.Word), res.ins.Format)
			}
			prog.Instructions = append(prog.Instructions, res.ins)
		}
	}

	return
}

// Compile assembles source text. It never fails: lines that do not
// assemble are reported in the program's diagnostics.
func (asm *Assembler) Compile(source string) (prog *Program) {
	return asm.assemble(slices.Collect(SourceLines(source)))
}

// Parse reads an input stream and assembles it. The error is only set if
// the input could not be read.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	lines := slices.Collect(Lines(input, &err))
	if err != nil {
		return
	}

	prog = asm.assemble(lines)

	return
}
