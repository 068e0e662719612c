package cpu

import (
	"bufio"
	"io"
	"iter"
	"math"
	"strings"
)

// COMMENT starts a comment that runs to the end of the line.
const COMMENT = "//"

// OPERAND_COUNT is the number of operands every instruction takes, even
// when its layout does not use them all.
const OPERAND_COUNT = 4

// Tokens is a lexed source line.
type Tokens struct {
	Mnemonic string
	Operands [OPERAND_COUNT]string
}

// Lex splits a source line into a mnemonic and its operands. Lines that are
// empty once the comment is removed return ok == false and no error.
func Lex(line string) (tokens Tokens, ok bool, err error) {
	text, _, _ := strings.Cut(line, COMMENT)
	text = strings.TrimSpace(text)
	if len(text) == 0 {
		return
	}

	words := strings.Fields(text)
	if len(words) != 2 {
		err = &ErrSyntax{Text: text, Err: ErrTokenCount(len(words))}
		return
	}

	operands := strings.Split(words[1], ",")
	if len(operands) != OPERAND_COUNT {
		err = &ErrSyntax{Text: words[1], Err: ErrOperandCount(len(operands))}
		return
	}

	tokens.Mnemonic = words[0]
	for n, operand := range operands {
		tokens.Operands[n] = strings.TrimSpace(operand)
	}
	ok = true

	return
}

// Line is a numbered line of source text.
type Line struct {
	LineNo int
	Text   string
}

// Lines reads the lines of an input stream, numbered from 1. Line length
// is only limited by memory. The error pointer, if not nil, receives any
// read error once the sequence ends.
func Lines(input io.Reader, errp *error) iter.Seq[Line] {
	return func(yield func(Line) bool) {
		scanner := bufio.NewScanner(input)
		scanner.Buffer(nil, math.MaxInt)
		lineno := 0
		for scanner.Scan() {
			lineno += 1
			if !yield(Line{LineNo: lineno, Text: scanner.Text()}) {
				return
			}
		}
		if errp != nil {
			*errp = scanner.Err()
		}
	}
}

// SourceLines returns the lines of source text, numbered from 1.
func SourceLines(source string) iter.Seq[Line] {
	return func(yield func(Line) bool) {
		lineno := 0
		for text := range strings.Lines(source) {
			lineno += 1
			text = strings.TrimSuffix(text, "\n")
			text = strings.TrimSuffix(text, "\r")
			if !yield(Line{LineNo: lineno, Text: text}) {
				return
			}
		}
	}
}
