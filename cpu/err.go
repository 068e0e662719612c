package cpu

import (
	"errors"

	"github.com/ezrec/minicpu/translate"
)

var f = translate.From

var (
	// Operand errors
	ErrLiteralInvalid = errors.New(f("not a hexadecimal literal"))
	ErrFlagInvalid    = errors.New(f("not a number"))

	// Encoding and decoding errors
	ErrLayoutMismatch = errors.New(f("opcode does not use this layout"))
	ErrOpcodeReserved = errors.New(f("opcode reserved"))
	ErrTypeField      = errors.New(f("data type invalid for opcode"))
	ErrConditionField = errors.New(f("condition invalid"))
)

// ErrTokenCount is the number of whitespace separated tokens found on a
// line that should hold exactly a mnemonic and an operand list.
type ErrTokenCount int

func (err ErrTokenCount) Error() string {
	return f("expected mnemonic and operand list, found %d tokens", int(err))
}

// ErrOperandCount is the number of operands found on a line.
type ErrOperandCount int

func (err ErrOperandCount) Error() string {
	return f("expected 4 operands, found %d", int(err))
}

// ErrSyntax reports a malformed line or operand.
type ErrSyntax struct {
	Text string
	Err  error
}

func (err *ErrSyntax) Error() string {
	return f("'%v' %v", err.Text, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrMnemonicUnknown string

func (err ErrMnemonicUnknown) Error() string {
	return f("mnemonic '%v' unknown", string(err))
}

type ErrRegisterUnknown string

func (err ErrRegisterUnknown) Error() string {
	return f("register '%v' unknown", string(err))
}

type ErrTypeUnknown string

func (err ErrTypeUnknown) Error() string {
	return f("data type '%v' unknown", string(err))
}

type ErrConditionUnknown string

func (err ErrConditionUnknown) Error() string {
	if len(err) == 0 {
		return f("condition missing")
	}
	return f("condition '%v' unknown", string(err))
}

// ErrRange reports a value that does not fit its field.
type ErrRange struct {
	Text  string // Literal as written, or the field name.
	Value int64  // Attempted value, saturated to int64.
	Min   int64  // Smallest allowed value.
	Max   int64  // Largest allowed value.
}

func (err *ErrRange) Error() string {
	return f("%v out of range, value %#x not in %#x..%#x", err.Text, err.Value, err.Min, err.Max)
}

// ErrAddressMode reports an operand that may not be used as an address.
type ErrAddressMode struct {
	Mnemonic string
	Operand  string
}

func (err *ErrAddressMode) Error() string {
	return f("%v operand '%v' may not be an address", err.Mnemonic, err.Operand)
}

// Diagnostic is a line that failed to assemble.
type Diagnostic struct {
	LineNo int
	Line   string
	Err    error
}

func (err Diagnostic) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err Diagnostic) Unwrap() error {
	return err.Err
}
