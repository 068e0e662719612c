package cpu

import (
	"fmt"
	"iter"
	"strings"
)

// CodeLayout selects one of the three 32-bit instruction layouts.
type CodeLayout int

//go:generate go tool stringer -linecomment -type=CodeLayout
const (
	LAYOUT_STANDARD = CodeLayout(0) // standard
	LAYOUT_LOAD     = CodeLayout(1) // load
	LAYOUT_JUMP     = CodeLayout(2) // jump
)

// CodeSpace is the data type numbering space an opcode uses.
type CodeSpace int

//go:generate go tool stringer -linecomment -type=CodeSpace
const (
	SPACE_NONE  = CodeSpace(0) // none
	SPACE_INT   = CodeSpace(1) // int
	SPACE_FLOAT = CodeSpace(2) // float
)

// CodeCond is a jump condition code.
type CodeCond int

//go:generate go tool stringer -linecomment -type=CodeCond
const (
	COND_FALSE = CodeCond(0)  // FALSE
	COND_TRUE  = CodeCond(1)  // TRUE
	COND_NEQ   = CodeCond(2)  // NEQ
	COND_POS   = CodeCond(3)  // POS
	COND_NZ    = CodeCond(4)  // NZ
	COND_EQ    = CodeCond(5)  // EQ
	COND_NE    = CodeCond(6)  // NE
	COND_LT    = CodeCond(7)  // LT
	COND_GT    = CodeCond(8)  // GT
	COND_LE    = CodeCond(9)  // LE
	COND_GE    = CodeCond(10) // GE
)

// Valid returns true if the condition code is defined.
func (cond CodeCond) Valid() bool {
	return cond >= COND_FALSE && cond <= COND_GE
}

// CodeType is a data type. Integer and float types share field encodings,
// so the space of the opcode decides which one a field value means.
type CodeType int

//go:generate go tool stringer -linecomment -type=CodeType
const (
	TYPE_U8     = CodeType(0)  // u8
	TYPE_U16    = CodeType(1)  // u16
	TYPE_U32    = CodeType(2)  // u32
	TYPE_U64    = CodeType(3)  // u64
	TYPE_S8     = CodeType(4)  // s8
	TYPE_S16    = CodeType(5)  // s16
	TYPE_S32    = CodeType(6)  // s32
	TYPE_S64    = CodeType(7)  // s64
	TYPE_FLOAT  = CodeType(8)  // float
	TYPE_DOUBLE = CodeType(9)  // double
	TYPE_IGNORE = CodeType(10) // -
)

// Space returns the numbering space the type belongs to.
func (typ CodeType) Space() CodeSpace {
	switch {
	case typ >= TYPE_U8 && typ <= TYPE_S64:
		return SPACE_INT
	case typ == TYPE_FLOAT || typ == TYPE_DOUBLE:
		return SPACE_FLOAT
	}
	return SPACE_NONE
}

// Field returns the 3-bit field encoding of the type.
func (typ CodeType) Field() uint32 {
	switch typ {
	case TYPE_FLOAT, TYPE_IGNORE:
		return 0
	case TYPE_DOUBLE:
		return 1
	}
	return uint32(typ)
}

// Type decodes a data type field in this space.
func (space CodeSpace) Type(field uint32) (typ CodeType, err error) {
	switch {
	case space == SPACE_INT && field <= uint32(TYPE_S64):
		typ = CodeType(field)
	case space == SPACE_FLOAT && field == 0:
		typ = TYPE_FLOAT
	case space == SPACE_FLOAT && field == 1:
		typ = TYPE_DOUBLE
	case space == SPACE_NONE && field == 0:
		typ = TYPE_IGNORE
	default:
		err = ErrTypeField
	}
	return
}

// CodeOp is an opcode of the Standard and Jump layouts.
type CodeOp int

const (
	OP_MOVE CodeOp = iota
	OP_MEMSET
	OP_MEMCPY
	OP_POP
	OP_PUSH
	OP_SPSET
	OP_SPGET
	OP_SAVE
	OP_LOAD_STATE
	OP_CMP
	OP_JUMP
	OP_RET
	OP_SWAP
	OP_PAUSE
	OP_SETINT
	OP_CLRINT
	OP_OR
	OP_XOR
	OP_AND
	OP_NOT
	OP_SETBIT
	OP_CLRBIT
	OP_LSL
	OP_LSR
	OP_ASR
	OP_ADD
	OP_SUB
	OP_MUL
	OP_DIV
	OP_DIVR
	OP_RAND
	OP_LERP
	OP_MAX
	OP_MIN
	OP_FADD
	OP_FSUB
	OP_FMUL
	OP_FDIV
	OP_FRAC
	OP_FRAND
	OP_FLERP
	OP_FMAX
	OP_FMIN
	OP_FSQRT
	OP_FSIN
	OP_FCOS
	OP_FTAN
	OP_FATAN

	OP_RESERVED_00
	OP_RESERVED_01
	OP_RESERVED_02
	OP_RESERVED_03
	OP_RESERVED_04
	OP_RESERVED_05
	OP_RESERVED_06
	OP_RESERVED_07
	OP_RESERVED_08
	OP_RESERVED_09
	OP_RESERVED_10
	OP_RESERVED_11
	OP_RESERVED_12
	OP_RESERVED_13
	OP_RESERVED_14
	OP_RESERVED_15

	NUMBER_OPERATIONS

	// Live opcodes must stay below this boundary.
	OP_LAST = OP_RESERVED_11

	// Opcode of a Load layout word, which has no opcode field.
	OP_NONE = CodeOp(-1)
)

// Reserved returns true if the opcode is a reserved slot.
func (op CodeOp) Reserved() bool {
	return op >= OP_RESERVED_00 && op < NUMBER_OPERATIONS
}

// Valid returns true if the opcode is a live opcode.
func (op CodeOp) Valid() bool {
	return op >= OP_MOVE && op < OP_RESERVED_00
}

// Space returns the data type space of the opcode.
func (op CodeOp) Space() CodeSpace {
	if !op.Valid() {
		return SPACE_NONE
	}
	return opTable[op].Space
}

// String returns the mnemonic of the opcode.
func (op CodeOp) String() string {
	switch {
	case op.Valid():
		return opTable[op].Mnemonic
	case op.Reserved():
		return fmt.Sprintf("RESERVED_%02d", int(op-OP_RESERVED_00))
	case op == OP_NONE:
		return "-"
	}
	return fmt.Sprintf("CodeOp(%d)", int(op))
}

// OpInfo describes how a mnemonic is encoded.
type OpInfo struct {
	Mnemonic string     // Mnemonic text, upper case.
	Op       CodeOp     // Opcode, or OP_NONE for the Load layout.
	Layout   CodeLayout // Layout used to encode the mnemonic.
	Space    CodeSpace  // Data type space of the first operand.
}

// Sentinel mnemonics that select a layout other than Standard.
const (
	MNEMONIC_LOAD = "LOAD"
	MNEMONIC_JUMP = "JUMP"
)

// opTable is indexed by opcode.
var opTable = [...]OpInfo{
	{"MOVE", OP_MOVE, LAYOUT_STANDARD, SPACE_INT},
	{"MEMSET", OP_MEMSET, LAYOUT_STANDARD, SPACE_INT},
	{"MEMCPY", OP_MEMCPY, LAYOUT_STANDARD, SPACE_INT},
	{"POP", OP_POP, LAYOUT_STANDARD, SPACE_NONE},
	{"PUSH", OP_PUSH, LAYOUT_STANDARD, SPACE_NONE},
	{"SPSET", OP_SPSET, LAYOUT_STANDARD, SPACE_NONE},
	{"SPGET", OP_SPGET, LAYOUT_STANDARD, SPACE_NONE},
	{"SAVE", OP_SAVE, LAYOUT_STANDARD, SPACE_NONE},
	{"LOADSTATE", OP_LOAD_STATE, LAYOUT_STANDARD, SPACE_NONE},
	{"CMP", OP_CMP, LAYOUT_STANDARD, SPACE_INT},
	{MNEMONIC_JUMP, OP_JUMP, LAYOUT_JUMP, SPACE_NONE},
	{"RET", OP_RET, LAYOUT_STANDARD, SPACE_NONE},
	{"SWAP", OP_SWAP, LAYOUT_STANDARD, SPACE_INT},
	{"PAUSE", OP_PAUSE, LAYOUT_STANDARD, SPACE_INT},
	{"SETINT", OP_SETINT, LAYOUT_STANDARD, SPACE_NONE},
	{"CLRINT", OP_CLRINT, LAYOUT_STANDARD, SPACE_NONE},
	{"OR", OP_OR, LAYOUT_STANDARD, SPACE_INT},
	{"XOR", OP_XOR, LAYOUT_STANDARD, SPACE_INT},
	{"AND", OP_AND, LAYOUT_STANDARD, SPACE_INT},
	{"NOT", OP_NOT, LAYOUT_STANDARD, SPACE_INT},
	{"SETBIT", OP_SETBIT, LAYOUT_STANDARD, SPACE_INT},
	{"CLRBIT", OP_CLRBIT, LAYOUT_STANDARD, SPACE_INT},
	{"LSL", OP_LSL, LAYOUT_STANDARD, SPACE_INT},
	{"LSR", OP_LSR, LAYOUT_STANDARD, SPACE_INT},
	{"ASR", OP_ASR, LAYOUT_STANDARD, SPACE_INT},
	{"ADD", OP_ADD, LAYOUT_STANDARD, SPACE_INT},
	{"SUB", OP_SUB, LAYOUT_STANDARD, SPACE_INT},
	{"MUL", OP_MUL, LAYOUT_STANDARD, SPACE_INT},
	{"DIV", OP_DIV, LAYOUT_STANDARD, SPACE_INT},
	{"DIVR", OP_DIVR, LAYOUT_STANDARD, SPACE_INT},
	{"RAND", OP_RAND, LAYOUT_STANDARD, SPACE_INT},
	{"LERP", OP_LERP, LAYOUT_STANDARD, SPACE_INT},
	{"MAX", OP_MAX, LAYOUT_STANDARD, SPACE_INT},
	{"MIN", OP_MIN, LAYOUT_STANDARD, SPACE_INT},
	{"FADD", OP_FADD, LAYOUT_STANDARD, SPACE_FLOAT},
	{"FSUB", OP_FSUB, LAYOUT_STANDARD, SPACE_FLOAT},
	{"FMUL", OP_FMUL, LAYOUT_STANDARD, SPACE_FLOAT},
	{"FDIV", OP_FDIV, LAYOUT_STANDARD, SPACE_FLOAT},
	{"FRAC", OP_FRAC, LAYOUT_STANDARD, SPACE_FLOAT},
	{"FRAND", OP_FRAND, LAYOUT_STANDARD, SPACE_FLOAT},
	{"FLERP", OP_FLERP, LAYOUT_STANDARD, SPACE_FLOAT},
	{"FMAX", OP_FMAX, LAYOUT_STANDARD, SPACE_FLOAT},
	{"FMIN", OP_FMIN, LAYOUT_STANDARD, SPACE_FLOAT},
	{"FSQRT", OP_FSQRT, LAYOUT_STANDARD, SPACE_FLOAT},
	{"FSIN", OP_FSIN, LAYOUT_STANDARD, SPACE_FLOAT},
	{"FCOS", OP_FCOS, LAYOUT_STANDARD, SPACE_FLOAT},
	{"FTAN", OP_FTAN, LAYOUT_STANDARD, SPACE_FLOAT},
	{"FATAN", OP_FATAN, LAYOUT_STANDARD, SPACE_FLOAT},
}

// The table must cover exactly the live opcodes.
var _ [0]struct{} = [len(opTable) - int(OP_RESERVED_00)]struct{}{}

var loadInfo = OpInfo{MNEMONIC_LOAD, OP_NONE, LAYOUT_LOAD, SPACE_NONE}

// opMap maps lower case mnemonics to their table entry.
var opMap = func() map[string]OpInfo {
	ops := make(map[string]OpInfo, len(opTable))
	for _, info := range opTable {
		ops[strings.ToLower(info.Mnemonic)] = info
	}
	return ops
}()

// Ops returns the live opcodes in opcode order.
func Ops() iter.Seq[OpInfo] {
	return func(yield func(OpInfo) bool) {
		for _, info := range opTable {
			if !yield(info) {
				return
			}
		}
	}
}

// Select chooses the layout and opcode for a mnemonic, ignoring case.
func Select(mnemonic string) (info OpInfo, err error) {
	switch {
	case strings.EqualFold(mnemonic, MNEMONIC_LOAD):
		info = loadInfo
		return
	case strings.EqualFold(mnemonic, MNEMONIC_JUMP):
		info = opTable[OP_JUMP]
		return
	}

	info, ok := opMap[strings.ToLower(mnemonic)]
	if !ok {
		err = ErrMnemonicUnknown(mnemonic)
		return
	}

	return
}
