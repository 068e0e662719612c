package cpu

import (
	"fmt"
	"strings"
)

// Field widths, in bits.
const (
	IS_LOAD_BITS        = 1
	OPCODE_BITS         = 6
	REGISTER_BITS       = 4
	ADDRESS_BITS        = 1
	TYPE_BITS           = 3
	STANDARD_CONST_BITS = 12
	OR_BITS             = 1
	SHIFT_BITS          = 2
	LOAD_CONST_BITS     = 24
	COND_BITS           = 4
	PC_RELATIVE_BITS    = 1
	JUMP_CONST_BITS     = 16
)

const (
	STANDARD_BITS = IS_LOAD_BITS + OPCODE_BITS + REGISTER_BITS + ADDRESS_BITS + REGISTER_BITS + ADDRESS_BITS + TYPE_BITS + STANDARD_CONST_BITS
	LOAD_BITS     = IS_LOAD_BITS + OR_BITS + SHIFT_BITS + REGISTER_BITS + LOAD_CONST_BITS
	JUMP_BITS     = IS_LOAD_BITS + OPCODE_BITS + COND_BITS + PC_RELATIVE_BITS + REGISTER_BITS + JUMP_CONST_BITS
)

// Every layout fills the word exactly.
var (
	_ [0]struct{} = [STANDARD_BITS - 32]struct{}{}
	_ [0]struct{} = [LOAD_BITS - 32]struct{}{}
	_ [0]struct{} = [JUMP_BITS - 32]struct{}{}
)

// field is a bit range of a Word.
type field struct {
	name  string
	shift uint
	width uint
}

func (fl field) max() uint32 {
	return (1 << fl.width) - 1
}

func (fl field) get(word Word) uint32 {
	return (uint32(word) >> fl.shift) & fl.max()
}

// put ors value into the field; it never truncates.
func (fl field) put(word *Word, value uint32) (err error) {
	if value > fl.max() {
		err = &ErrRange{Text: fl.name, Value: int64(value), Max: int64(fl.max())}
		return
	}
	*word |= Word(value << fl.shift)
	return
}

// after returns the field following fl.
func (fl field) after(name string, width uint) field {
	return field{name: name, shift: fl.shift + fl.width, width: width}
}

var (
	fieldIsLoad = field{name: "isLoad", shift: 0, width: IS_LOAD_BITS}

	stdOpcode     = fieldIsLoad.after("opcode", OPCODE_BITS)
	stdSource     = stdOpcode.after("source", REGISTER_BITS)
	stdSourceAddr = stdSource.after("sourceIsAddress", ADDRESS_BITS)
	stdDest       = stdSourceAddr.after("dest", REGISTER_BITS)
	stdDestAddr   = stdDest.after("destIsAddress", ADDRESS_BITS)
	stdType       = stdDestAddr.after("dataType", TYPE_BITS)
	stdConst      = stdType.after("constant", STANDARD_CONST_BITS)

	loadOr    = fieldIsLoad.after("orWithDest", OR_BITS)
	loadShift = loadOr.after("shift", SHIFT_BITS)
	loadDest  = loadShift.after("dest", REGISTER_BITS)
	loadConst = loadDest.after("constant", LOAD_CONST_BITS)

	jumpOpcode = fieldIsLoad.after("opcode", OPCODE_BITS)
	jumpCond   = jumpOpcode.after("condition", COND_BITS)
	jumpPC     = jumpCond.after("pcRelative", PC_RELATIVE_BITS)
	jumpOffset = jumpPC.after("offsetRegister", REGISTER_BITS)
	jumpConst  = jumpOffset.after("constant", JUMP_CONST_BITS)
)

// layoutFields lists the fields of each layout from bit 0 upwards.
var layoutFields = map[CodeLayout][]field{
	LAYOUT_STANDARD: {fieldIsLoad, stdOpcode, stdSource, stdSourceAddr, stdDest, stdDestAddr, stdType, stdConst},
	LAYOUT_LOAD:     {fieldIsLoad, loadOr, loadShift, loadDest, loadConst},
	LAYOUT_JUMP:     {fieldIsLoad, jumpOpcode, jumpCond, jumpPC, jumpOffset, jumpConst},
}

// Word is a packed 32-bit machine instruction.
type Word uint32

// Layout returns the layout the word is encoded with.
func (word Word) Layout() CodeLayout {
	switch {
	case fieldIsLoad.get(word) == 1:
		return LAYOUT_LOAD
	case CodeOp(stdOpcode.get(word)) == OP_JUMP:
		return LAYOUT_JUMP
	}
	return LAYOUT_STANDARD
}

// String returns the assembly text of the word.
func (word Word) String() string {
	format, err := Decode(word)
	if err != nil {
		return fmt.Sprintf("<%#08x: %v>", uint32(word), err)
	}
	return format.String()
}

// Format is a decoded instruction in one of the three layouts.
type Format interface {
	// Layout returns the layout of the instruction.
	Layout() CodeLayout
	// Encode packs the instruction into a word.
	Encode() (Word, error)
	// String returns the instruction as assembly text.
	String() string
}

// Register is a register operand.
type Register struct {
	Reg     CodeReg // Register, REG_C or REG_NONE.
	Address bool    // If set, the register holds a memory address.
}

// index returns the register field encoding. REG_NONE has no field code
// of its own and packs as zero.
func (reg Register) index() uint32 {
	if reg.Reg == REG_NONE {
		return 0
	}
	return uint32(reg.Reg)
}

// check rejects the constant register in address mode.
func (reg Register) check() error {
	if reg.Address && (reg.Reg == REG_C || reg.Reg == REG_NONE) {
		return ErrRegisterUnknown(reg.String())
	}
	return nil
}

func (reg Register) String() string {
	if reg.Address {
		return "&" + reg.Reg.String()
	}
	return reg.Reg.String()
}

func b2u(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

// encode packs a sequence of field values, stopping at the first error.
func encode(puts ...func(*Word) error) (word Word, err error) {
	for _, put := range puts {
		err = put(&word)
		if err != nil {
			word = 0
			return
		}
	}
	return
}

func (fl field) set(value uint32) func(*Word) error {
	return func(word *Word) error {
		return fl.put(word, value)
	}
}

// Standard is the general purpose instruction layout.
type Standard struct {
	Op       CodeOp
	Type     CodeType
	Source   Register
	Dest     Register
	Constant uint16
}

func (ins Standard) Layout() CodeLayout {
	return LAYOUT_STANDARD
}

func (ins Standard) Encode() (word Word, err error) {
	switch {
	case ins.Op == OP_JUMP:
		err = ErrLayoutMismatch
		return
	case ins.Op.Reserved():
		err = ErrOpcodeReserved
		return
	case ins.Type != TYPE_IGNORE && ins.Type.Space() != ins.Op.Space():
		err = ErrTypeField
		return
	}

	for _, reg := range []Register{ins.Source, ins.Dest} {
		err = reg.check()
		if err != nil {
			return
		}
	}

	return encode(
		stdOpcode.set(uint32(ins.Op)),
		stdSource.set(ins.Source.index()),
		stdSourceAddr.set(b2u(ins.Source.Address)),
		stdDest.set(ins.Dest.index()),
		stdDestAddr.set(b2u(ins.Dest.Address)),
		stdType.set(ins.Type.Field()),
		stdConst.set(uint32(ins.Constant)),
	)
}

func (ins Standard) String() string {
	return fmt.Sprintf("%v %v,%v,%v,0x%03x", ins.Op, ins.Type, ins.Source, ins.Dest, ins.Constant)
}

// Load is the wide constant load layout.
type Load struct {
	OrWithDest bool     // If set, the constant is or'd into the destination.
	Shift      uint8    // Shift of the constant, in 24 bit steps.
	Dest       Register // Destination register.
	Constant   uint32   // 24 bit constant.
}

func (ins Load) Layout() CodeLayout {
	return LAYOUT_LOAD
}

func (ins Load) Encode() (word Word, err error) {
	if ins.Dest.Address {
		err = &ErrAddressMode{Mnemonic: MNEMONIC_LOAD, Operand: ins.Dest.String()}
		return
	}

	return encode(
		fieldIsLoad.set(1),
		loadOr.set(b2u(ins.OrWithDest)),
		loadShift.set(uint32(ins.Shift)),
		loadDest.set(ins.Dest.index()),
		loadConst.set(ins.Constant),
	)
}

func (ins Load) String() string {
	return fmt.Sprintf("%v %d,%d,%v,0x%06x", MNEMONIC_LOAD, b2u(ins.OrWithDest), ins.Shift, ins.Dest, ins.Constant)
}

// Jump is the conditional jump layout.
type Jump struct {
	Cond       CodeCond
	PCRelative bool     // If set, the target is relative to the program counter.
	Offset     Register // Register holding the target, in instructions.
	Constant   int16    // Signed offset added to the target.
}

func (ins Jump) Layout() CodeLayout {
	return LAYOUT_JUMP
}

func (ins Jump) Encode() (word Word, err error) {
	if ins.Offset.Address {
		err = &ErrAddressMode{Mnemonic: MNEMONIC_JUMP, Operand: ins.Offset.String()}
		return
	}
	if !ins.Cond.Valid() {
		err = ErrConditionField
		return
	}

	return encode(
		jumpOpcode.set(uint32(OP_JUMP)),
		jumpCond.set(uint32(ins.Cond)),
		jumpPC.set(b2u(ins.PCRelative)),
		jumpOffset.set(ins.Offset.index()),
		jumpConst.set(uint32(uint16(ins.Constant))),
	)
}

func (ins Jump) String() string {
	return fmt.Sprintf("%v %v,%d,%v,0x%04x", MNEMONIC_JUMP, ins.Cond, b2u(ins.PCRelative), ins.Offset, uint16(ins.Constant))
}

func decodeRegister(reg, addr uint32) Register {
	return Register{Reg: CodeReg(reg), Address: addr == 1}
}

// Decode unpacks a word into its layout.
func Decode(word Word) (format Format, err error) {
	switch word.Layout() {
	case LAYOUT_LOAD:
		format = Load{
			OrWithDest: loadOr.get(word) == 1,
			Shift:      uint8(loadShift.get(word)),
			Dest:       decodeRegister(loadDest.get(word), 0),
			Constant:   loadConst.get(word),
		}
	case LAYOUT_JUMP:
		cond := CodeCond(jumpCond.get(word))
		if !cond.Valid() {
			err = ErrConditionField
			return
		}
		format = Jump{
			Cond:       cond,
			PCRelative: jumpPC.get(word) == 1,
			Offset:     decodeRegister(jumpOffset.get(word), 0),
			Constant:   int16(uint16(jumpConst.get(word))),
		}
	default:
		op := CodeOp(stdOpcode.get(word))
		if op.Reserved() {
			err = ErrOpcodeReserved
			return
		}
		var typ CodeType
		typ, err = op.Space().Type(stdType.get(word))
		if err != nil {
			return
		}
		ins := Standard{
			Op:       op,
			Type:     typ,
			Source:   decodeRegister(stdSource.get(word), stdSourceAddr.get(word)),
			Dest:     decodeRegister(stdDest.get(word), stdDestAddr.get(word)),
			Constant: uint16(stdConst.get(word)),
		}
		for _, reg := range []Register{ins.Source, ins.Dest} {
			err = reg.check()
			if err != nil {
				return
			}
		}
		format = ins
	}

	return
}

// Disassemble returns the assembly text of a sequence of words, one per line.
func Disassemble(words ...Word) string {
	lines := make([]string, len(words))
	for n, word := range words {
		lines[n] = word.String()
	}
	return strings.Join(lines, "\n")
}
