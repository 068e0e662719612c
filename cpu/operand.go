package cpu

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// CodeReg is a register id.
type CodeReg int

const (
	REG_R0  = CodeReg(0)
	REG_R1  = CodeReg(1)
	REG_R2  = CodeReg(2)
	REG_R3  = CodeReg(3)
	REG_R4  = CodeReg(4)
	REG_R5  = CodeReg(5)
	REG_R6  = CodeReg(6)
	REG_R7  = CodeReg(7)
	REG_R8  = CodeReg(8)
	REG_R9  = CodeReg(9)
	REG_R10 = CodeReg(10)
	REG_R11 = CodeReg(11)
	REG_R12 = CodeReg(12)
	REG_R13 = CodeReg(13)
	REG_R14 = CodeReg(14)
	REG_C   = CodeReg(15) // The constant register; its value is the instruction constant.

	NUMBER_REGISTERS = 15 // General purpose registers, r0-r14.

	REG_NONE = CodeReg(-1) // Unused operand.
)

// Operand text with a fixed meaning.
const (
	OPERAND_UNUSED   = "-"
	OPERAND_CONSTANT = "C"
	OPERAND_ADDRESS  = "&"
)

func (reg CodeReg) String() string {
	switch {
	case reg == REG_NONE:
		return OPERAND_UNUSED
	case reg == REG_C:
		return OPERAND_CONSTANT
	case reg >= REG_R0 && reg < NUMBER_REGISTERS:
		return fmt.Sprintf("r%d", int(reg))
	}
	return fmt.Sprintf("CodeReg(%d)", int(reg))
}

// regMap maps lower case register names to ids.
var regMap = func() map[string]CodeReg {
	regs := map[string]CodeReg{
		strings.ToLower(OPERAND_CONSTANT): REG_C,
	}
	for reg := REG_R0; reg < NUMBER_REGISTERS; reg++ {
		regs[reg.String()] = reg
	}
	return regs
}()

// condMap maps lower case condition names to codes.
var condMap = func() map[string]CodeCond {
	conds := make(map[string]CodeCond)
	for cond := COND_FALSE; cond.Valid(); cond++ {
		conds[strings.ToLower(cond.String())] = cond
	}
	return conds
}()

// typeMap maps lower case data type names to codes.
var typeMap = func() map[string]CodeType {
	types := make(map[string]CodeType)
	for typ := TYPE_U8; typ < TYPE_IGNORE; typ++ {
		types[typ.String()] = typ
	}
	return types
}()

// ResolveRegister resolves a register operand: r0-r14, optionally prefixed
// with '&' for address mode, the constant register C, or '-' for unused.
func ResolveRegister(text string) (reg Register, err error) {
	if text == OPERAND_UNUSED {
		reg.Reg = REG_NONE
		return
	}

	word := strings.ToLower(text)
	address := strings.HasPrefix(word, OPERAND_ADDRESS)
	if address {
		word = word[len(OPERAND_ADDRESS):]
	}

	code, ok := regMap[word]
	if !ok || (address && code == REG_C) {
		err = ErrRegisterUnknown(text)
		return
	}

	reg = Register{Reg: code, Address: address}
	return
}

// ResolveType resolves a data type operand in the space of the opcode.
// Opcodes without a data type accept any known type name and ignore it.
func ResolveType(text string, space CodeSpace) (typ CodeType, err error) {
	if text == OPERAND_UNUSED {
		typ = TYPE_IGNORE
		return
	}

	typ, ok := typeMap[strings.ToLower(text)]
	if ok && space == SPACE_NONE {
		typ = TYPE_IGNORE
		return
	}
	if !ok || typ.Space() != space {
		typ = TYPE_IGNORE
		err = ErrTypeUnknown(text)
		return
	}

	return
}

// ResolveCondition resolves a jump condition.
func ResolveCondition(text string) (cond CodeCond, err error) {
	cond, ok := condMap[strings.ToLower(text)]
	if !ok {
		err = ErrConditionUnknown(text)
		return
	}
	return
}

// saturate clamps an unsigned value to int64.
func saturate(value uint64) int64 {
	if value > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(value)
}

// parseHex parses a 0x prefixed hexadecimal literal.
func parseHex(text string) (value uint64, err error) {
	digits, ok := strings.CutPrefix(strings.ToLower(text), "0x")
	if !ok || len(digits) == 0 {
		err = &ErrSyntax{Text: text, Err: ErrLiteralInvalid}
		return
	}

	value, err = strconv.ParseUint(digits, 16, 64)
	if errors.Is(err, strconv.ErrRange) {
		err = &ErrRange{Text: text, Value: math.MaxInt64}
		return
	}
	if err != nil {
		err = &ErrSyntax{Text: text, Err: ErrLiteralInvalid}
		return
	}

	return
}

// ResolveUnsigned resolves a hexadecimal constant for an unsigned field
// of the given width. '-' resolves to zero.
func ResolveUnsigned(text string, bits uint) (value uint32, err error) {
	if text == OPERAND_UNUSED {
		return
	}

	limit := uint64(1)<<bits - 1

	raw, err := parseHex(text)
	if err != nil {
		var rerr *ErrRange
		if errors.As(err, &rerr) {
			rerr.Max = int64(limit)
		}
		return
	}

	if raw > limit {
		err = &ErrRange{Text: text, Value: saturate(raw), Max: int64(limit)}
		return
	}

	value = uint32(raw)
	return
}

// ResolveSigned resolves a hexadecimal constant for a two's complement
// field of the given width. The literal is the field's bit pattern, so for
// 16 bits 0xfffc is -4. A leading '-' negates the literal instead.
func ResolveSigned(text string, bits uint) (value int32, err error) {
	if text == OPERAND_UNUSED {
		return
	}

	pattern := uint64(1)<<bits - 1
	min := -int64(1) << (bits - 1)

	body, negative := strings.CutPrefix(text, "-")

	raw, err := parseHex(body)
	if err != nil {
		var rerr *ErrRange
		if errors.As(err, &rerr) {
			rerr.Text = text
			rerr.Min = min
			rerr.Max = int64(pattern)
			if negative {
				rerr.Value = math.MinInt64
			}
		}
		return
	}

	switch {
	case negative && raw > uint64(-min):
		err = &ErrRange{Text: text, Value: -saturate(raw), Min: min, Max: int64(pattern)}
	case negative:
		value = int32(-int64(raw))
	case raw > pattern:
		err = &ErrRange{Text: text, Value: saturate(raw), Min: min, Max: int64(pattern)}
	case raw&(1<<(bits-1)) != 0:
		value = int32(int64(raw) - int64(pattern) - 1)
	default:
		value = int32(raw)
	}

	return
}

// ResolveFlag resolves a small numeric field, written in decimal or hex.
// '-' resolves to zero.
func ResolveFlag(text string, bits uint) (value uint32, err error) {
	if text == OPERAND_UNUSED {
		return
	}

	limit := uint64(1)<<bits - 1

	raw, err := strconv.ParseUint(text, 0, 64)
	if errors.Is(err, strconv.ErrRange) {
		err = &ErrRange{Text: text, Value: math.MaxInt64, Max: int64(limit)}
		return
	}
	if err != nil {
		err = &ErrSyntax{Text: text, Err: ErrFlagInvalid}
		return
	}

	if raw > limit {
		err = &ErrRange{Text: text, Value: saturate(raw), Max: int64(limit)}
		return
	}

	value = uint32(raw)
	return
}
