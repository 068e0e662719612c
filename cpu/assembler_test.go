package cpu

import (
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssemblerEmpty(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	prog := asm.Compile("")
	assert.Empty(prog.Instructions)
	assert.Empty(prog.Diagnostics)
	assert.NoError(prog.Err())

	prog = asm.Compile("\n   \n// nothing here\n\t// or here\n")
	assert.Empty(prog.Instructions)
	assert.Empty(prog.Diagnostics)
}

func TestAssemblerStandard(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	prog := asm.Compile("MOVE U32,r1,r2,0x0010")
	require.Empty(t, prog.Diagnostics)
	require.Len(t, prog.Instructions, 1)

	ins := prog.Instructions[0]
	assert.Equal(1, ins.LineNo)
	assert.Equal("MOVE", ins.Mnemonic)
	assert.Equal(LAYOUT_STANDARD, ins.Word.Layout())

	std, ok := ins.Format.(Standard)
	require.True(t, ok)
	assert.Equal(OP_MOVE, std.Op)
	assert.Equal(TYPE_U32, std.Type)
	assert.Equal(Register{Reg: REG_R1}, std.Source)
	assert.Equal(Register{Reg: REG_R2}, std.Dest)
	assert.Equal(uint16(0x10), std.Constant)
	assert.Equal(Word(0x0104_2080), ins.Word)
}

func TestAssemblerLoad(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	prog := asm.Compile("LOAD 1,2,r3,0x00ABCDEF\nLOAD 1,2,r3,0x01000000")
	require.Len(t, prog.Instructions, 1)
	require.Len(t, prog.Diagnostics, 1)

	load, ok := prog.Instructions[0].Format.(Load)
	require.True(t, ok)
	assert.True(load.OrWithDest)
	assert.Equal(uint8(2), load.Shift)
	assert.Equal(Register{Reg: REG_R3}, load.Dest)
	assert.Equal(uint32(0xabcdef), load.Constant)
	assert.Equal(LAYOUT_LOAD, prog.Instructions[0].Word.Layout())

	diag := prog.Diagnostics[0]
	assert.Equal(2, diag.LineNo)
	assert.Equal("LOAD 1,2,r3,0x01000000", diag.Line)
	var rerr *ErrRange
	assert.ErrorAs(diag, &rerr)
	assert.Equal(int64(0x100_0000), rerr.Value)
	assert.Equal(int64(0xff_ffff), rerr.Max)
}

func TestAssemblerJump(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	prog := asm.Compile("JUMP NE,1,r4,0xFFFC")
	require.Empty(t, prog.Diagnostics)
	require.Len(t, prog.Instructions, 1)

	jump, ok := prog.Instructions[0].Format.(Jump)
	require.True(t, ok)
	assert.Equal(COND_NE, jump.Cond)
	assert.True(jump.PCRelative)
	assert.Equal(Register{Reg: REG_R4}, jump.Offset)
	assert.Equal(int16(-4), jump.Constant)
	assert.Equal(LAYOUT_JUMP, prog.Instructions[0].Word.Layout())
}

func TestAssemblerAddressMode(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	prog := asm.Compile(strings.Join([]string{
		"MEMCPY U32,&r0,&r5,0x10",
		"LOAD 0,0,&r5,0x1",
		"JUMP TRUE,0,&r1,0x0",
		"MOVE u8,&r5,r6,-",
	}, "\n"))

	require.Len(t, prog.Instructions, 2)
	require.Len(t, prog.Diagnostics, 2)

	std := prog.Instructions[0].Format.(Standard)
	assert.Equal(Register{Reg: REG_R0, Address: true}, std.Source)
	assert.Equal(Register{Reg: REG_R5, Address: true}, std.Dest)

	// Each operand has its own address flag.
	std = prog.Instructions[1].Format.(Standard)
	assert.Equal(Register{Reg: REG_R5, Address: true}, std.Source)
	assert.Equal(Register{Reg: REG_R6}, std.Dest)
	assert.Equal(uint32(1), stdSourceAddr.get(prog.Instructions[1].Word))
	assert.Equal(uint32(0), stdDestAddr.get(prog.Instructions[1].Word))

	var aerr *ErrAddressMode
	assert.Equal(2, prog.Diagnostics[0].LineNo)
	assert.ErrorAs(prog.Diagnostics[0], &aerr)
	assert.Equal(MNEMONIC_LOAD, aerr.Mnemonic)
	assert.Equal(3, prog.Diagnostics[1].LineNo)
	assert.ErrorAs(prog.Diagnostics[1], &aerr)
	assert.Equal(MNEMONIC_JUMP, aerr.Mnemonic)
}

func TestAssemblerCase(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	prog := asm.Compile("move U32,r1,r2,0x10\nMOVE u32,R1,R2,0X10\nMove U32,r1,r2,0x010")
	require.Len(t, prog.Instructions, 3)
	assert.Empty(prog.Diagnostics)

	for _, ins := range prog.Instructions {
		assert.Equal(prog.Instructions[0].Word, ins.Word)
	}
}

func TestAssemblerRecovers(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	program := []string{
		"MOVE U32,r1,r2",          // 1: three operands
		"MOVE U32,r1,r2,0x10",     // 2
		"FROB U32,r1,r2,0x10",     // 3: mnemonic
		"MOVE U32,r15,r2,0x10",    // 4: register
		"",                        // 5: skipped
		"FADD u32,r1,r2,-",        // 6: type space
		"JUMP ,1,r4,0x1",          // 7: missing condition
		"ADD s32,r1,r2,0x1000",    // 8: range
		"LOAD 1,2,&r3,0x10",       // 9: address mode
		"RET -,-,-,- // return",   // 10
		"JUMP MAYBE,1,r4,0x1",     // 11: condition
		"SETBIT -,r2,r2,0xzz",     // 12: literal
		"PUSH -,r0,-,-",           // 13
	}

	prog := asm.Compile(strings.Join(program, "\n"))

	assert.Equal([]int{2, 10, 13}, lineNos(prog.Instructions))

	require.Len(t, prog.Diagnostics, 9)

	var serr *ErrSyntax
	var mnemonic ErrMnemonicUnknown
	var register ErrRegisterUnknown
	var typ ErrTypeUnknown
	var cond ErrConditionUnknown
	var rerr *ErrRange
	var aerr *ErrAddressMode

	expected := []struct {
		lineNo int
		check  func(err error) bool
	}{
		{1, func(err error) bool { return errors.As(err, &serr) }},
		{3, func(err error) bool { return errors.As(err, &mnemonic) }},
		{4, func(err error) bool { return errors.As(err, &register) }},
		{6, func(err error) bool { return errors.As(err, &typ) }},
		{7, func(err error) bool { return errors.As(err, &cond) }},
		{8, func(err error) bool { return errors.As(err, &rerr) }},
		{9, func(err error) bool { return errors.As(err, &aerr) }},
		{11, func(err error) bool { return errors.As(err, &cond) }},
		{12, func(err error) bool { return errors.Is(err, ErrLiteralInvalid) }},
	}

	for n, diag := range prog.Diagnostics {
		assert.Equal(expected[n].lineNo, diag.LineNo)
		assert.Equal(program[diag.LineNo-1], diag.Line)
		assert.True(expected[n].check(diag), diag.Error())
	}

	assert.Error(prog.Err())
	for _, diag := range prog.Diagnostics {
		assert.ErrorIs(prog.Err(), diag)
	}
}

func lineNos(inss []Instruction) (out []int) {
	for _, ins := range inss {
		out = append(out, ins.LineNo)
	}
	return
}

func TestAssemblerWorkers(t *testing.T) {
	assert := assert.New(t)

	var program []string
	for n := range 200 {
		switch n % 5 {
		case 0:
			program = append(program, "ADD u32,r1,r2,0x001")
		case 1:
			program = append(program, "LOAD 0,1,r3,0x123456")
		case 2:
			program = append(program, "JUMP LT,0,C,0x8000")
		case 3:
			program = append(program, "BOGUS -,-,-,-")
		default:
			program = append(program, "// comment")
		}
	}
	source := strings.Join(program, "\n")

	serial := (&Assembler{}).Compile(source)
	parallel := (&Assembler{Workers: 8}).Compile(source)

	assert.Equal(serial, parallel)
	assert.Len(parallel.Instructions, 120)
	assert.Len(parallel.Diagnostics, 40)
}

func TestAssemblerIdempotent(t *testing.T) {
	assert := assert.New(t)

	source := "MOVE u32,r1,r2,0x10\nJUMP EQ,0,r0,0x1\nNOPE -,-,-,-"
	asm := &Assembler{}
	assert.Equal(asm.Compile(source), asm.Compile(source))
}

func TestAssemblerParse(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader("MOVE u32,r1,r2,0x10\r\nRET -,-,-,-\r\n"))
	assert.NoError(err)
	assert.Len(prog.Instructions, 2)
	assert.Equal("RET -,-,-,-", prog.Instructions[1].Line)

	broken := errors.New("broken")
	prog, err = asm.Parse(iotest.ErrReader(broken))
	assert.ErrorIs(err, broken)
	assert.Nil(prog)
}

func TestAssemblerRoundTrip(t *testing.T) {
	assert := assert.New(t)

	source := strings.Join([]string{
		"MOVE u32,r1,&r2,0x010",
		"FMUL double,C,r14,0xfff",
		"SAVE -,r0,r0,0x000",
		"LOAD 0,3,r9,0x000001",
		"JUMP GE,0,C,0x7fff",
		"JUMP POS,1,r0,0x8000",
	}, "\n")

	asm := &Assembler{}
	prog := asm.Compile(source)
	require.Empty(t, prog.Diagnostics)

	var words []Word
	for word := range prog.Words() {
		words = append(words, word)
	}

	// The disassembly assembles back to the same words.
	text := Disassemble(words...)
	assert.Equal(source, text)
	again := asm.Compile(text)
	assert.Equal(prog.Binary(), again.Binary())
}

func TestAssemble(t *testing.T) {
	assert := assert.New(t)

	ins, ok, err := Assemble("PUSH -,r0,-,-")
	assert.NoError(err)
	assert.True(ok)
	std := ins.Format.(Standard)
	assert.Equal(TYPE_IGNORE, std.Type)
	assert.Equal(Register{Reg: REG_NONE}, std.Dest)

	_, ok, err = Assemble("// nothing")
	assert.NoError(err)
	assert.False(ok)

	_, ok, err = Assemble("PUSH -,r0,-")
	assert.Error(err)
	assert.False(ok)
}

func TestAssemblerLongLine(t *testing.T) {
	assert := assert.New(t)

	// Both lines are longer than a default bufio.Scanner token.
	wide := "MOVE u32,r1,r2,0x" + strings.Repeat("0", 70000) + "1"
	junk := "MOVE u32,r1,r2,0x" + strings.Repeat("f", 70000)
	source := "MOVE u32,r1,r2,0x10\n" + wide + "\n" + junk + "\nRET -,-,-,-\nPUSH -,r0,-,-\n"

	asm := &Assembler{}
	prog := asm.Compile(source)
	assert.Equal([]int{1, 2, 4, 5}, lineNos(prog.Instructions))
	one, ok, err := Assemble("MOVE u32,r1,r2,0x1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(one.Word, prog.Instructions[1].Word)

	require.Len(t, prog.Diagnostics, 1)
	var rerr *ErrRange
	assert.Equal(3, prog.Diagnostics[0].LineNo)
	assert.ErrorAs(prog.Diagnostics[0], &rerr)

	parsed, err := asm.Parse(strings.NewReader(source))
	assert.NoError(err)
	assert.Equal(prog, parsed)
}

func TestAssemblerUntypedOperand(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	prog := asm.Compile("POP garbage,-,r0,-\nPOP u32,-,r0,-\nPOP -,-,r0,-")

	assert.Equal([]int{2, 3}, lineNos(prog.Instructions))
	assert.Equal(prog.Instructions[0].Word, prog.Instructions[1].Word)

	require.Len(t, prog.Diagnostics, 1)
	var unknown ErrTypeUnknown
	assert.ErrorAs(prog.Diagnostics[0], &unknown)
	assert.Equal(ErrTypeUnknown("garbage"), unknown)
}
