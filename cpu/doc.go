// Package cpu implements the machine code assembler for the MiniCPU.
//
// Every source line holds one instruction: a mnemonic followed by exactly
// four comma separated operands, unused ones written as '-'.
//
//	MOVE u32,r1,&r2,0x010   // standard layout
//	LOAD 1,2,r3,0xabcdef    // load layout
//	JUMP NE,1,r4,0xfffc     // jump layout
//
// Each instruction packs into a single 32-bit Word using one of three
// layouts. Bit 0 selects the Load layout; otherwise the opcode selects
// between the Standard and Jump layouts. Decode reverses the encoding.
//
// The assembler never stops at a bad line. Each failure becomes a
// Diagnostic and assembly continues with the next line.
package cpu
