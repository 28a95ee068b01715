package chip8

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestInstructionString(t *testing.T) {
	tests := []struct {
		inst Instruction
		want string
	}{
		{Instruction{Op: Nop}, "NOP"},
		{Instruction{Op: ClearScreen}, "CLS"},
		{Instruction{Op: Return}, "RET"},
		{jp(0x237), "JP     #0237"},
		{call(0x300), "CALL   #0300"},
		{se(1, Literal(0xFC)), "SE     V1, #FC"},
		{se(1, Register(2)), "SE     V1, V2"},
		{sne(0xA, Literal(7)), "SNE    VA, #07"},
		{ld(3, Literal(0x10)), "LD     V3, #10"},
		{ld(3, Register(0xF)), "LD     V3, VF"},
		{add(4, 0x19), "ADD    V4, #19"},
		{addc(4, 5), "ADD    V4, V5"},
		{or(1, 2), "OR     V1, V2"},
		{sub(1, 2), "SUB    V1, V2"},
		{subn(1, 2), "SUBN   V1, V2"},
		{shr(6), "SHR    V6"},
		{shl(6), "SHL    V6"},
		{ldi(0x2EA), "LD     I, #02EA"},
		{jpv0(0x200), "JP     V0, #0200"},
		{rnd(2, 0x34), "RND    V2, #34"},
		{drw(1, 2, 5), "DRW    V1, V2, 5"},
		{skp(9), "SKP    V9"},
		{sknp(9), "SKNP   V9"},
		{ldFromDt(8), "LD     V8, DT"},
		{waitKey(8), "LD     V8, K"},
		{ldToDt(8), "LD     DT, V8"},
		{ldToSt(8), "LD     ST, V8"},
		{addi(8), "ADD    I, V8"},
		{font(8), "LD     F, V8"},
		{bcd(8), "LD     B, V8"},
		{stor(8), "LD     [I], V8"},
		{rstr(8), "LD     V8, [I]"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.inst.String())
	}
}
