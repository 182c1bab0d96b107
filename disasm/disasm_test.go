package disasm

import (
	"testing"

	"github.com/emma-elyon/kitty24/assembler"
	"github.com/emma-elyon/kitty24/console"
)

func TestDecodeRoundTripsThroughAssembler(t *testing.T) {
	src := "add r1, r2, r3\n"
	rom, err := assembler.Assemble(src)
	if err != nil {
		t.Fatal(err)
	}
	word := console.Word(rom[0])<<16 | console.Word(rom[1])<<8 | console.Word(rom[2])

	inst := Decode(word)
	if inst.Mnemonic != "add" {
		t.Errorf("mnemonic = %q, want add", inst.Mnemonic)
	}
	if inst.A != 1 || inst.B != 2 || inst.C != 3 {
		t.Errorf("operands = %d,%d,%d, want 1,2,3", inst.A, inst.B, inst.C)
	}

	reassembled, err := assembler.Assemble(inst.String() + "\n")
	if err != nil {
		t.Fatalf("re-assembling %q: %v", inst.String(), err)
	}
	if string(reassembled) != string(rom) {
		t.Errorf("round trip mismatch: got %x, want %x", reassembled, rom)
	}
}

func TestDecodeConditionalPrefix(t *testing.T) {
	word := console.ConditionBit | (console.Word(console.OpAddi) << 18) | (1 << 12) | (2 << 6) | 5
	inst := Decode(word)
	if inst.String()[0] != 'c' {
		t.Errorf("String() = %q, want leading c", inst.String())
	}
}
