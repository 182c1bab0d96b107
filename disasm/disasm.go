// Package disasm turns a single 24-bit instruction word back into its
// assembly text form. Re-assembling a disassembled instruction reproduces
// its original byte image exactly; this also backs the `kitty24 debug`
// stepper's current-instruction display.
package disasm

import (
	"fmt"

	"github.com/emma-elyon/kitty24/console"
)

// Instruction is one decoded instruction, ready to print or re-encode.
type Instruction struct {
	Conditional bool
	Mnemonic    string
	Class       console.Class
	A, B, C     uint8 // register indices (C unused for I/L-type)
	Imm         int64 // immediate field for I/L-type, as the raw unsigned field value (no sign extension)
}

// registerName mirrors the assembler's canonical names so the
// disassembler's output re-assembles unchanged.
func registerName(r uint8) string {
	switch r {
	case console.RegGlobal:
		return "r0"
	case console.RegInterrupt:
		return "ri"
	case console.RegProgramCounter:
		return "pc"
	default:
		return fmt.Sprintf("r%x", r)
	}
}

// Decode decodes one instruction word.
func Decode(word console.Word) Instruction {
	op := opFromWord(word)
	mnemonic, class := opMeta(op)
	inst := Instruction{
		Conditional: word&console.ConditionBit != 0,
		Mnemonic:    mnemonic,
		Class:       class,
		A:           uint8((word >> 12) & 0x3F),
	}
	switch class {
	case console.ClassL:
		inst.Imm = int64((word >> 0) & 0xFFF)
	case console.ClassI:
		inst.B = uint8((word >> 6) & 0x3F)
		inst.Imm = int64(word & 0x3F)
	case console.ClassR:
		inst.B = uint8((word >> 6) & 0x3F)
		inst.C = uint8(word & 0x3F)
	}
	return inst
}

// String renders the instruction the way the assembler expects to read it
// back: a leading "c" prefix for conditional instructions, then the
// mnemonic and operands.
func (inst Instruction) String() string {
	prefix := ""
	if inst.Conditional {
		prefix = "c"
	}
	dest := registerName(inst.A)
	switch inst.Class {
	case console.ClassL:
		return fmt.Sprintf("%s%s %s, %d", prefix, inst.Mnemonic, dest, inst.Imm)
	case console.ClassI:
		return fmt.Sprintf("%s%s %s, %s, %d", prefix, inst.Mnemonic, dest, registerName(inst.B), inst.Imm)
	default:
		return fmt.Sprintf("%s%s %s, %s, %s", prefix, inst.Mnemonic, dest, registerName(inst.B), registerName(inst.C))
	}
}

// opFromWord and opMeta avoid importing console's unexported opcode table
// directly by going through its exported Op.String/Op.Class surface.
func opFromWord(word console.Word) console.Op {
	return console.Op((word >> 18) & 0x1F)
}

func opMeta(op console.Op) (string, console.Class) {
	return op.String(), op.Class()
}
