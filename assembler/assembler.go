// Package assembler implements a two-pass translator from scoped-label
// assembly source to a flat, big-endian byte image kitty24's console
// package can boot directly. Pass one walks the statement list, emitting
// fixed instruction bits and recording a deferred patch for every label
// reference; pass two resolves each reference once every label's address
// is known and patches it into the emitted bytes in place.
package assembler

import (
	"fmt"

	"github.com/golang/glog"

	"github.com/emma-elyon/kitty24/console"
)

// labelReference is a deferred patch record: an identifier, the byte
// offset of the instruction to patch, the field width and the shift
// applied to the resolved address before masking into that field.
type labelReference struct {
	line     int
	name     string
	offset   int
	width    uint
	shift    uint
	relative bool
}

// Assemble translates source into a flat ROM image.
func Assemble(source string) ([]byte, error) {
	stmts, err := Parse(source)
	if err != nil {
		return nil, err
	}

	var out []byte
	labels := make(map[string]int)
	var refs []labelReference

	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case LabelDef:
			if _, dup := labels[s.Name]; dup {
				return nil, newParseError(s.Line, 1, "label %q redefined", s.Name)
			}
			labels[s.Name] = len(out)

		case Instruction:
			offset := len(out)
			word := encodeFixed(s)
			if s.Ref != nil {
				width, shift := immediateShape(s)
				refs = append(refs, labelReference{
					line: s.Line, name: s.Ref.Name, offset: offset,
					width: width, shift: shift, relative: s.Ref.Relative,
				})
			} else {
				word |= console.Word(s.Imm) & fieldMask(s)
			}
			out = append(out, byte(word>>16), byte(word>>8), byte(word))

		case DataDirective:
			if s.Bytes != nil {
				out = append(out, s.Bytes...)
				continue
			}
			for _, v := range s.Values {
				out = appendBigEndian(out, uint32(v), s.Width)
			}
		}
	}

	for _, ref := range refs {
		target, ok := labels[ref.name]
		if !ok {
			return nil, fmt.Errorf("assembler: line %d: label %q: %w", ref.line, ref.name, ErrUndefinedLabel)
		}
		var resolved int64
		if ref.relative {
			delta := int64(target) - int64(ref.offset+3)
			if delta < 0 {
				delta = -delta
			}
			resolved = delta
			if (int64(target)-int64(ref.offset+3) < 0) != isBackwardMnemonic(out, ref.offset) {
				glog.Infof("assembler: line %d: relative reference to %q resolves with a sign mismatch against its mnemonic", ref.line, ref.name)
			}
		} else {
			resolved = int64(target)
		}
		patched := (console.Word(resolved) >> ref.shift) & ((1 << ref.width) - 1)

		word := console.Word(out[ref.offset])<<16 | console.Word(out[ref.offset+1])<<8 | console.Word(out[ref.offset+2])
		word |= patched
		out[ref.offset] = byte(word >> 16)
		out[ref.offset+1] = byte(word >> 8)
		out[ref.offset+2] = byte(word)
	}

	return out, nil
}

// encodeFixed encodes the conditional bit, opcode and register fields of
// an instruction, leaving any label-resolved immediate as zero.
func encodeFixed(s Instruction) console.Word {
	var word console.Word
	if s.Conditional {
		word |= console.ConditionBit
	}
	word |= console.Word(s.Op) << 18
	word |= console.Word(s.A) << 12
	switch s.Class {
	case console.ClassL:
		// Immediate occupies bits 11..0, patched by the caller.
	case console.ClassI:
		word |= console.Word(s.B) << 6
	case console.ClassR:
		word |= console.Word(s.B) << 6
		word |= console.Word(s.C)
	}
	return word
}

// fieldMask returns the bitmask of the literal-immediate field for s.
func fieldMask(s Instruction) console.Word {
	if s.Class == console.ClassL {
		return 0xFFF
	}
	return 0x3F
}

// immediateShape returns the field width and shift for a label-referenced
// operand: 6 bits for I-type, 12 for L-type, with LETHI shifting its
// resolved value into the high 12 bits instead of the low 12.
func immediateShape(s Instruction) (width, shift uint) {
	if s.Class == console.ClassL {
		if s.Op == console.OpLethi {
			return 12, 12
		}
		return 12, 0
	}
	return 6, 0
}

// isBackwardMnemonic reports whether the instruction at offset is a subi.
// Relative references always encode an unsigned magnitude; the direction
// is implied by whether the author wrote addi or subi, so this only flags
// a mismatch via glog rather than correcting the encoding.
func isBackwardMnemonic(out []byte, offset int) bool {
	word := console.Word(out[offset])<<16 | console.Word(out[offset+1])<<8 | console.Word(out[offset+2])
	op := console.Op((word >> 18) & 0x1F)
	return op == console.OpSubi
}

func appendBigEndian(out []byte, v uint32, width int) []byte {
	for i := width - 1; i >= 0; i-- {
		out = append(out, byte(v>>(uint(i)*8)))
	}
	return out
}
