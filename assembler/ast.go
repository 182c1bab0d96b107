package assembler

import "github.com/emma-elyon/kitty24/console"

// Statement is the typed AST: each grammar rule gets its own concrete
// type, so the two-pass encoder switches exhaustively instead of relying
// on string/kind tags.
type Statement interface {
	statementLine() int
}

// LabelDef defines a label at the current byte offset. Name is already
// fully qualified (global, or "scope.sub" for a local label) by the time
// the parser produces it.
type LabelDef struct {
	Line int
	Name string
}

func (s LabelDef) statementLine() int { return s.Line }

// OperandRef is an instruction operand that names a label rather than
// carrying a literal value.
type OperandRef struct {
	Name     string
	Relative bool
}

// Instruction is one assembled instruction: fixed parts (conditional bit,
// opcode, register fields) are always literal at parse time; the
// immediate may instead be a label reference, deferred to pass 2.
type Instruction struct {
	Line        int
	Conditional bool
	Op          console.Op
	Class       console.Class
	A, B, C     uint8
	Imm         int64
	Ref         *OperandRef
}

func (s Instruction) statementLine() int { return s.Line }

// DataDirective is `data`/`data2`/`data3`, either a literal-value list or a
// string literal.
type DataDirective struct {
	Line   int
	Width  int // 1, 2 or 3
	Values []int64
	Bytes  []byte // set instead of Values for a string literal
}

func (s DataDirective) statementLine() int { return s.Line }
