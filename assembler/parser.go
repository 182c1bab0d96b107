package assembler

import (
	"strings"

	"github.com/emma-elyon/kitty24/console"
)

// parser turns tokenized lines into the typed Statement AST, tracking the
// current global scope so local (".sub") labels and references can be
// fully qualified as they are encountered — the same left-to-right,
// single-pass bookkeeping a hand-written recursive-descent parser over
// this grammar naturally does.
type parser struct {
	scope string
}

// Parse tokenizes and parses an entire source file into statements.
func Parse(source string) ([]Statement, error) {
	p := &parser{}
	var stmts []Statement
	for i, raw := range strings.Split(source, "\n") {
		line := i + 1
		tokens := tokenizeLine(raw)
		for len(tokens) > 0 {
			var stmt Statement
			var err error
			stmt, tokens, err = p.parseOne(line, tokens)
			if err != nil {
				return nil, err
			}
			if stmt != nil {
				stmts = append(stmts, stmt)
			}
		}
	}
	return stmts, nil
}

// parseOne consumes the statement at the front of tokens (a label
// definition optionally followed by more statements on the same line, an
// instruction, or a data directive) and returns the remaining tokens.
func (p *parser) parseOne(line int, tokens []string) (Statement, []string, error) {
	first := tokens[0]
	if strings.HasSuffix(first, ":") {
		name := first[:len(first)-1]
		if !strings.HasPrefix(name, ".") {
			p.scope = name
		} else {
			name = p.scope + name
		}
		return LabelDef{Line: line, Name: name}, tokens[1:], nil
	}

	lower := strings.ToLower(first)
	switch lower {
	case "data", "data2", "data3":
		stmt, err := p.parseData(line, lower, tokens[1:])
		return stmt, nil, err
	}

	stmt, err := p.parseInstruction(line, tokens)
	return stmt, nil, err
}

func (p *parser) parseData(line int, kind string, operands []string) (Statement, error) {
	width := map[string]int{"data": 1, "data2": 2, "data3": 3}[kind]
	if len(operands) == 0 {
		return nil, newParseError(line, 1, "%s requires at least one operand", kind)
	}
	if strings.HasPrefix(operands[0], "\"") {
		raw := strings.Join(operands, ",")
		if !strings.HasSuffix(raw, "\"") || len(raw) < 2 {
			return nil, newParseError(line, 1, "unterminated string literal")
		}
		return DataDirective{Line: line, Width: width, Bytes: []byte(raw[1 : len(raw)-1])}, nil
	}
	values := make([]int64, 0, len(operands))
	for _, tok := range operands {
		v, err := parseInteger(tok)
		if err != nil {
			return nil, newParseError(line, 1, "%s", err)
		}
		if !fitsField(v, uint(width*8), true) && !fitsField(v, uint(width*8), false) {
			return nil, newParseError(line, 1, "%d: %v", v, ErrValueOutOfRange)
		}
		values = append(values, v)
	}
	return DataDirective{Line: line, Width: width, Values: values}, nil
}

func (p *parser) parseInstruction(line int, tokens []string) (Statement, error) {
	mnemonic := strings.ToLower(tokens[0])
	conditional := false
	op, ok := console.LookupOp(mnemonic)
	if !ok && strings.HasPrefix(mnemonic, "c") {
		conditional = true
		op, ok = console.LookupOp(mnemonic[1:])
	}
	if !ok {
		return nil, newParseError(line, 1, "unknown mnemonic %q", tokens[0])
	}
	operands := tokens[1:]
	class := op.Class()

	switch class {
	case console.ClassL:
		if len(operands) != 2 {
			return nil, newParseError(line, 1, "%s expects 2 operands, got %d", mnemonic, len(operands))
		}
		a, err := resolveRegister(operands[0])
		if err != nil {
			return nil, newParseError(line, 1, "%s", err)
		}
		inst := Instruction{Line: line, Conditional: conditional, Op: op, Class: class, A: a}
		if err := p.resolveImmediate(&inst, operands[1], 12, false); err != nil {
			return nil, newParseError(line, 1, "%s", err)
		}
		return inst, nil

	case console.ClassI:
		if len(operands) != 3 {
			return nil, newParseError(line, 1, "%s expects 3 operands, got %d", mnemonic, len(operands))
		}
		a, err := resolveRegister(operands[0])
		if err != nil {
			return nil, newParseError(line, 1, "%s", err)
		}
		b, err := resolveRegister(operands[1])
		if err != nil {
			return nil, newParseError(line, 1, "%s", err)
		}
		inst := Instruction{Line: line, Conditional: conditional, Op: op, Class: class, A: a, B: b}
		signed := isLoadStore(op)
		if err := p.resolveImmediate(&inst, operands[2], 6, signed); err != nil {
			return nil, newParseError(line, 1, "%s", err)
		}
		return inst, nil

	default: // ClassR
		if len(operands) != 3 {
			return nil, newParseError(line, 1, "%s expects 3 operands, got %d", mnemonic, len(operands))
		}
		a, err := resolveRegister(operands[0])
		if err != nil {
			return nil, newParseError(line, 1, "%s", err)
		}
		b, err := resolveRegister(operands[1])
		if err != nil {
			return nil, newParseError(line, 1, "%s", err)
		}
		c, err := resolveRegister(operands[2])
		if err != nil {
			return nil, newParseError(line, 1, "%s", err)
		}
		return Instruction{Line: line, Conditional: conditional, Op: op, Class: class, A: a, B: b, C: c}, nil
	}
}

func isLoadStore(op console.Op) bool {
	switch op {
	case console.OpLoad, console.OpLoad2, console.OpLoad3,
		console.OpStore, console.OpStore2, console.OpStore3:
		return true
	}
	return false
}

// resolveImmediate fills inst.Imm or inst.Ref from an operand token that
// is either an integer literal or a label reference.
func (p *parser) resolveImmediate(inst *Instruction, tok string, width uint, signed bool) error {
	if v, err := parseInteger(tok); err == nil {
		if !fitsField(v, width, signed) && !fitsField(v, width, !signed) {
			return ErrValueOutOfRange
		}
		inst.Imm = v
		return nil
	}
	name, relative := p.parseLabelOperand(tok)
	inst.Ref = &OperandRef{Name: name, Relative: relative}
	return nil
}

// parseLabelOperand fully qualifies a label-reference token against the
// current scope. There are six surface forms: name/.sub/scope.sub resolve
// to an absolute address, and ~name/~.sub/scope~.sub resolve to a
// relative displacement from the referencing instruction.
func (p *parser) parseLabelOperand(tok string) (name string, relative bool) {
	if idx := strings.Index(tok, "~"); idx >= 0 {
		relative = true
		scopePart, rest := tok[:idx], tok[idx+1:]
		if scopePart == "" {
			if strings.HasPrefix(rest, ".") {
				return p.scope + rest, true
			}
			return rest, true
		}
		return scopePart + rest, true
	}
	if strings.HasPrefix(tok, ".") {
		return p.scope + tok, false
	}
	return tok, false
}
