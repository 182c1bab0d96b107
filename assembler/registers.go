package assembler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/emma-elyon/kitty24/console"
)

// spAlias is not a named register in the ISA itself; kitty24 fixes it one
// register below rI so assembly source has a conventional stack pointer
// name without stealing a general-purpose register from the caller.
const spAlias = console.RegInterrupt - 1

// namedRegisters are the ISA's explicit register aliases, plus kitty24's
// `sp` convention.
var namedRegisters = map[string]uint8{
	"r0": console.RegGlobal,
	"rg": console.RegGlobal,
	"pc": console.RegProgramCounter,
	"ri": console.RegInterrupt,
	"ir": console.RegInterrupt,
	"sp": spAlias,
}

// resolveRegister parses a register operand: one of the named aliases, or
// "r" followed by a hex digit string up to "r3f".
func resolveRegister(tok string) (uint8, error) {
	lower := strings.ToLower(tok)
	if r, ok := namedRegisters[lower]; ok {
		return r, nil
	}
	if !strings.HasPrefix(lower, "r") {
		return 0, fmt.Errorf("%q is not a register", tok)
	}
	n, err := strconv.ParseUint(lower[1:], 16, 8)
	if err != nil || n >= console.RegisterCount {
		return 0, fmt.Errorf("%q is not a valid register", tok)
	}
	return uint8(n), nil
}
