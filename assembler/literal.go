package assembler

import (
	"fmt"
	"strconv"
	"strings"
)

// parseInteger parses an integer literal: binary (0b...), octal (0o...),
// hex (0x...), or plain decimal, with optional `_` digit separators and an
// optional leading `-`.
func parseInteger(tok string) (int64, error) {
	negative := false
	s := tok
	if strings.HasPrefix(s, "-") {
		negative = true
		s = s[1:]
	}
	s = strings.ReplaceAll(s, "_", "")

	base := 10
	switch {
	case strings.HasPrefix(s, "0b"), strings.HasPrefix(s, "0B"):
		base = 2
		s = s[2:]
	case strings.HasPrefix(s, "0o"), strings.HasPrefix(s, "0O"):
		base = 8
		s = s[2:]
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		base = 16
		s = s[2:]
	}
	v, err := strconv.ParseInt(s, base, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a valid integer literal: %w", tok, err)
	}
	if negative {
		v = -v
	}
	return v, nil
}

// fitsField reports whether v fits in a field of the given bit width, as
// either an unsigned or a two's-complement signed value (the caller knows
// which the field expects).
func fitsField(v int64, width uint, signed bool) bool {
	if signed {
		lo := -(int64(1) << (width - 1))
		hi := (int64(1) << (width - 1)) - 1
		return v >= lo && v <= hi
	}
	return v >= 0 && v < (int64(1)<<width)
}
