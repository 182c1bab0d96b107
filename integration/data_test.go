package integration

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Ported from original_source's tests/assembler/data.rs: data/data2/data3
// directives should be readable back with the matching load width.

func TestDataHoldsByte(t *testing.T) {
	regs := runProgram(t, `
let     r2, address
lethi   r2, address
load    r1, r2, 0
let     r2, address.end
lethi   r2, address.end
or      pc, r2, r0
address:
data    37
.end:
`, 20)
	require.EqualValues(t, 37, regs[1])
}

func TestDataHoldsString(t *testing.T) {
	regs := runProgram(t, `
let     rA, address
lethi   rA, address
load    r1, rA, 0
load    r2, rA, 1
load    r3, rA, 2
load    r4, rA, 3
load    r5, rA, 4
load    r6, rA, 5
let     r7, address.end
lethi   r7, address.end
ori     pc, r7, 0
address:
    data    "Hello~"
.end:
`, 20)
	got := []byte{
		byte(regs[1]), byte(regs[2]), byte(regs[3]),
		byte(regs[4]), byte(regs[5]), byte(regs[6]),
	}
	require.Equal(t, "Hello~", string(got))
}

func TestData2HoldsTwoByteValue(t *testing.T) {
	regs := runProgram(t, `
let     r2, address
lethi   r2, address
load2   r1, r2, 0
let     r2, address.end
lethi   r2, address.end
or      pc, r2, r0
address:
data2   37000
.end:
`, 20)
	require.EqualValues(t, 37000, regs[1])
}

func TestData3HoldsThreeByteValue(t *testing.T) {
	regs := runProgram(t, `
let     r2, address
lethi   r2, address
load3   r1, r2, 0
let     r2, address.end
lethi   r2, address.end
or      pc, r2, r0
address:
data3   7000000
.end:
`, 20)
	require.EqualValues(t, 7000000, regs[1])
}
