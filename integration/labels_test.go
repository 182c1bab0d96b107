package integration

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// These scenarios are ported from original_source's tests/assembler/labels.rs:
// global, local and scoped absolute references and global and local relative
// references should all resolve to the same forward/backward jump behavior.
// The scoped relative form (scope~.sub) is not covered here.

func TestGlobalAbsoluteJumpForward(t *testing.T) {
	regs := runProgram(t, `
let     r1, 17
let     pc, skip_to_end
let     r1, 34
skip_to_end:
`, 20)
	require.EqualValues(t, 17, regs[1])
}

func TestGlobalAbsoluteJumpBackward(t *testing.T) {
	regs := runProgram(t, `
let     r1, 17
loop:
    addi    r1, r1, 1
    lessi   r0, r1, 24
    clet    pc, end
    let     pc, loop
end:
`, 60)
	require.EqualValues(t, 24, regs[1])
}

func TestLocalAbsoluteJumpForward(t *testing.T) {
	regs := runProgram(t, `
main:
    let     r1, 17
    let     pc, .skip_to_end
    let     r1, 34
    .skip_to_end:
`, 20)
	require.EqualValues(t, 17, regs[1])
}

func TestLocalAbsoluteJumpBackward(t *testing.T) {
	regs := runProgram(t, `
main:
    let     r1, 17
    .loop:
        addi    r1, r1, 1
        lessi   r0, r1, 24
        clet    pc, .end
        let     pc, .loop
    .end:
`, 60)
	require.EqualValues(t, 24, regs[1])
}

func TestScopedAbsoluteJumpForward(t *testing.T) {
	regs := runProgram(t, `
main:
    let     r1, 17
    let     pc, main.skip_to_end
    let     r1, 34
    .skip_to_end:
`, 20)
	require.EqualValues(t, 17, regs[1])
}

func TestScopedAbsoluteJumpBackward(t *testing.T) {
	regs := runProgram(t, `
main:
    let     r1, 17
    .loop:
        addi    r1, r1, 1
        lessi   r0, r1, 24
        clet    pc, main.end
        let     pc, main.loop
    .end:
`, 60)
	require.EqualValues(t, 24, regs[1])
}

func TestGlobalRelativeJumpForward(t *testing.T) {
	regs := runProgram(t, `
let     r1, 17
addi    pc, pc, ~skip_to_end
let     r1, 34
skip_to_end:
`, 20)
	require.EqualValues(t, 17, regs[1])
}

func TestGlobalRelativeJumpBackward(t *testing.T) {
	regs := runProgram(t, `
let     r1, 17
loop:
    addi    r1, r1, 1
    lessi   r0, r1, 24
    clet    pc, end
    subi    pc, pc, ~loop
end:
`, 60)
	require.EqualValues(t, 24, regs[1])
}

func TestLocalRelativeJumpForward(t *testing.T) {
	regs := runProgram(t, `
main:
    let     r1, 17
    addi    pc, pc, ~.skip_to_end
    let     r1, 34
    .skip_to_end:
`, 20)
	require.EqualValues(t, 17, regs[1])
}

func TestLocalRelativeJumpBackward(t *testing.T) {
	regs := runProgram(t, `
main:
    let     r1, 17
    .loop:
        addi    r1, r1, 1
        lessi   r0, r1, 24
        clet    pc, .end
        subi    pc, pc, ~.loop
    .end:
`, 60)
	require.EqualValues(t, 24, regs[1])
}
