// Package integration exercises the assembler and console packages
// together the way a real program would: assemble source, run it on a
// CPU, and inspect the resulting register state. It lives outside both
// packages because assembler already imports console, so a test wanting
// both directions (assemble, then run on console's exported CPU) needs a
// package that can import both without creating a cycle.
package integration

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/emma-elyon/kitty24/assembler"
	"github.com/emma-elyon/kitty24/console"
)

// runProgram assembles src, executes it for a fixed number of steps on a
// fresh CPU, and returns a snapshot of the active context's register
// file. Programs are expected to settle into a harmless loop (typically
// a dangling zero-filled "let r0, 0") well before steps run out; tests
// pick a step budget generous enough that continuing past the
// interesting part of the program is a no-op.
func runProgram(t *testing.T, src string, steps int) [console.RegisterCount]console.Word {
	t.Helper()
	rom, err := assembler.Assemble(src)
	require.NoError(t, err)

	mem, err := console.NewMemory(rom)
	require.NoError(t, err)
	banks := console.NewBanks()
	cpu := console.NewCPU(banks, mem)

	for i := 0; i < steps; i++ {
		require.NoError(t, cpu.Step(), "trapped at step %d", i)
	}

	var regs [console.RegisterCount]console.Word
	ctx := banks.Current()
	for r := 0; r < console.RegisterCount; r++ {
		regs[r] = banks.GetContext(ctx, console.Word(r))
	}
	return regs
}
