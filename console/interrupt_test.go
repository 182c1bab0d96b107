package console

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInterruptEnterAndReturn(t *testing.T) {
	b := NewBanks()
	require.Equal(t, 0, b.Current())

	require.NoError(t, b.Set(RegInterrupt, 4))
	require.Equal(t, 4, b.Current())
	require.Equal(t, Word(0), b.Get(RegProgramCounter))
	require.Equal(t, Word(4), b.Get(RegInterrupt))

	require.NoError(t, b.Set(RegInterrupt, 0))
	require.Equal(t, 0, b.Current())
}

func TestInterruptDoubleZeroTraps(t *testing.T) {
	b := NewBanks()
	err := b.Set(RegInterrupt, 0)
	require.ErrorIs(t, err, ErrInterruptDoubleZero)
}

func TestInterruptEqualPriorityOverlapTraps(t *testing.T) {
	b := NewBanks()
	require.NoError(t, b.Set(RegInterrupt, 5))
	err := b.Set(RegInterrupt, 5)
	require.ErrorIs(t, err, ErrInterruptOverlap)
}

func TestNestedInterruptsRestoreRegistersAndCondition(t *testing.T) {
	b := NewBanks()
	require.NoError(t, b.Set(RegInterrupt, 2))
	require.NoError(t, b.Set(10, 0xABC))
	b.SetCondition(true)

	require.NoError(t, b.Set(RegInterrupt, 1)) // preempt: priority 1 < 2
	require.Equal(t, 1, b.Current())
	require.Equal(t, Word(0), b.Get(RegProgramCounter))
	require.False(t, b.Condition())

	require.NoError(t, b.Set(RegInterrupt, 0)) // return: pops priority 2
	require.Equal(t, 2, b.Current())
	require.Equal(t, Word(0xABC), b.Get(10))
	require.True(t, b.Condition())
}

func TestLowerPriorityInterruptWaits(t *testing.T) {
	b := NewBanks()
	require.NoError(t, b.Set(RegInterrupt, 1))
	require.NoError(t, b.Set(RegInterrupt, 2)) // 2 is lower priority than 1: stays, enqueued
	require.Equal(t, 1, b.Current())
	require.Equal(t, Word(1), b.Get(RegInterrupt))

	require.NoError(t, b.Set(RegInterrupt, 0))
	require.Equal(t, 2, b.Current())
}

func TestEnqueuedInterruptPcZeroedEvenIfStale(t *testing.T) {
	b := NewBanks()
	b.setRaw(2, RegProgramCounter, 0x999) // context 2 left mid-program by a prior invocation

	require.NoError(t, b.Set(RegInterrupt, 1))
	require.NoError(t, b.Set(RegInterrupt, 2)) // 2 is lower priority than 1: enqueued, not entered
	require.Equal(t, Word(0), b.GetContext(2, RegProgramCounter))

	require.NoError(t, b.Set(RegInterrupt, 0)) // return: pops context 2
	require.Equal(t, 2, b.Current())
	require.Equal(t, Word(0), b.Get(RegProgramCounter))
}

func TestR0AlwaysReadsZero(t *testing.T) {
	b := NewBanks()
	require.NoError(t, b.Set(RegGlobal, 0x123))
	require.Equal(t, Word(0), b.Get(RegGlobal))
	require.Equal(t, Word(0x123), b.Global())
}
