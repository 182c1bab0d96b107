package console

import "errors"

// Sentinel errors returned by the CPU core and interrupt engine. Wrapped
// with fmt.Errorf("...: %w", ...) at the call site where extra context
// (the offending address, priority, or register) is available.
var (
	// ErrInterruptDoubleZero is returned when rI is written 0 while it
	// already holds 0; kitty24 treats it as a trap, same as
	// ErrInterruptOverlap.
	ErrInterruptDoubleZero = errors.New("console: interrupt trigger on double zero")

	// ErrInterruptOverlap is returned when two pending interrupts share
	// the same priority byte.
	ErrInterruptOverlap = errors.New("console: interrupt priority overlap")

	// ErrAddressOutOfRange is returned by a load or store whose computed
	// address falls outside [0, 1<<24).
	ErrAddressOutOfRange = errors.New("console: address out of range")
)
