package types

import (
	"errors"
	"fmt"
)

var (
	// ErrProgramTooLarge is returned when a program does not fit
	// between ProgramStart and the end of memory.
	ErrProgramTooLarge = errors.New("program too large")
	// ErrInvalidInstruction is returned when an instruction word
	// does not decode to a known operation.
	ErrInvalidInstruction = errors.New("invalid instruction")
	// ErrStackOverflow is returned when a call is made with a full stack.
	ErrStackOverflow = errors.New("stack overflow")
	// ErrStackUnderflow is returned when a return is made with an empty stack.
	ErrStackUnderflow = errors.New("stack underflow")
	// ErrAddressOutOfRange is returned when an access falls outside of
	// the 12-bit address space after masking. It indicates a broken
	// internal invariant rather than a program error.
	ErrAddressOutOfRange = errors.New("address out of range")
)

// Fault describes a fatal error raised while executing an
// instruction. PC is the address the faulting instruction was
// fetched from, so that callers can report where a program crashed.
type Fault struct {
	PC     Address
	Opcode uint16
	Err    error
}

func (f *Fault) Error() string {
	return fmt.Sprintf("%v at PC 0x%03X (opcode 0x%04X)", f.Err, f.PC, f.Opcode)
}

func (f *Fault) Unwrap() error {
	return f.Err
}
