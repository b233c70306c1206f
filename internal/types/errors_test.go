package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFault(t *testing.T) {
	var err error = &Fault{PC: 0x2A4, Opcode: 0xF0FF, Err: ErrInvalidInstruction}

	assert.True(t, errors.Is(err, ErrInvalidInstruction))
	assert.False(t, errors.Is(err, ErrStackOverflow))
	assert.Equal(t, "invalid instruction at PC 0x2A4 (opcode 0xF0FF)", err.Error())

	wrapped := fmt.Errorf("run: %w", err)
	var fault *Fault
	if assert.True(t, errors.As(wrapped, &fault)) {
		assert.Equal(t, Address(0x2A4), fault.PC)
	}
}
