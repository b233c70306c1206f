package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBits(t *testing.T) {
	assert.Equal(t, uint8(0b1000_0001), SetBit(0b0000_0001, 7))
	assert.True(t, TestBit(0b0100_0000, 6))
	assert.False(t, TestBit(0b0100_0000, 5))
	assert.Equal(t, uint8(1), GetBit(0b0000_0010, 1))
	assert.Equal(t, uint8(1), BoolToBit(true))
	assert.Equal(t, uint8(0), BoolToBit(false))
}

func TestBytes(t *testing.T) {
	assert.Equal(t, uint16(0x00E0), BytesToUint16(0x00, 0xE0))
}

func TestBoolToString(t *testing.T) {
	assert.Equal(t, "on", BoolToString(true))
	assert.Equal(t, "off", BoolToString(false))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 1, Clamp(1, -5, 10))
	assert.Equal(t, 10, Clamp(1, 50, 10))
	assert.Equal(t, 0.5, Clamp(0.0, 0.5, 1.0))
}
