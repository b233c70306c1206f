// Package ram provides the CHIP-8's flat 4 KiB memory, holding the
// interpreter area, the built-in font and the loaded program.
package ram

import (
	"github.com/thelolagemann/gochip8/internal/types"
	"github.com/thelolagemann/gochip8/pkg/utils"
)

// Memory represents the 4096 bytes of addressable memory. There is
// no write protection, programs are free to modify themselves.
type Memory struct {
	data [types.MemorySize]uint8
}

// New returns a new zeroed Memory with the font installed
// at types.FontStart.
func New() *Memory {
	m := &Memory{}
	copy(m.data[types.FontStart:], font[:])
	return m
}

// Read returns the value at the given address.
func (m *Memory) Read(address uint16) uint8 {
	return m.data[address&types.AddressMask]
}

// Write writes the value to the given address.
func (m *Memory) Write(address uint16, value uint8) {
	m.data[address&types.AddressMask] = value
}

// ReadWord returns the big-endian word at address. The second byte
// must not fall off the end of memory.
func (m *Memory) ReadWord(address uint16) (uint16, error) {
	address &= types.AddressMask
	if address >= types.MaxAddress {
		return 0, types.ErrAddressOutOfRange
	}
	return utils.BytesToUint16(m.data[address], m.data[address+1]), nil
}

// Load copies program into memory at types.ProgramStart. If the
// program does not fit, types.ErrProgramTooLarge is returned and
// memory is left untouched.
func (m *Memory) Load(program []byte) error {
	if len(program) > types.MaxProgramSize {
		return types.ErrProgramTooLarge
	}
	copy(m.data[types.ProgramStart:], program)
	return nil
}

// Font returns the address of the glyph for the low nibble of digit.
func Font(digit uint8) uint16 {
	return types.FontStart + uint16(digit&0xF)*types.FontGlyphSize
}
