package cpu

import (
	"fmt"
	"strconv"
)

// Instruction is a single CHIP-8 operation, matched against an
// instruction word by mask and value.
type Instruction struct {
	name  string
	mask  uint16
	value uint16
	fn    func(*CPU, Opcode) error
}

// Name returns the mnemonic of the instruction.
func (i Instruction) Name() string {
	return i.name
}

// Execute performs the instruction on c.
func (i Instruction) Execute(c *CPU, op Opcode) error {
	return i.fn(c, op)
}

// InstructionSet holds the defined instructions, grouped by
// opcode family (the top nibble of the instruction word).
var InstructionSet [16][]Instruction

// DefineInstruction defines an instruction in the InstructionSet from
// its pattern, e.g. "8XY4". Hex digits in the pattern must match the
// instruction word exactly, the operand letters X, Y and N match any
// nibble.
func DefineInstruction(pattern string, name string, fn func(*CPU, Opcode) error) {
	if len(pattern) != 4 {
		panic(fmt.Sprintf("invalid instruction pattern %q", pattern))
	}

	var mask, value uint16
	for _, ch := range pattern {
		mask <<= 4
		value <<= 4
		switch ch {
		case 'X', 'Y', 'N':
			continue
		}
		nibble, err := strconv.ParseUint(string(ch), 16, 4)
		if err != nil {
			panic(fmt.Sprintf("invalid instruction pattern %q: %v", pattern, err))
		}
		mask |= 0xF
		value |= uint16(nibble)
	}
	if mask&0xF000 == 0 {
		panic(fmt.Sprintf("instruction pattern %q has no family", pattern))
	}

	family := value >> 12
	InstructionSet[family] = append(InstructionSet[family], Instruction{
		name:  name,
		mask:  mask,
		value: value,
		fn:    fn,
	})
}

func init() {
	DefineInstruction("00E0", "CLS", func(c *CPU, _ Opcode) error {
		c.ppu.Clear()
		return nil
	})
	DefineInstruction("DXYN", "DRW Vx, Vy, nibble", func(c *CPU, op Opcode) error {
		c.draw(op.X, op.Y, op.N)
		return nil
	})
	DefineInstruction("CXNN", "RND Vx, byte", func(c *CPU, op Opcode) error {
		c.V[op.X] = uint8(c.rng.IntN(256)) & op.NN
		return nil
	})
}

// draw draws an n byte sprite from memory at I to (Vx, Vy).
//
//	DRW Vx, Vy, n
//
// Flags affected:
//
//	VF - Set if any lit pixel was turned off, reset otherwise.
func (c *CPU) draw(x, y, n uint8) {
	var rows [15]byte
	sprite := rows[:n]
	for i := range sprite {
		sprite[i] = c.mmu.Read(c.I + uint16(i))
	}
	collision := c.ppu.DrawSprite(c.V[x], c.V[y], sprite)
	c.setFlag(collision)
}
