package cpu

import "github.com/thelolagemann/gochip8/internal/types"

func init() {
	DefineInstruction("7XNN", "ADD Vx, byte", func(c *CPU, op Opcode) error {
		c.V[op.X] += op.NN
		return nil
	})
	DefineInstruction("8XY4", "ADD Vx, Vy", func(c *CPU, op Opcode) error {
		c.add(op.X, c.V[op.Y])
		return nil
	})
	DefineInstruction("8XY5", "SUB Vx, Vy", func(c *CPU, op Opcode) error {
		c.sub(op.X, c.V[op.X], c.V[op.Y])
		return nil
	})
	DefineInstruction("8XY7", "SUBN Vx, Vy", func(c *CPU, op Opcode) error {
		c.sub(op.X, c.V[op.Y], c.V[op.X])
		return nil
	})
	DefineInstruction("FX1E", "ADD I, Vx", func(c *CPU, op Opcode) error {
		c.addIndex(c.V[op.X])
		return nil
	})
}

// add adds value to Vx.
//
//	ADD Vx, n
//
// Flags affected:
//
//	VF - Set if the result overflowed 8 bits, reset otherwise.
func (c *CPU) add(x uint8, value uint8) {
	sum := uint16(c.V[x]) + uint16(value)
	c.V[x] = uint8(sum)
	c.setFlag(sum > 0xFF)
}

// sub stores a - b in Vx.
//
//	SUB Vx, Vy
//	SUBN Vx, Vy
//
// Flags affected:
//
//	VF - Set if there was no borrow (a >= b), reset otherwise.
func (c *CPU) sub(x uint8, a, b uint8) {
	c.V[x] = a - b
	c.setFlag(a >= b)
}

// addIndex adds value to I.
//
//	ADD I, Vx
//
// Flags affected:
//
//	VF - Set if the result left the 12-bit address space, reset otherwise.
func (c *CPU) addIndex(value uint8) {
	sum := c.I + uint16(value)
	c.I = sum & types.AddressMask
	c.setFlag(sum > types.MaxAddress)
}
