package cpu

import (
	"github.com/thelolagemann/gochip8/internal/types"
	"github.com/thelolagemann/gochip8/pkg/utils"
)

func init() {
	DefineInstruction("8XY6", "SHR Vx", func(c *CPU, op Opcode) error {
		c.shiftRight(op.X)
		return nil
	})
	DefineInstruction("8XYE", "SHL Vx", func(c *CPU, op Opcode) error {
		c.shiftLeft(op.X)
		return nil
	})
}

// shiftRight shifts Vx right by one bit, in place. Vy is ignored.
//
//	SHR Vx
//
// Flags affected:
//
//	VF - Set to the bit shifted out.
func (c *CPU) shiftRight(x uint8) {
	out := utils.GetBit(c.V[x], 0)
	c.V[x] >>= 1
	c.V[types.FlagRegister] = out
}

// shiftLeft shifts Vx left by one bit, in place. Vy is ignored.
//
//	SHL Vx
//
// Flags affected:
//
//	VF - Set to the bit shifted out.
func (c *CPU) shiftLeft(x uint8) {
	out := utils.GetBit(c.V[x], 7)
	c.V[x] <<= 1
	c.V[types.FlagRegister] = out
}
