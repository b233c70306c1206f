package cpu

import (
	"github.com/thelolagemann/gochip8/internal/ram"
	"github.com/thelolagemann/gochip8/internal/types"
)

func init() {
	DefineInstruction("6XNN", "LD Vx, byte", func(c *CPU, op Opcode) error {
		c.V[op.X] = op.NN
		return nil
	})
	DefineInstruction("8XY0", "LD Vx, Vy", func(c *CPU, op Opcode) error {
		c.V[op.X] = c.V[op.Y]
		return nil
	})
	DefineInstruction("ANNN", "LD I, addr", func(c *CPU, op Opcode) error {
		c.I = op.NNN
		return nil
	})

	// timers
	DefineInstruction("FX07", "LD Vx, DT", func(c *CPU, op Opcode) error {
		c.V[op.X] = c.timer.Delay
		return nil
	})
	DefineInstruction("FX15", "LD DT, Vx", func(c *CPU, op Opcode) error {
		c.timer.Delay = c.V[op.X]
		return nil
	})
	DefineInstruction("FX18", "LD ST, Vx", func(c *CPU, op Opcode) error {
		c.timer.Sound = c.V[op.X]
		return nil
	})

	DefineInstruction("FX0A", "LD Vx, K", func(c *CPU, op Opcode) error {
		c.awaitKey(op.X)
		return nil
	})

	// memory
	DefineInstruction("FX29", "LD F, Vx", func(c *CPU, op Opcode) error {
		c.I = ram.Font(c.V[op.X])
		return nil
	})
	DefineInstruction("FX33", "LD B, Vx", func(c *CPU, op Opcode) error {
		c.storeBCD(c.V[op.X])
		return nil
	})
	DefineInstruction("FX55", "LD [I], Vx", func(c *CPU, op Opcode) error {
		c.storeRegisters(op.X)
		return nil
	})
	DefineInstruction("FX65", "LD Vx, [I]", func(c *CPU, op Opcode) error {
		c.loadRegisters(op.X)
		return nil
	})
}

// storeBCD stores the decimal digits of value at I, I+1 and I+2,
// hundreds first.
//
//	LD B, Vx
func (c *CPU) storeBCD(value uint8) {
	c.mmu.Write(c.I, value/100)
	c.mmu.Write(c.I+1, value/10%10)
	c.mmu.Write(c.I+2, value%10)
}

// storeRegisters copies V0 through Vx, inclusive, to memory
// starting at I. I is left unchanged.
//
//	LD [I], Vx
func (c *CPU) storeRegisters(x uint8) {
	for i := uint8(0); i <= x; i++ {
		c.mmu.Write((c.I+uint16(i))&types.AddressMask, c.V[i])
	}
}

// loadRegisters fills V0 through Vx, inclusive, from memory
// starting at I. I is left unchanged.
//
//	LD Vx, [I]
func (c *CPU) loadRegisters(x uint8) {
	for i := uint8(0); i <= x; i++ {
		c.V[i] = c.mmu.Read((c.I + uint16(i)) & types.AddressMask)
	}
}
