package cpu

import "github.com/thelolagemann/gochip8/internal/types"

func init() {
	DefineInstruction("00EE", "RET", func(c *CPU, _ Opcode) error {
		return c.ret()
	})
	DefineInstruction("1NNN", "JP addr", func(c *CPU, op Opcode) error {
		c.jump(op.NNN)
		return nil
	})
	DefineInstruction("2NNN", "CALL addr", func(c *CPU, op Opcode) error {
		return c.call(op.NNN)
	})
	DefineInstruction("BNNN", "JP V0, addr", func(c *CPU, op Opcode) error {
		c.jump(op.NNN + uint16(c.V[0]))
		return nil
	})

	DefineInstruction("3XNN", "SE Vx, byte", func(c *CPU, op Opcode) error {
		c.skipIf(c.V[op.X] == op.NN)
		return nil
	})
	DefineInstruction("4XNN", "SNE Vx, byte", func(c *CPU, op Opcode) error {
		c.skipIf(c.V[op.X] != op.NN)
		return nil
	})
	DefineInstruction("5XY0", "SE Vx, Vy", func(c *CPU, op Opcode) error {
		c.skipIf(c.V[op.X] == c.V[op.Y])
		return nil
	})
	DefineInstruction("9XY0", "SNE Vx, Vy", func(c *CPU, op Opcode) error {
		c.skipIf(c.V[op.X] != c.V[op.Y])
		return nil
	})
	DefineInstruction("EX9E", "SKP Vx", func(c *CPU, op Opcode) error {
		c.skipIf(c.pad.IsPressed(c.V[op.X]))
		return nil
	})
	DefineInstruction("EXA1", "SKNP Vx", func(c *CPU, op Opcode) error {
		c.skipIf(!c.pad.IsPressed(c.V[op.X]))
		return nil
	})
}

// jump sets PC to address, folded into the 12-bit address space.
//
//	JP nnn
func (c *CPU) jump(address uint16) {
	c.PC = address & types.AddressMask
}

// call pushes the address of the next instruction onto the stack,
// then jumps to address.
//
//	CALL nnn
func (c *CPU) call(address uint16) error {
	if err := c.push(c.PC); err != nil {
		return err
	}
	c.jump(address)
	return nil
}

// ret pops the return address off of the stack into PC.
//
//	RET
func (c *CPU) ret() error {
	address, err := c.pop()
	if err != nil {
		return err
	}
	c.jump(address)
	return nil
}

// skipIf skips the next instruction if cond holds. PC has already
// been advanced past the current instruction, so a taken skip moves
// it on by a further instruction.
func (c *CPU) skipIf(cond bool) {
	if cond {
		c.PC = (c.PC + types.InstructionSize) & types.AddressMask
	}
}
