package cpu

func init() {
	DefineInstruction("8XY1", "OR Vx, Vy", func(c *CPU, op Opcode) error {
		c.V[op.X] |= c.V[op.Y]
		return nil
	})
	DefineInstruction("8XY2", "AND Vx, Vy", func(c *CPU, op Opcode) error {
		c.V[op.X] &= c.V[op.Y]
		return nil
	})
	DefineInstruction("8XY3", "XOR Vx, Vy", func(c *CPU, op Opcode) error {
		c.V[op.X] ^= c.V[op.Y]
		return nil
	})
}
