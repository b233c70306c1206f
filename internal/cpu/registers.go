package cpu

import "github.com/thelolagemann/gochip8/internal/types"

// Registers holds the CHIP-8 register file.
type Registers struct {
	// V contains the general purpose registers V0 - VF. VF doubles
	// as the flag register, and is overwritten by instructions that
	// produce a carry, borrow or collision.
	V [types.RegisterCount]uint8
	// I is the index register, used to address memory. Only the
	// low 12 bits are significant.
	I uint16
	// PC is the program counter, it points to the next instruction to be executed.
	PC uint16
	// Stack holds the return addresses of subroutine calls.
	Stack [types.StackDepth]uint16
	// SP is the stack pointer, the number of addresses on the stack.
	SP uint8
}

// Register returns the value of Vx.
func (r *Registers) Register(x uint8) uint8 {
	return r.V[x&0xF]
}

// SetRegister sets Vx to value.
func (r *Registers) SetRegister(x uint8, value uint8) {
	r.V[x&0xF] = value
}

// push pushes a return address onto the stack.
func (r *Registers) push(address uint16) error {
	if int(r.SP) >= len(r.Stack) {
		return types.ErrStackOverflow
	}
	r.Stack[r.SP] = address
	r.SP++
	return nil
}

// pop pops a return address off of the stack.
func (r *Registers) pop() (uint16, error) {
	if r.SP == 0 {
		return 0, types.ErrStackUnderflow
	}
	r.SP--
	return r.Stack[r.SP], nil
}
