package cpu

import (
	"fmt"

	"github.com/thelolagemann/gochip8/internal/types"
)

// Opcode is a decoded instruction word. Every field is extracted
// regardless of the instruction, each operation uses the fields
// that apply to it.
//
//	F X Y N
//	    N N
//	  N N N
type Opcode struct {
	// Word is the raw 16-bit instruction.
	Word uint16
	// Family is the top nibble, selecting the operation category.
	Family uint8
	// X is the second nibble, a register index.
	X uint8
	// Y is the third nibble, a register index.
	Y uint8
	// N is the fourth nibble, a 4-bit immediate.
	N uint8
	// NN is the low byte, an 8-bit immediate.
	NN uint8
	// NNN is the low 12 bits, an address.
	NNN uint16
}

// Decode splits an instruction word into its fields. It is a pure
// function of word.
func Decode(word uint16) Opcode {
	return Opcode{
		Word:   word,
		Family: uint8(word >> 12),
		X:      uint8(word>>8) & types.NibbleMask,
		Y:      uint8(word>>4) & types.NibbleMask,
		N:      uint8(word) & types.NibbleMask,
		NN:     uint8(word & types.ByteMask),
		NNN:    word & types.AddressMask,
	}
}

func (o Opcode) String() string {
	return fmt.Sprintf("%04X", o.Word)
}

// Lookup returns the instruction op decodes to, or
// types.ErrInvalidInstruction if there is none.
func Lookup(op Opcode) (Instruction, error) {
	for _, instr := range InstructionSet[op.Family] {
		if op.Word&instr.mask == instr.value {
			return instr, nil
		}
	}
	return Instruction{}, types.ErrInvalidInstruction
}
