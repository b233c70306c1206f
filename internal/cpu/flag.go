package cpu

import (
	"github.com/thelolagemann/gochip8/internal/types"
	"github.com/thelolagemann/gochip8/pkg/utils"
)

// setFlag writes the outcome of an operation to VF. Flags are always
// written after the result, so an operation targeting VF ends with
// the flag in VF.
func (c *CPU) setFlag(set bool) {
	c.V[types.FlagRegister] = utils.BoolToBit(set)
}

// flag returns the value of VF.
func (c *CPU) flag() uint8 {
	return c.V[types.FlagRegister]
}
