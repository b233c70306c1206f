package chip8

import (
	"github.com/thelolagemann/gochip8/internal/scheduler"
	"github.com/thelolagemann/gochip8/pkg/log"
	"github.com/thelolagemann/gochip8/pkg/utils"
)

// Opt is a function that modifies a VM instance.
type Opt func(v *VM)

// WithLogger sets the logger used by the VM. Without one, the VM
// does not log.
func WithLogger(log log.Logger) Opt {
	return func(v *VM) {
		v.Logger = log
	}
}

// InstructionsPerSecond sets the instruction rate, clamped to
// MinInstructionsPerSecond - MaxInstructionsPerSecond.
func InstructionsPerSecond(ips int) Opt {
	return func(v *VM) {
		v.ips.Store(int64(utils.Clamp(MinInstructionsPerSecond, ips, MaxInstructionsPerSecond)))
	}
}

// WithSeed seeds the random number generator used by RND, so that
// runs can be reproduced.
func WithSeed(seed uint64) Opt {
	return func(v *VM) {
		v.seed = seed
	}
}

// WithClock sets the source of elapsed time. scheduler.ManualClock
// lets tests drive the VM deterministically.
func WithClock(c scheduler.Clock) Opt {
	return func(v *VM) {
		v.clock = c
	}
}

// WithProgram loads program once the VM has been constructed.
func WithProgram(program []byte) Opt {
	return func(v *VM) {
		v.program = program
	}
}
