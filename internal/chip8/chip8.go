// Package chip8 provides a CHIP-8 virtual machine. A VM owns one of
// each component and drives them from a single clock: instructions
// run at a configurable rate and the timers tick at 60 Hz, both
// paced by elapsed real time rather than by each other.
package chip8

import (
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/thelolagemann/gochip8/internal/cpu"
	"github.com/thelolagemann/gochip8/internal/joypad"
	"github.com/thelolagemann/gochip8/internal/ppu"
	"github.com/thelolagemann/gochip8/internal/ram"
	"github.com/thelolagemann/gochip8/internal/scheduler"
	"github.com/thelolagemann/gochip8/internal/timer"
	"github.com/thelolagemann/gochip8/internal/types"
	"github.com/thelolagemann/gochip8/pkg/emulator"
	"github.com/thelolagemann/gochip8/pkg/log"
	"github.com/thelolagemann/gochip8/pkg/utils"
)

const (
	// DefaultInstructionsPerSecond is the instruction rate used
	// unless one is given with InstructionsPerSecond.
	DefaultInstructionsPerSecond = 700
	// MinInstructionsPerSecond and MaxInstructionsPerSecond bound
	// the instruction rate.
	MinInstructionsPerSecond = 1
	MaxInstructionsPerSecond = 1_000_000

	// MaxBacklog is the most elapsed time a single Update will
	// catch up on. Anything beyond it, such as the host being
	// suspended, is dropped rather than replayed.
	MaxBacklog = 250 * time.Millisecond
)

// VM represents a CHIP-8 machine. It contains all the components of
// the machine, and is the main entry point for the emulator.
type VM struct {
	CPU    *cpu.CPU
	MMU    *ram.Memory
	ppu    *ppu.PPU
	Keypad *joypad.State
	Timer  *timer.Controller

	log.Logger

	clock     scheduler.Clock
	s         *scheduler.Scheduler
	lastClock time.Duration

	ips     atomic.Int64
	seed    uint64
	program []byte

	status     atomic.Int32
	err        error
	frameReady bool
	tone       bool

	// commands is only read while Start is running.
	commands chan command
	running  atomic.Bool
}

// New returns a new VM with no program loaded. Options are applied
// in order; WithProgram loads its program after the others have been
// applied, and a load error is returned.
func New(opts ...Opt) (*VM, error) {
	v := &VM{
		Logger:   log.NewNullLogger(),
		seed:     uint64(time.Now().UnixNano()),
		commands: make(chan command),
	}
	v.ips.Store(DefaultInstructionsPerSecond)

	for _, opt := range opts {
		opt(v)
	}
	if v.clock == nil {
		v.clock = scheduler.NewClock()
	}

	program := v.program
	v.program = nil
	v.reset()

	if program != nil {
		if err := v.Load(program); err != nil {
			return nil, err
		}
	}

	return v, nil
}

// reset reconstructs every component and reloads the current
// program, leaving the VM as it was straight after Load.
func (v *VM) reset() {
	v.MMU = ram.New()
	v.ppu = ppu.New()
	v.Keypad = joypad.New()
	v.Timer = timer.NewController()
	v.CPU = cpu.NewCPU(v.MMU, v.ppu, v.Keypad, v.Timer, rand.New(rand.NewPCG(v.seed, v.seed)))

	// the program has been validated by Load
	_ = v.MMU.Load(v.program)

	v.s = scheduler.NewScheduler()
	v.s.RegisterEvent(scheduler.CPUStep, scheduler.Period(int(v.ips.Load())), v.CPU.Step)
	v.s.RegisterEvent(scheduler.TimerTick, scheduler.Period(timer.Rate), v.tick)
	v.lastClock = v.clock.Elapsed()

	v.err = nil
	v.frameReady = false
	v.tone = false
	v.status.Store(int32(emulator.Running))
}

// Load loads program into memory and resets the machine. A program
// that does not fit is rejected with types.ErrProgramTooLarge and
// the VM is left untouched.
func (v *VM) Load(program []byte) error {
	if len(program) > types.MaxProgramSize {
		return types.ErrProgramTooLarge
	}

	v.program = append([]byte(nil), program...)
	v.reset()
	v.Logger.Debugf("loaded %d byte program", len(program))
	return nil
}

// Reset restarts the loaded program from a freshly constructed
// machine, clearing any fatal error.
func (v *VM) Reset() {
	v.reset()
	v.Logger.Infof("reset")
}

// Step executes a single instruction, outside of the timing model.
func (v *VM) Step() error {
	if v.err != nil {
		return v.err
	}
	if err := v.CPU.Step(); err != nil {
		return v.fail(err)
	}
	return nil
}

// Update samples the clock once and runs every instruction and timer
// tick that has fallen due since the last Update, interleaved in
// chronological order. At most MaxBacklog is caught up on.
func (v *VM) Update() error {
	if v.err != nil {
		return v.err
	}

	now := v.clock.Elapsed()
	elapsed := now - v.lastClock
	v.lastClock = now

	if v.Status() != emulator.Running {
		return nil
	}
	elapsed = utils.Clamp(0, elapsed, MaxBacklog)

	if err := v.s.Advance(elapsed); err != nil {
		return v.fail(err)
	}
	return nil
}

// tick decrements the timers, samples the tone and makes the frame
// available to the renderer.
func (v *VM) tick() error {
	v.Timer.Tick()
	v.tone = v.Timer.Tone()
	v.frameReady = true
	return nil
}

func (v *VM) fail(err error) error {
	v.err = err
	v.status.Store(int32(emulator.Errored))
	v.Logger.Errorf("%v", err)
	return err
}

// FrameReady reports whether a timer tick has passed since it was
// last called.
func (v *VM) FrameReady() bool {
	ready := v.frameReady
	v.frameReady = false
	return ready
}

// Frame returns a copy of the display, clearing its dirty flag.
func (v *VM) Frame() ppu.Frame {
	return v.ppu.Frame()
}

// Dirty reports whether the display has changed since Frame was
// last called.
func (v *VM) Dirty() bool {
	return v.ppu.Dirty()
}

// Tone reports whether the sound timer was active at the last
// timer tick.
func (v *VM) Tone() bool {
	return v.tone
}

// Status returns the status of the emulator. It is safe to call
// from any goroutine.
func (v *VM) Status() emulator.Status {
	return emulator.Status(v.status.Load())
}

// Err returns the fatal error that stopped the VM, if any.
func (v *VM) Err() error {
	return v.err
}

// PC returns the program counter.
func (v *VM) PC() uint16 {
	return v.CPU.PC
}

// InstructionsPerSecond returns the current instruction rate. It is
// safe to call from any goroutine.
func (v *VM) InstructionsPerSecond() int {
	return int(v.ips.Load())
}

// SetInstructionsPerSecond changes the instruction rate, clamped to
// the supported range.
func (v *VM) SetInstructionsPerSecond(ips int) {
	ips = utils.Clamp(MinInstructionsPerSecond, ips, MaxInstructionsPerSecond)
	v.ips.Store(int64(ips))
	v.s.SetPeriod(scheduler.CPUStep, scheduler.Period(ips))
	v.Logger.Debugf("scheduler: %v", v.s)
}

// Press presses key on the keypad.
func (v *VM) Press(key joypad.Key) {
	v.Keypad.Press(key)
}

// Release releases key on the keypad.
func (v *VM) Release(key joypad.Key) {
	v.Keypad.Release(key)
}
