// Package cpu implements the CHIP-8 interpreter core: the register
// file, the call stack, and the fetch/decode/execute cycle.
package cpu

import (
	"math/rand/v2"

	"github.com/thelolagemann/gochip8/internal/joypad"
	"github.com/thelolagemann/gochip8/internal/ppu"
	"github.com/thelolagemann/gochip8/internal/ram"
	"github.com/thelolagemann/gochip8/internal/timer"
	"github.com/thelolagemann/gochip8/internal/types"
)

type mode = uint8

const (
	// ModeNormal is the normal CPU mode, fetching an instruction every step.
	ModeNormal mode = iota
	// ModeAwaitKey is entered by LD Vx, K. No instructions are fetched
	// until a key is pressed.
	ModeAwaitKey
)

// CPU represents the CHIP-8 CPU. It is responsible for executing instructions.
type CPU struct {
	// Registers contains V0 - VF, I, PC and the stack.
	Registers

	mmu   *ram.Memory
	ppu   *ppu.PPU
	pad   *joypad.State
	timer *timer.Controller
	rng   *rand.Rand

	mode mode
	// awaitRegister is the register LD Vx, K stores the key in.
	awaitRegister uint8
}

// NewCPU creates a new CPU wired to the given components. rng is the
// source for RND, and should be seeded once per machine.
func NewCPU(mmu *ram.Memory, video *ppu.PPU, pad *joypad.State, timerCtl *timer.Controller, rng *rand.Rand) *CPU {
	c := &CPU{
		mmu:   mmu,
		ppu:   video,
		pad:   pad,
		timer: timerCtl,
		rng:   rng,
	}
	c.Reset()
	return c
}

// Reset clears the registers and stack, and points PC at the
// start of the program.
func (c *CPU) Reset() {
	c.Registers = Registers{PC: types.ProgramStart}
	c.mode = ModeNormal
	c.awaitRegister = 0
}

// AwaitingKey reports whether the CPU is suspended by LD Vx, K,
// and if so which register the key will be stored in.
func (c *CPU) AwaitingKey() (x uint8, ok bool) {
	return c.awaitRegister, c.mode == ModeAwaitKey
}

// Step executes a single instruction. While awaiting a key, Step
// only checks for a key press and otherwise leaves all state alone.
//
// Errors are returned as a *types.Fault, carrying the address and
// word of the instruction that failed. Errors are fatal: PC is left
// pointing at the faulting instruction and no retry is attempted.
func (c *CPU) Step() error {
	if c.mode == ModeAwaitKey {
		c.pollKey()
		return nil
	}

	pc := c.PC
	word, err := c.mmu.ReadWord(pc)
	if err != nil {
		return &types.Fault{PC: pc, Err: err}
	}

	op := Decode(word)
	instr, err := Lookup(op)
	if err != nil {
		return &types.Fault{PC: pc, Opcode: word, Err: err}
	}

	// advance past the instruction, jumps and skips set PC themselves
	c.PC = (pc + types.InstructionSize) & types.AddressMask
	if err := instr.Execute(c, op); err != nil {
		c.PC = pc
		return &types.Fault{PC: pc, Opcode: word, Err: err}
	}

	return nil
}

// awaitKey suspends instruction fetching until a key is pressed.
// PC is rewound onto the instruction so that it is not advanced
// until the key arrives.
func (c *CPU) awaitKey(x uint8) {
	c.PC = (c.PC - types.InstructionSize) & types.AddressMask
	c.mode = ModeAwaitKey
	c.awaitRegister = x
	c.pad.ClearLatch()
}

// pollKey completes LD Vx, K once a key press has been latched.
func (c *CPU) pollKey() {
	key, ok := c.pad.Latched()
	if !ok {
		return
	}
	c.V[c.awaitRegister] = key
	c.PC = (c.PC + types.InstructionSize) & types.AddressMask
	c.mode = ModeNormal
}
