package cpu

import (
	"math/rand/v2"
	"testing"

	"github.com/thelolagemann/gochip8/internal/joypad"
	"github.com/thelolagemann/gochip8/internal/ppu"
	"github.com/thelolagemann/gochip8/internal/ram"
	"github.com/thelolagemann/gochip8/internal/timer"
	"github.com/thelolagemann/gochip8/internal/types"
)

var (
	cpu *CPU
)

// newTestCPU returns a CPU wired to fresh components, with a
// fixed random source.
func newTestCPU() *CPU {
	return NewCPU(ram.New(), ppu.New(), joypad.New(), timer.NewController(), rand.New(rand.NewPCG(1, 2)))
}

// testInstruction resets the CPU, looks up the instruction that word
// decodes to, and runs f against it as a subtest.
func testInstruction(t *testing.T, name string, word uint16, f func(*testing.T, Instruction, Opcode)) {
	t.Helper()
	cpu = newTestCPU()

	op := Decode(word)
	instr, err := Lookup(op)
	if err != nil {
		t.Fatalf("%s: lookup 0x%04X: %v", name, word, err)
	}

	t.Run(name, func(t *testing.T) {
		if instr.Name() != name {
			t.Errorf("expected 0x%04X to be %s, got %s", word, name, instr.Name())
		}
		f(t, instr, op)
	})
}

func TestDefineInstruction(t *testing.T) {
	for _, pattern := range []string{"", "8XY", "8XY4F", "XYNN", "8XYG"} {
		t.Run(pattern, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("expected pattern %q to panic", pattern)
				}
			}()
			DefineInstruction(pattern, "BAD", nil)
		})
	}
}

func TestInstructionSet_Unique(t *testing.T) {
	// every defined pattern must match exactly one instruction
	for family, instrs := range InstructionSet {
		for _, instr := range instrs {
			matches := 0
			for _, other := range InstructionSet[family] {
				if instr.value&other.mask == other.value {
					matches++
				}
			}
			if matches != 1 {
				t.Errorf("%s (0x%04X) matches %d instructions", instr.name, instr.value, matches)
			}
		}
	}
}

func TestInstruction_Display(t *testing.T) {
	// 00E0 - CLS
	testInstruction(t, "CLS", 0x00E0, func(t *testing.T, instr Instruction, op Opcode) {
		cpu.ppu.DrawSprite(0, 0, []byte{0xFF})
		if err := instr.Execute(cpu, op); err != nil {
			t.Fatal(err)
		}
		for x := 0; x < types.ScreenWidth; x++ {
			if cpu.ppu.Pixel(x, 0) {
				t.Errorf("expected pixel (%d, 0) to be cleared", x)
			}
		}
	})
	// DXYN - DRW Vx, Vy, nibble
	testInstruction(t, "DRW Vx, Vy, nibble", 0xD015, func(t *testing.T, instr Instruction, op Opcode) {
		cpu.V[0] = 0
		cpu.V[1] = 0
		cpu.I = ram.Font(0)

		if err := instr.Execute(cpu, op); err != nil {
			t.Fatal(err)
		}
		if cpu.flag() != 0 {
			t.Errorf("expected VF to be 0 on first draw, got %d", cpu.flag())
		}
		// glyph 0 starts 0xF0
		for x := 0; x < 4; x++ {
			if !cpu.ppu.Pixel(x, 0) {
				t.Errorf("expected pixel (%d, 0) to be set", x)
			}
		}

		// drawing again erases the glyph and reports the collision
		if err := instr.Execute(cpu, op); err != nil {
			t.Fatal(err)
		}
		if cpu.flag() != 1 {
			t.Errorf("expected VF to be 1 on second draw, got %d", cpu.flag())
		}
		for y := 0; y < 5; y++ {
			for x := 0; x < 8; x++ {
				if cpu.ppu.Pixel(x, y) {
					t.Errorf("expected pixel (%d, %d) to be cleared", x, y)
				}
			}
		}
	})
	testInstruction(t, "DRW Vx, Vy, nibble", 0xD120, func(t *testing.T, instr Instruction, op Opcode) {
		cpu.V[types.FlagRegister] = 1
		if err := instr.Execute(cpu, op); err != nil {
			t.Fatal(err)
		}
		if cpu.flag() != 0 {
			t.Errorf("expected a zero height sprite to reset VF, got %d", cpu.flag())
		}
		if cpu.ppu.Pixel(0, 0) {
			t.Errorf("expected a zero height sprite to draw nothing")
		}
	})
	// DXYN - flag written after the coordinates are read
	testInstruction(t, "DRW Vx, Vy, nibble", 0xDFF1, func(t *testing.T, instr Instruction, op Opcode) {
		cpu.V[types.FlagRegister] = 3
		cpu.I = 0x300
		cpu.mmu.Write(0x300, 0x80)
		if err := instr.Execute(cpu, op); err != nil {
			t.Fatal(err)
		}
		if !cpu.ppu.Pixel(3, 3) {
			t.Errorf("expected pixel (3, 3) to be set")
		}
		if cpu.flag() != 0 {
			t.Errorf("expected VF to be 0, got %d", cpu.flag())
		}
	})
}

func TestInstruction_Random(t *testing.T) {
	// CXNN - RND Vx, byte
	testInstruction(t, "RND Vx, byte", 0xC30F, func(t *testing.T, instr Instruction, op Opcode) {
		for i := 0; i < 100; i++ {
			if err := instr.Execute(cpu, op); err != nil {
				t.Fatal(err)
			}
			if cpu.V[3]&0xF0 != 0 {
				t.Fatalf("expected V3 to be masked by 0x0F, got 0x%02X", cpu.V[3])
			}
		}
	})
	testInstruction(t, "RND Vx, byte", 0xC300, func(t *testing.T, instr Instruction, op Opcode) {
		cpu.V[3] = 0xAA
		if err := instr.Execute(cpu, op); err != nil {
			t.Fatal(err)
		}
		if cpu.V[3] != 0 {
			t.Errorf("expected a zero mask to give 0, got 0x%02X", cpu.V[3])
		}
	})
}

func TestInstruction_RandomSeeded(t *testing.T) {
	run := func() [8]uint8 {
		c := newTestCPU()
		op := Decode(0xC0FF)
		instr, _ := Lookup(op)
		var out [8]uint8
		for i := range out {
			_ = instr.Execute(c, op)
			out[i] = c.V[0]
		}
		return out
	}
	if run() != run() {
		t.Errorf("expected equal seeds to produce equal sequences")
	}
}
