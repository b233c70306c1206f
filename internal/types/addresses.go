package types

// Address represents an address in the CHIP-8's 12-bit address
// space. Values above MaxAddress are folded back into range by
// masking with AddressMask before they touch memory.
type Address = uint16

const (
	// MemorySize is the number of addressable bytes.
	MemorySize = 0x1000
	// AddressMask folds any 16-bit value into the 12-bit address space.
	AddressMask Address = 0x0FFF
	// MaxAddress is the highest addressable byte.
	MaxAddress Address = 0x0FFF

	// FontStart is the address of the first built-in hex glyph.
	// The interpreter reserves 0x000 - 0x1FF, the glyphs sit at
	// 0x050 - 0x09F by convention.
	FontStart Address = 0x0050
	// FontGlyphSize is the height, in bytes, of a single hex glyph.
	FontGlyphSize = 5

	// ProgramStart is the address programs are loaded to, and the
	// initial value of the program counter.
	ProgramStart Address = 0x0200
	// MaxProgramSize is the largest program that fits between
	// ProgramStart and the end of memory.
	MaxProgramSize = MemorySize - int(ProgramStart)
)

const (
	// RegisterCount is the number of general purpose registers (V0 - VF).
	RegisterCount = 16
	// FlagRegister is the index of VF, which doubles as the
	// carry/borrow/collision flag.
	FlagRegister = 0xF
	// StackDepth is the number of return addresses the stack holds.
	StackDepth = 16
	// KeyCount is the number of keys on the hex keypad.
	KeyCount = 16
	// InstructionSize is the width of an instruction in bytes.
	InstructionSize = 2
)

const (
	// ScreenWidth is the width of the display in pixels.
	ScreenWidth = 64
	// ScreenHeight is the height of the display in pixels.
	ScreenHeight = 32
	// SpriteWidth is the fixed width of a sprite row in pixels.
	SpriteWidth = 8
)
