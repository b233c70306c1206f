// Package ppu provides the CHIP-8 display buffer: a fixed 64x32
// monochrome grid that sprites are XOR'd onto.
package ppu

import (
	"github.com/thelolagemann/gochip8/internal/types"
)

const (
	// ScreenWidth is the width of the screen in pixels.
	ScreenWidth = types.ScreenWidth
	// ScreenHeight is the height of the screen in pixels.
	ScreenHeight = types.ScreenHeight
)

// Frame is a snapshot of the display, indexed [y][x]. A true
// pixel is lit.
type Frame [ScreenHeight][ScreenWidth]bool

// Pixel reports whether the pixel at (x, y) is lit. Coordinates
// wrap around the edges of the screen.
func (f *Frame) Pixel(x, y int) bool {
	return f[wrap(y, ScreenHeight)][wrap(x, ScreenWidth)]
}

// PPU holds the display buffer. Its dimensions never change after
// construction, and it is only cleared by an explicit Clear.
type PPU struct {
	frame Frame
	dirty bool
}

// New returns a new blank PPU.
func New() *PPU {
	return &PPU{dirty: true}
}

// Clear turns every pixel off.
func (p *PPU) Clear() {
	p.frame = Frame{}
	p.dirty = true
}

// Pixel reports whether the pixel at (x, y) is lit.
func (p *PPU) Pixel(x, y int) bool {
	return p.frame.Pixel(x, y)
}

func wrap(v, size int) int {
	v %= size
	if v < 0 {
		v += size
	}
	return v
}
