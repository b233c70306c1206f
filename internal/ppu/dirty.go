package ppu

import (
	"github.com/cespare/xxhash"
	"github.com/thelolagemann/gochip8/pkg/utils"
)

// PackedSize is the size of a frame packed one bit per pixel.
const PackedSize = ScreenWidth * ScreenHeight / 8

// Dirty reports whether the display has changed since the
// frame was last read with Frame.
func (p *PPU) Dirty() bool {
	return p.dirty
}

// Frame returns a copy of the display and clears the dirty flag.
func (p *PPU) Frame() Frame {
	p.dirty = false
	return p.frame
}

// Peek returns a copy of the display without touching the dirty flag.
func (p *PPU) Peek() Frame {
	return p.frame
}

// Hash returns the xxhash of the packed display, which drivers use
// to skip sending frames identical to the last one they showed.
func (p *PPU) Hash() uint64 {
	return Hash(&p.frame)
}

// Hash returns the xxhash of the packed frame.
func Hash(f *Frame) uint64 {
	return xxhash.Sum64(Pack(f))
}

// Pack packs f one bit per pixel, row major, most significant
// bit leftmost.
func Pack(f *Frame) []byte {
	out := make([]byte, PackedSize)
	for y := 0; y < ScreenHeight; y++ {
		for x := 0; x < ScreenWidth; x++ {
			if f[y][x] {
				i := y*ScreenWidth + x
				out[i/8] = utils.SetBit(out[i/8], uint8(7-i%8))
			}
		}
	}
	return out
}

// Unpack is the inverse of Pack. Short input leaves the remaining
// pixels off.
func Unpack(b []byte) Frame {
	var f Frame
	for i := 0; i < len(b) && i < PackedSize; i++ {
		for bit := 0; bit < 8; bit++ {
			if utils.TestBit(b[i], uint8(7-bit)) {
				p := i*8 + bit
				f[p/ScreenWidth][p%ScreenWidth] = true
			}
		}
	}
	return f
}
