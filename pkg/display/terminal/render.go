package terminal

import (
	"strings"

	"github.com/thelolagemann/gochip8/internal/ppu"
)

const (
	blockFull  = '█'
	blockUpper = '▀'
	blockLower = '▄'
	blockEmpty = ' '
)

// Render returns the lines of text that draw f, one line per pair
// of pixel rows.
func Render(f *ppu.Frame) []string {
	lines := make([]string, 0, ppu.ScreenHeight/2)
	var b strings.Builder
	for y := 0; y < ppu.ScreenHeight; y += 2 {
		b.Reset()
		for x := 0; x < ppu.ScreenWidth; x++ {
			top, bottom := f[y][x], f[y+1][x]
			switch {
			case top && bottom:
				b.WriteRune(blockFull)
			case top:
				b.WriteRune(blockUpper)
			case bottom:
				b.WriteRune(blockLower)
			default:
				b.WriteRune(blockEmpty)
			}
		}
		lines = append(lines, b.String())
	}
	return lines
}
