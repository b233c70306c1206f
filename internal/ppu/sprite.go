package ppu

import "github.com/thelolagemann/gochip8/internal/types"

// DrawSprite XORs sprite onto the display with its top left corner
// at (x, y). Each byte of sprite is one 8 pixel row, most significant
// bit leftmost. The start position and every pixel wrap around the
// edges of the screen. It reports whether any lit pixel was turned
// off, which the CPU stores in VF as the collision flag.
func (p *PPU) DrawSprite(x, y uint8, sprite []byte) (collision bool) {
	x0 := int(x) % ScreenWidth
	y0 := int(y) % ScreenHeight

	for row, line := range sprite {
		if line == 0 {
			continue
		}
		py := (y0 + row) % ScreenHeight
		for col := 0; col < types.SpriteWidth; col++ {
			if line&(types.Bit7>>col) == 0 {
				continue
			}
			px := (x0 + col) % ScreenWidth
			if p.frame[py][px] {
				collision = true
			}
			p.frame[py][px] = !p.frame[py][px]
		}
		p.dirty = true
	}

	return collision
}
