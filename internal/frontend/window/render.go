package window

import "github.com/retroenv/chip8vm/internal/peripheral"

// Pixel colors in RGBA.
var (
	colorOn  = [4]byte{0xE0, 0xF0, 0xE0, 0xFF}
	colorOff = [4]byte{0x10, 0x18, 0x10, 0xFF}
)

// renderRGBA writes the display as RGBA pixels into buf, which has to hold
// 4 bytes for every display pixel.
func renderRGBA(buf []byte, display peripheral.Display) {
	for y, row := range display {
		for x, pixel := range row {
			c := colorOff
			if pixel != 0 {
				c = colorOn
			}
			offset := (y*peripheral.DisplayWidth + x) * 4
			copy(buf[offset:offset+4], c[:])
		}
	}
}

// keyState tracks the keypad keys held down in the previous frame.
type keyState struct {
	held [peripheral.KeyCount]bool
}

// update sets the keys held in this frame and returns the keys that got
// pressed and released since the previous frame.
func (s *keyState) update(pressed []uint8) (down, up []uint8) {
	var now [peripheral.KeyCount]bool
	for _, k := range pressed {
		if int(k) < len(now) {
			now[k] = true
		}
	}

	for k := range now {
		switch {
		case now[k] && !s.held[k]:
			down = append(down, uint8(k))
		case !now[k] && s.held[k]:
			up = append(up, uint8(k))
		}
	}
	s.held = now
	return down, up
}
