// Package peripheral provides the display and keyboard state of the CHIP-8 machine.
// The display is a monochrome 64x32 bitmap that sprites are XOR-drawn onto,
// the keyboard is the 16 key hexadecimal keypad of the COSMAC VIP.
package peripheral

// Display dimensions in pixels.
const (
	DisplayWidth  = 64
	DisplayHeight = 32
)

// KeyCount is the number of keys on the hexadecimal keypad.
const KeyCount = 16

// Display is a row-major bitmap of the screen, each pixel is 0 or 1.
type Display [DisplayHeight][DisplayWidth]uint8

// State holds the display bitmap and the keyboard state.
type State struct {
	display Display
	keys    uint16 // bit k is set while key k is held down
	lastKey uint8  // most recently pressed key
}

// New returns a new peripheral state with a blank display and no keys held.
func New() *State {
	return &State{}
}

// Clear blanks the display.
func (s *State) Clear() {
	s.display = Display{}
}

// Pixel returns the pixel value at the wrapped coordinates.
func (s *State) Pixel(x, y int) uint8 {
	x, y = wrap(x, y)
	return s.display[y][x]
}

// Snapshot returns a copy of the display for rendering.
func (s *State) Snapshot() Display {
	return s.display
}

// DrawPixel XORs the value into the pixel at the wrapped coordinates and
// returns whether a previously set pixel got unset by it.
func (s *State) DrawPixel(value uint8, x, y int) bool {
	x, y = wrap(x, y)
	original := s.display[y][x]
	s.display[y][x] = original ^ (value & 1)
	return original == 1 && s.display[y][x] == 0
}

// DrawSprite draws every bit of every sprite byte as a pixel, one byte per row
// starting at the given coordinates, most significant bit leftmost.
// It returns true if any pixel got unset, which is a collision.
func (s *State) DrawSprite(sprite []byte, x, y int) bool {
	collision := false
	for row, b := range sprite {
		for col := range 8 {
			bit := (b >> (7 - col)) & 1
			if s.DrawPixel(bit, x+col, y+row) {
				collision = true
			}
		}
	}
	return collision
}

// KeyDown marks the key as held down and records it as the most recently
// pressed key. Keys outside of the keypad are ignored.
func (s *State) KeyDown(key uint8) {
	if key >= KeyCount {
		return
	}
	s.keys |= 1 << key
	s.lastKey = key
}

// KeyUp marks the key as released. Keys outside of the keypad are ignored.
func (s *State) KeyUp(key uint8) {
	if key >= KeyCount {
		return
	}
	s.keys &^= 1 << key
}

// IsKeyDown returns whether the key is currently held down.
func (s *State) IsKeyDown(key uint8) bool {
	if key >= KeyCount {
		return false
	}
	return s.keys>>key&1 == 1
}

// AnyKeyDown returns whether at least one key is held down.
func (s *State) AnyKeyDown() bool {
	return s.keys != 0
}

// LastKey returns the most recently pressed key.
func (s *State) LastKey() uint8 {
	return s.lastKey
}

// wrap maps the coordinates into the display area, negative values wrap as well.
func wrap(x, y int) (int, int) {
	x %= DisplayWidth
	if x < 0 {
		x += DisplayWidth
	}
	y %= DisplayHeight
	if y < 0 {
		y += DisplayHeight
	}
	return x, y
}
