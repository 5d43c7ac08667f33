package peripheral

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestNew(t *testing.T) {
	s := New()

	assert.True(t, isBlank(s.Snapshot()))
	assert.False(t, s.AnyKeyDown())
}

func TestClear(t *testing.T) {
	s := New()
	s.DrawPixel(1, 0, 0)
	assert.False(t, isBlank(s.Snapshot()))

	s.Clear()
	assert.True(t, isBlank(s.Snapshot()))
}

func TestDrawPixel(t *testing.T) {
	tests := []struct {
		name      string
		initial   uint8
		value     uint8
		expected  uint8
		collision bool
	}{
		{"set blank pixel", 0, 1, 1, false},
		{"unset set pixel", 1, 1, 0, true},
		{"zero keeps blank pixel", 0, 0, 0, false},
		{"zero keeps set pixel", 1, 0, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			s.DrawPixel(tt.initial, 3, 4)

			collision := s.DrawPixel(tt.value, 3, 4)
			assert.Equal(t, tt.collision, collision)
			assert.Equal(t, tt.expected, s.Pixel(3, 4))
		})
	}
}

func TestDrawPixelWraps(t *testing.T) {
	tests := []struct {
		name         string
		x, y         int
		wantX, wantY int
	}{
		{"inside", 10, 10, 10, 10},
		{"x overflow", 64, 0, 0, 0},
		{"y overflow", 0, 32, 0, 0},
		{"both overflow", 70, 40, 6, 8},
		{"negative", -1, -1, 63, 31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			s.DrawPixel(1, tt.x, tt.y)

			display := s.Snapshot()
			assert.Equal(t, uint8(1), display[tt.wantY][tt.wantX])
		})
	}
}

func TestDrawSprite(t *testing.T) {
	sprite := []byte{0xF0, 0x90, 0x90, 0x90, 0xF0} // glyph 0

	s := New()
	collision := s.DrawSprite(sprite, 8, 4)
	assert.False(t, collision)

	display := s.Snapshot()
	assert.Equal(t, uint8(1), display[4][8])
	assert.Equal(t, uint8(1), display[4][11])
	assert.Equal(t, uint8(0), display[4][12])
	assert.Equal(t, uint8(1), display[5][8])
	assert.Equal(t, uint8(0), display[5][9])
	assert.Equal(t, uint8(1), display[5][11])

	collision = s.DrawSprite(sprite, 8, 4)
	assert.True(t, collision)
	assert.True(t, isBlank(s.Snapshot()))
}

func TestDrawSpriteWrapsAroundEdges(t *testing.T) {
	s := New()
	s.DrawSprite([]byte{0xFF, 0xFF}, 60, 31)

	display := s.Snapshot()
	assert.Equal(t, uint8(1), display[31][63])
	assert.Equal(t, uint8(1), display[31][0])
	assert.Equal(t, uint8(1), display[31][3])
	assert.Equal(t, uint8(1), display[0][60])
	assert.Equal(t, uint8(0), display[0][4])
}

func TestKeys(t *testing.T) {
	s := New()

	s.KeyDown(0xA)
	assert.True(t, s.IsKeyDown(0xA))
	assert.False(t, s.IsKeyDown(0xB))
	assert.True(t, s.AnyKeyDown())
	assert.Equal(t, uint8(0xA), s.LastKey())

	s.KeyDown(0x3)
	assert.Equal(t, uint8(0x3), s.LastKey())

	s.KeyUp(0xA)
	assert.False(t, s.IsKeyDown(0xA))
	assert.True(t, s.IsKeyDown(0x3))

	s.KeyUp(0x3)
	assert.False(t, s.AnyKeyDown())
	assert.Equal(t, uint8(0x3), s.LastKey())

	// releasing a key that is not held keeps the mask intact
	s.KeyUp(0x5)
	assert.False(t, s.AnyKeyDown())
}

func TestKeysOutsideKeypad(t *testing.T) {
	s := New()

	s.KeyDown(16)
	assert.False(t, s.AnyKeyDown())
	assert.False(t, s.IsKeyDown(16))
	assert.Equal(t, uint8(0), s.LastKey())
}

func isBlank(display Display) bool {
	for _, row := range display {
		for _, pixel := range row {
			if pixel != 0 {
				return false
			}
		}
	}
	return true
}
