package keymap

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		r     rune
		key   uint8
		found bool
	}{
		{'1', 0x1, true},
		{'4', 0xC, true},
		{'q', 0x4, true},
		{'R', 0xD, true},
		{'s', 0x8, true},
		{'x', 0x0, true},
		{'V', 0xF, true},
		{'p', 0, false},
		{' ', 0, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.r), func(t *testing.T) {
			key, found := Lookup(tt.r)
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.key, key)
		})
	}
}

func TestRunesCoverKeypad(t *testing.T) {
	runes := Runes()
	assert.Len(t, runes, 16)

	var seen [16]bool
	for _, r := range runes {
		key, found := Lookup(r)
		assert.True(t, found)
		assert.False(t, seen[key])
		seen[key] = true
	}
}
