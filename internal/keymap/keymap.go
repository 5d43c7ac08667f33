// Package keymap maps host keyboard keys to the CHIP-8 hexadecimal keypad.
//
// The keypad layout of the COSMAC VIP is mapped onto the left block of a
// QWERTY keyboard:
//
//	1 2 3 4      1 2 3 C
//	Q W E R  ->  4 5 6 D
//	A S D F      7 8 9 E
//	Z X C V      A 0 B F
package keymap

import "unicode"

// layout lists the host keys row by row, the index into keys is the keypad key.
const layout = "1234qwerasdfzxcv"

var keys = [len(layout)]uint8{
	0x1, 0x2, 0x3, 0xC,
	0x4, 0x5, 0x6, 0xD,
	0x7, 0x8, 0x9, 0xE,
	0xA, 0x0, 0xB, 0xF,
}

// Lookup returns the keypad key for a host key rune, letters are matched
// case-insensitively.
func Lookup(r rune) (uint8, bool) {
	r = unicode.ToLower(r)
	for i, c := range layout {
		if c == r {
			return keys[i], true
		}
	}
	return 0, false
}

// Runes returns all host key runes that map to a keypad key, in layout order.
func Runes() []rune {
	return []rune(layout)
}
