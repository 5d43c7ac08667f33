package terminal

import (
	"strings"
	"sync"

	"github.com/retroenv/chip8vm/internal/peripheral"
)

// pixelColumns is the number of terminal columns per pixel, which makes the
// pixels roughly square.
const pixelColumns = 2

var (
	pixelOn  = strings.Repeat("█", pixelColumns)
	pixelOff = strings.Repeat(" ", pixelColumns)
)

// render returns the display as text, one line per row.
func render(display peripheral.Display) string {
	var sb strings.Builder
	sb.Grow(peripheral.DisplayHeight * (peripheral.DisplayWidth*len(pixelOn) + 1))

	for y, row := range display {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for _, pixel := range row {
			if pixel != 0 {
				sb.WriteString(pixelOn)
			} else {
				sb.WriteString(pixelOff)
			}
		}
	}
	return sb.String()
}

func title(soundOn bool) string {
	if soundOn {
		return "CHIP-8 ♪"
	}
	return "CHIP-8"
}

// releaser schedules the release of pressed keys after a number of frames.
type releaser struct {
	frames int

	mu      sync.Mutex
	pending map[uint8]int // remaining frames per held key
}

func newReleaser(frames int) *releaser {
	return &releaser{
		frames:  frames,
		pending: make(map[uint8]int),
	}
}

// press holds the key for the configured number of frames, pressing a held
// key again extends its hold time.
func (r *releaser) press(key uint8) {
	r.mu.Lock()
	r.pending[key] = r.frames
	r.mu.Unlock()
}

// tick advances one frame and returns the keys to release.
func (r *releaser) tick() []uint8 {
	r.mu.Lock()
	defer r.mu.Unlock()

	var released []uint8
	for key, remaining := range r.pending {
		remaining--
		if remaining > 0 {
			r.pending[key] = remaining
			continue
		}
		delete(r.pending, key)
		released = append(released, key)
	}
	return released
}
