package terminal

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/jroimartin/gocui"
	"github.com/retroenv/chip8vm/internal/cpu"
	"github.com/retroenv/chip8vm/internal/peripheral"
	"github.com/retroenv/chip8vm/internal/runner"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// newTestTerminal returns a terminal whose main loop events are counted
// instead of being sent to a gui.
func newTestTerminal(t *testing.T) (*Terminal, *cpu.CPU, *int) {
	t.Helper()

	c := cpu.New(peripheral.New())
	term := New(log.NewTestLogger(t), runner.New(log.NewTestLogger(t), c, 600))

	queued := 0
	term.update = func(func(*gocui.Gui) error) { queued++ }
	return term, c, &queued
}

func TestPresentStopsQueueingAfterQuit(t *testing.T) {
	term, _, queued := newTestTerminal(t)

	term.Present(peripheral.Display{}, false)
	assert.Equal(t, 1, *queued)

	err := term.quit(nil, nil)
	assert.True(t, errors.Is(err, gocui.ErrQuit))

	term.Present(peripheral.Display{}, true)
	term.Present(peripheral.Display{}, false)
	assert.Equal(t, 1, *queued)
}

func TestPresentReleasesKeysWhileClosing(t *testing.T) {
	term, c, queued := newTestTerminal(t)

	assert.NoError(t, term.pressHandler(0x5)(nil, nil))
	assert.True(t, c.Peripheral().IsKeyDown(0x5))

	term.close()
	for range keyHoldFrames {
		term.Present(peripheral.Display{}, false)
	}
	assert.False(t, c.Peripheral().IsKeyDown(0x5))
	assert.Equal(t, 0, *queued)
}

func TestRender(t *testing.T) {
	var display peripheral.Display
	display[0][0] = 1
	display[1][63] = 1

	lines := strings.Split(render(display), "\n")
	assert.Len(t, lines, peripheral.DisplayHeight)

	assert.True(t, strings.HasPrefix(lines[0], "██  "))
	assert.True(t, strings.HasSuffix(lines[1], "  ██"))
	assert.Equal(t, strings.Repeat(" ", peripheral.DisplayWidth*pixelColumns), lines[2])
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "CHIP-8", title(false))
	assert.Contains(t, title(true), "♪")
}

func TestReleaser(t *testing.T) {
	r := newReleaser(3)

	r.press(0xA)
	assert.Empty(t, r.tick())
	r.press(0xB)
	assert.Empty(t, r.tick())
	assert.Equal(t, []uint8{0xA}, r.tick())

	// pressing again extends the hold time
	r.press(0xB)
	assert.Empty(t, r.tick())
	assert.Empty(t, r.tick())
	assert.Equal(t, []uint8{0xB}, r.tick())
	assert.Empty(t, r.tick())
}

func TestReleaserReleasesAllExpiredKeys(t *testing.T) {
	r := newReleaser(1)
	r.press(0x1)
	r.press(0x2)

	released := r.tick()
	slices.Sort(released)
	assert.Equal(t, []uint8{0x1, 0x2}, released)
}
