// Package window implements a desktop window frontend based on ebiten.
package window

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/retroenv/chip8vm/internal/keymap"
	"github.com/retroenv/chip8vm/internal/peripheral"
	"github.com/retroenv/chip8vm/internal/runner"
	"github.com/retroenv/retrogolib/log"
)

// hostKeys maps the keyboard keys of the keypad layout to their runes.
var hostKeys = map[ebiten.Key]rune{
	ebiten.KeyDigit1: '1', ebiten.KeyDigit2: '2', ebiten.KeyDigit3: '3', ebiten.KeyDigit4: '4',
	ebiten.KeyQ: 'q', ebiten.KeyW: 'w', ebiten.KeyE: 'e', ebiten.KeyR: 'r',
	ebiten.KeyA: 'a', ebiten.KeyS: 's', ebiten.KeyD: 'd', ebiten.KeyF: 'f',
	ebiten.KeyZ: 'z', ebiten.KeyX: 'x', ebiten.KeyC: 'c', ebiten.KeyV: 'v',
}

// Window runs the machine in a desktop window. The ebiten game loop drives
// the machine with one frame per tick.
type Window struct {
	logger  *log.Logger
	machine *runner.Machine
	scale   int

	keys   keyState
	pixels []byte
	tone   *squareWave
	quit   atomic.Bool
}

// New returns a window frontend, every display pixel is drawn as a
// scale x scale square.
func New(logger *log.Logger, machine *runner.Machine, scale int) *Window {
	return &Window{
		logger:  logger,
		machine: machine,
		scale:   scale,
		pixels:  make([]byte, peripheral.DisplayWidth*peripheral.DisplayHeight*4),
		tone:    newSquareWave(sampleRate, toneFrequency),
	}
}

// Run opens the window and runs the game loop until the window is closed,
// Escape is pressed, the context is cancelled or the machine fails.
func (w *Window) Run(ctx context.Context) error {
	audioContext := audio.NewContext(sampleRate)
	player, err := audioContext.NewPlayerF32(w.tone)
	if err != nil {
		return fmt.Errorf("creating audio player: %w", err)
	}
	player.Play()
	defer player.Pause()

	stop := context.AfterFunc(ctx, func() {
		w.quit.Store(true)
	})
	defer stop()

	ebiten.SetWindowTitle("CHIP-8")
	ebiten.SetWindowSize(peripheral.DisplayWidth*w.scale, peripheral.DisplayHeight*w.scale)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(runner.FrameRate)

	w.logger.Debug("Opening window", log.Int("scale", w.scale))

	if err := ebiten.RunGame(w); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return ctx.Err()
}

// Update implements ebiten.Game and executes one frame.
func (w *Window) Update() error {
	if w.quit.Load() || ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	var pressed []uint8
	for key, r := range hostKeys {
		if !ebiten.IsKeyPressed(key) {
			continue
		}
		if k, ok := keymap.Lookup(r); ok {
			pressed = append(pressed, k)
		}
	}
	down, up := w.keys.update(pressed)
	for _, k := range down {
		w.machine.KeyDown(k)
	}
	for _, k := range up {
		w.machine.KeyUp(k)
	}

	if err := w.machine.Frame(); err != nil {
		return err
	}
	w.tone.SetEnabled(w.machine.SoundActive())
	return nil
}

// Draw implements ebiten.Game and draws the display.
func (w *Window) Draw(screen *ebiten.Image) {
	renderRGBA(w.pixels, w.machine.Snapshot())
	screen.WritePixels(w.pixels)
}

// Layout implements ebiten.Game, the screen has the size of the display and
// is scaled by ebiten to the window size.
func (w *Window) Layout(_, _ int) (int, int) {
	return peripheral.DisplayWidth, peripheral.DisplayHeight
}
