// Package terminal implements a text terminal frontend based on gocui.
package terminal

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"unicode"

	"github.com/jroimartin/gocui"
	"github.com/retroenv/chip8vm/internal/keymap"
	"github.com/retroenv/chip8vm/internal/peripheral"
	"github.com/retroenv/chip8vm/internal/runner"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

const (
	displayView = "display"

	// terminals report key presses only, a pressed key is held down for
	// this many frames.
	keyHoldFrames = 6
)

// Terminal runs the machine in the terminal, rendering the display with
// block characters.
type Terminal struct {
	logger   *log.Logger
	machine  *runner.Machine
	releaser *releaser

	// update queues a function into the gocui main loop. Events queued
	// after the main loop returned are never consumed, so every path that
	// ends the main loop marks the terminal as closing first.
	update  func(func(*gocui.Gui) error)
	mu      sync.Mutex
	closing bool
}

// New returns a terminal frontend.
func New(logger *log.Logger, machine *runner.Machine) *Terminal {
	return &Terminal{
		logger:   logger,
		machine:  machine,
		releaser: newReleaser(keyHoldFrames),
	}
}

// Run shows the display in the terminal until Ctrl-C or Escape is pressed,
// the context is cancelled or the machine fails.
func (t *Terminal) Run(ctx context.Context) error {
	g, err := gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		return fmt.Errorf("creating terminal gui: %w", err)
	}
	defer g.Close()
	t.update = g.Update

	t.logger.Debug("Opening terminal display", log.Int("hold_frames", keyHoldFrames))

	g.SetManagerFunc(layout)
	if err := t.bindKeys(g); err != nil {
		return fmt.Errorf("binding keys: %w", err)
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	result := make(chan error, 1)
	go func() {
		err := t.machine.Run(runCtx, t)
		t.queue(func(*gocui.Gui) error { return gocui.ErrQuit })
		t.close()
		result <- err
	}()

	err = g.MainLoop()
	t.close()
	cancel()
	runErr := <-result

	if err != nil && !errors.Is(err, gocui.ErrQuit) {
		return fmt.Errorf("running terminal gui: %w", err)
	}
	if errors.Is(runErr, context.Canceled) {
		// nil if the user quit, the cancellation cause otherwise
		return ctx.Err()
	}
	return runErr
}

// Present implements runner.Frontend. It releases keys whose hold time
// expired and schedules a redraw of the display.
func (t *Terminal) Present(display peripheral.Display, soundOn bool) {
	for _, key := range t.releaser.tick() {
		t.machine.KeyUp(key)
	}

	t.queue(func(g *gocui.Gui) error {
		v, err := g.View(displayView)
		if err == nil {
			v.Title = title(soundOn)
			v.Clear()
			_, err = fmt.Fprint(v, render(display))
		}
		if err != nil {
			t.close()
			return fmt.Errorf("drawing display: %w", err)
		}
		return nil
	})
}

// queue passes f to the main loop unless the terminal is closing.
func (t *Terminal) queue(f func(*gocui.Gui) error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.closing {
		t.update(f)
	}
}

// close stops any further events from being queued.
func (t *Terminal) close() {
	t.mu.Lock()
	t.closing = true
	t.mu.Unlock()
}

func (t *Terminal) bindKeys(g *gocui.Gui) error {
	for _, key := range []gocui.Key{gocui.KeyCtrlC, gocui.KeyEsc} {
		if err := g.SetKeybinding("", key, gocui.ModNone, t.quit); err != nil {
			return err
		}
	}

	bound := set.New[rune]()
	for _, r := range keymap.Runes() {
		for _, variant := range []rune{r, unicode.ToUpper(r)} {
			if bound.Contains(variant) {
				continue
			}
			bound.Add(variant)

			key, _ := keymap.Lookup(variant)
			if err := g.SetKeybinding("", variant, gocui.ModNone, t.pressHandler(key)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (t *Terminal) pressHandler(key uint8) func(*gocui.Gui, *gocui.View) error {
	return func(*gocui.Gui, *gocui.View) error {
		t.machine.KeyDown(key)
		t.releaser.press(key)
		return nil
	}
}

func (t *Terminal) quit(*gocui.Gui, *gocui.View) error {
	t.close()
	return gocui.ErrQuit
}

func layout(g *gocui.Gui) error {
	width := peripheral.DisplayWidth*pixelColumns + 1
	height := peripheral.DisplayHeight + 1
	v, err := g.SetView(displayView, 0, 0, width, height)
	if err != nil {
		if !errors.Is(err, gocui.ErrUnknownView) {
			return err
		}
		v.Title = title(false)
		v.Frame = true
	}
	return nil
}
