// Package runner drives the CPU at a target instruction rate and ticks the
// timers at the fixed rate of 60 Hz.
package runner

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/retroenv/chip8vm/internal/cpu"
	"github.com/retroenv/chip8vm/internal/peripheral"
	"github.com/retroenv/retrogolib/log"
)

// FrameRate is the rate in Hz that the timers are decremented and the
// display is presented at.
const FrameRate = 60

// Frontend presents the machine output to the user.
type Frontend interface {
	// Present is called after every frame with a copy of the display and
	// whether the sound timer is active.
	Present(display peripheral.Display, soundOn bool)
}

// Machine wraps a CPU and serializes access to it, frontends call in from
// their own goroutines.
type Machine struct {
	logger *log.Logger

	mu             sync.Mutex
	cpu            *cpu.CPU
	cyclesPerFrame int
	cycles         uint64
}

// New returns a machine that executes hz instructions per second.
func New(logger *log.Logger, c *cpu.CPU, hz int) *Machine {
	return &Machine{
		logger:         logger,
		cpu:            c,
		cyclesPerFrame: max(hz/FrameRate, 1),
	}
}

// CyclesPerFrame returns the number of instructions executed per frame.
func (m *Machine) CyclesPerFrame() int {
	return m.cyclesPerFrame
}

// Cycles returns the number of instructions executed so far.
func (m *Machine) Cycles() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cycles
}

// Frame executes the instructions of one frame and ticks the timers once.
func (m *Machine) Frame() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.execute(m.cyclesPerFrame); err != nil {
		return err
	}
	m.cpu.TickTimers()
	return nil
}

// RunCycles executes n instructions without pacing, the timers are ticked
// every time a frame worth of instructions has been executed.
func (m *Machine) RunCycles(n int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	frameCycles := uint64(m.cyclesPerFrame)
	for range n {
		if err := m.execute(1); err != nil {
			return err
		}
		if m.cycles%frameCycles == 0 {
			m.cpu.TickTimers()
		}
	}
	return nil
}

// Run executes frames at the frame rate and presents every frame to the
// frontend until the context is cancelled or the CPU fails.
func (m *Machine) Run(ctx context.Context, frontend Frontend) error {
	m.logger.Debug("Starting emulation",
		log.Int("frame_rate", FrameRate),
		log.Int("cycles_per_frame", m.cyclesPerFrame))

	ticker := time.NewTicker(time.Second / FrameRate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		if err := m.Frame(); err != nil {
			return err
		}
		frontend.Present(m.Snapshot(), m.SoundActive())
	}
}

// KeyDown marks the keypad key as held down.
func (m *Machine) KeyDown(key uint8) {
	m.mu.Lock()
	m.cpu.Peripheral().KeyDown(key)
	m.mu.Unlock()
}

// KeyUp marks the keypad key as released.
func (m *Machine) KeyUp(key uint8) {
	m.mu.Lock()
	m.cpu.Peripheral().KeyUp(key)
	m.mu.Unlock()
}

// Snapshot returns a copy of the current display.
func (m *Machine) Snapshot() peripheral.Display {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cpu.Peripheral().Snapshot()
}

// SoundActive returns whether the sound timer is running.
func (m *Machine) SoundActive() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cpu.SoundTimer > 0
}

// Registers returns a copy of the CPU registers and the program counter.
func (m *Machine) Registers() ([16]uint8, uint16) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cpu.V, m.cpu.PC
}

func (m *Machine) execute(count int) error {
	for range count {
		if err := m.cpu.Step(); err != nil {
			return fmt.Errorf("cycle %d: %w", m.cycles, err)
		}
		m.cycles++
	}
	return nil
}
