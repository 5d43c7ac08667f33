// Package session orchestrates a virtual machine run: loading the ROM,
// creating the machine and running it in the selected user interface.
package session

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/chip8vm/internal/cpu"
	"github.com/retroenv/chip8vm/internal/detector"
	"github.com/retroenv/chip8vm/internal/frontend/headless"
	"github.com/retroenv/chip8vm/internal/frontend/terminal"
	"github.com/retroenv/chip8vm/internal/frontend/window"
	"github.com/retroenv/chip8vm/internal/loader"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/chip8vm/internal/peripheral"
	"github.com/retroenv/chip8vm/internal/runner"
	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/log"
)

// frontend runs the machine until it is closed or fails.
type frontend interface {
	Run(ctx context.Context) error
}

// Session runs ROMs in the virtual machine.
type Session struct {
	logger   *log.Logger
	detector *detector.Detector
	loader   *loader.Loader
	out      io.Writer // output of the headless frontend
}

// New creates a new session.
func New(logger *log.Logger) *Session {
	return &Session{
		logger:   logger,
		detector: detector.New(logger),
		loader:   loader.New(),
		out:      os.Stdout,
	}
}

// Run loads the ROM file and runs it.
func (s *Session) Run(ctx context.Context, opts options.Program) error {
	if system := s.detector.Detect(opts.Input); system != arch.CHIP8System {
		return fmt.Errorf("unsupported system '%s'", system)
	}

	rom, err := s.loader.Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading rom: %w", err)
	}
	return s.RunROM(ctx, rom, opts)
}

// RunROM runs an already loaded ROM.
// This is useful for testing and programmatic usage where the ROM is already in memory.
func (s *Session) RunROM(ctx context.Context, rom []byte, opts options.Program) error {
	machine, err := s.createMachine(rom, opts)
	if err != nil {
		return fmt.Errorf("creating machine: %w", err)
	}

	fe, err := s.createFrontend(opts, machine)
	if err != nil {
		return fmt.Errorf("creating frontend: %w", err)
	}

	s.printInfo(opts, len(rom), machine)

	if err := fe.Run(ctx); err != nil {
		return fmt.Errorf("running emulation: %w", err)
	}
	return nil
}

// createMachine creates the CPU with the ROM loaded and wraps it in a machine.
func (s *Session) createMachine(rom []byte, opts options.Program) (*runner.Machine, error) {
	cpuOpts := []cpu.Option{
		cpu.WithLogger(s.logger),
		cpu.WithTrace(opts.Trace),
	}
	if opts.Seed != 0 {
		cpuOpts = append(cpuOpts, cpu.WithSeed(opts.Seed))
	}

	c := cpu.New(peripheral.New(), cpuOpts...)
	if err := c.Load(rom); err != nil {
		return nil, fmt.Errorf("loading program: %w", err)
	}
	return runner.New(s.logger, c, opts.Hz), nil
}

// createFrontend creates the frontend for the selected user interface.
func (s *Session) createFrontend(opts options.Program, machine *runner.Machine) (frontend, error) {
	switch opts.UI {
	case options.UIWindow:
		return window.New(s.logger, machine, opts.Scale), nil
	case options.UITerminal:
		return terminal.New(s.logger, machine), nil
	case options.UIHeadless:
		return headless.New(s.logger, machine, s.out, opts.Cycles), nil
	default:
		return nil, fmt.Errorf("unsupported user interface '%s'", opts.UI)
	}
}

// printInfo prints information about the ROM being run.
func (s *Session) printInfo(opts options.Program, size int, machine *runner.Machine) {
	if opts.Quiet {
		return
	}

	s.logger.Info("Running Chip-8 ROM",
		log.String("file", opts.Input),
		log.Int("size", size),
		log.String("ui", opts.UI),
		log.Int("hz", opts.Hz),
		log.Int("cycles_per_frame", machine.CyclesPerFrame()),
	)
}
