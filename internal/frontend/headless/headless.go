// Package headless runs the machine without a user interface for a fixed
// number of instructions and prints the final display state.
package headless

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/retroenv/chip8vm/internal/peripheral"
	"github.com/retroenv/chip8vm/internal/runner"
	"github.com/retroenv/retrogolib/log"
)

// batchCycles is the number of instructions executed between checks of the
// context for cancellation.
const batchCycles = 1000

// Headless executes a fixed number of instructions unpaced.
type Headless struct {
	logger  *log.Logger
	machine *runner.Machine
	out     io.Writer
	cycles  int
}

// New returns a headless frontend that executes the given number of
// instructions and prints the result to out.
func New(logger *log.Logger, machine *runner.Machine, out io.Writer, cycles int) *Headless {
	return &Headless{
		logger:  logger,
		machine: machine,
		out:     out,
		cycles:  cycles,
	}
}

// Run executes the instructions and prints the display and the register
// state. The state is printed as well if the machine fails.
func (h *Headless) Run(ctx context.Context) error {
	h.logger.Debug("Running headless", log.Int("cycles", h.cycles))

	var runErr error
	for remaining := h.cycles; remaining > 0; {
		if err := ctx.Err(); err != nil {
			return err
		}

		n := min(remaining, batchCycles)
		if runErr = h.machine.RunCycles(n); runErr != nil {
			break
		}
		remaining -= n
	}

	if err := h.print(); err != nil {
		return fmt.Errorf("printing machine state: %w", err)
	}
	return runErr
}

func (h *Headless) print() error {
	registers, pc := h.machine.Registers()
	display := renderDisplay(h.machine.Snapshot())
	status := renderStatus(h.machine.Cycles(), pc, registers, h.machine.SoundActive())

	_, err := fmt.Fprintf(h.out, "%s\n%s\n", display, status)
	return err
}

func renderDisplay(display peripheral.Display) string {
	on := color.New(color.FgGreen).SprintFunc()
	border := color.New(color.FgHiBlack).SprintFunc()

	var sb strings.Builder
	frame := border("+" + strings.Repeat("-", peripheral.DisplayWidth) + "+")
	sb.WriteString(frame)
	sb.WriteByte('\n')

	for _, row := range display {
		sb.WriteString(border("|"))
		for _, pixel := range row {
			if pixel != 0 {
				sb.WriteString(on("#"))
			} else {
				sb.WriteByte(' ')
			}
		}
		sb.WriteString(border("|"))
		sb.WriteByte('\n')
	}

	sb.WriteString(frame)
	return sb.String()
}

func renderStatus(cycles uint64, pc uint16, registers [16]uint8, soundOn bool) string {
	label := color.New(color.FgCyan).SprintFunc()

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %d %s $%04X", label("cycles"), cycles, label("pc"), pc)
	for i, value := range registers {
		fmt.Fprintf(&sb, " %s=$%02X", label(fmt.Sprintf("V%X", i)), value)
	}
	if soundOn {
		sb.WriteString(" " + color.New(color.FgYellow).Sprint("sound"))
	}
	return sb.String()
}
