// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/retroenv/chip8vm/internal/options"
)

// ParseFlags parses command line flags and returns the program options
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || len(args) == 0 {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, err
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}

	opts.Input = args[0]
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: chip8vm [options] <ROM file to run>\n\n")
	if e.msg != "" {
		fmt.Printf("%s\n\n", e.msg)
	}
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after ROM file, please pass the ROM file as last argument", arg),
			}
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	opts.UI = strings.ToLower(opts.UI)
	if !slices.Contains(options.UIs, opts.UI) {
		return fmt.Errorf("unsupported user interface: %s. Valid options: %s",
			opts.UI, strings.Join(options.UIs, ", "))
	}

	switch {
	case opts.Hz <= 0:
		return fmt.Errorf("invalid instruction rate %d, must be positive", opts.Hz)
	case opts.Scale <= 0:
		return fmt.Errorf("invalid window scale %d, must be positive", opts.Scale)
	case opts.Cycles < 0:
		return fmt.Errorf("invalid cycle count %d, must not be negative", opts.Cycles)
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.UI, "ui", options.UIWindow, "user interface to run the ROM in (window/terminal/headless)")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction, implies -debug")
	flags.IntVar(&opts.Hz, "hz", options.DefaultHz, "number of instructions executed per second")
	flags.IntVar(&opts.Cycles, "cycles", options.DefaultCycles, "number of instructions to execute in headless mode")
	flags.IntVar(&opts.Scale, "scale", options.DefaultScale, "pixel scale of the window")
	flags.Uint64Var(&opts.Seed, "seed", 0, "seed of the random number generator, 0 uses a time based seed")
}
