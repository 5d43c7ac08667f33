package cli

import (
	"errors"
	"os"
	"testing"

	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

//nolint:funlen // test functions can be long
func TestParseFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want options.Program
	}{
		{
			name: "default flags",
			args: []string{"prog", "pong.ch8"},
			want: options.Program{
				Parameters: options.Parameters{Input: "pong.ch8"},
				Flags:      options.Flags{UI: options.UIWindow},
				Machine: options.Machine{
					Hz:     options.DefaultHz,
					Cycles: options.DefaultCycles,
					Scale:  options.DefaultScale,
				},
			},
		},
		{
			name: "headless with settings",
			args: []string{"prog", "-ui", "HEADLESS", "-cycles", "500", "-hz", "1000", "-seed", "7", "test.ch8"},
			want: options.Program{
				Parameters: options.Parameters{Input: "test.ch8"},
				Flags:      options.Flags{UI: options.UIHeadless},
				Machine: options.Machine{
					Hz:     1000,
					Cycles: 500,
					Scale:  options.DefaultScale,
					Seed:   7,
				},
			},
		},
		{
			name: "terminal with logging flags",
			args: []string{"prog", "-ui", "terminal", "-debug", "-trace", "-q", "-scale", "4", "test.ch8"},
			want: options.Program{
				Parameters: options.Parameters{Input: "test.ch8"},
				Flags:      options.Flags{UI: options.UITerminal, Debug: true, Quiet: true, Trace: true},
				Machine: options.Machine{
					Hz:     options.DefaultHz,
					Cycles: options.DefaultCycles,
					Scale:  4,
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldArgs := os.Args
			t.Cleanup(func() { os.Args = oldArgs })

			os.Args = tt.args

			got, err := ParseFlags()
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFlagsErrors(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		usageError bool
		errContain string
	}{
		{"missing ROM file", []string{"prog"}, true, ""},
		{"flag after ROM file", []string{"prog", "test.ch8", "-debug"}, true, "found after ROM file"},
		{"unsupported ui", []string{"prog", "-ui", "sdl", "test.ch8"}, false, "unsupported user interface: sdl"},
		{"zero rate", []string{"prog", "-hz", "0", "test.ch8"}, false, "invalid instruction rate"},
		{"negative scale", []string{"prog", "-scale", "-1", "test.ch8"}, false, "invalid window scale"},
		{"negative cycles", []string{"prog", "-cycles", "-5", "test.ch8"}, false, "invalid cycle count"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldArgs := os.Args
			t.Cleanup(func() { os.Args = oldArgs })

			os.Args = tt.args

			_, err := ParseFlags()
			assert.Error(t, err)

			var usageErr *UsageError
			assert.Equal(t, tt.usageError, errors.As(err, &usageErr))
			if tt.errContain != "" {
				assert.ErrorContains(t, err, tt.errContain)
			}
		})
	}
}
