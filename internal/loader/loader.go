// Package loader handles ROM file loading operations.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/chip8vm/internal/cpu"
)

var (
	// ErrEmptyROM is returned for a ROM without any program bytes.
	ErrEmptyROM = errors.New("empty ROM")
	// ErrROMTooLarge is returned for a ROM that does not fit into the program memory.
	ErrROMTooLarge = errors.New("ROM too large")
)

// Loader handles loading ROM files from disk.
type Loader struct{}

// New creates a new ROM loader.
func New() *Loader {
	return &Loader{}
}

// Load reads a raw ROM file. CHIP-8 ROMs have no header, the file content
// is the program image that gets loaded at the program start address.
func (l *Loader) Load(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	// read one byte more than allowed to detect oversized files
	data, err := io.ReadAll(io.LimitReader(file, cpu.MaxProgramSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return l.LoadFromBytes(data)
}

// LoadFromBytes validates the ROM data and returns it.
func (l *Loader) LoadFromBytes(data []byte) ([]byte, error) {
	switch {
	case len(data) == 0:
		return nil, ErrEmptyROM
	case len(data) > cpu.MaxProgramSize:
		return nil, fmt.Errorf("%w: more than %d bytes", ErrROMTooLarge, cpu.MaxProgramSize)
	}
	return data, nil
}
