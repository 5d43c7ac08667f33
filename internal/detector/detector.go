// Package detector handles system detection of ROM files.
package detector

import (
	"path/filepath"
	"strings"

	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/log"
)

// Detector handles system detection from file extensions.
type Detector struct {
	logger *log.Logger
}

// New creates a new system detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger: logger,
	}
}

// Detect determines the system of a ROM file from its extension.
// CHIP-8 ROMs carry no header, files with an unknown extension are
// therefore assumed to be CHIP-8 ROMs.
func (d *Detector) Detect(filename string) arch.System {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".ch8", ".c8", ".rom":
		return arch.CHIP8System
	case ".nes":
		return arch.NES
	default:
		d.logger.Debug("Unknown file extension, assuming CHIP-8 ROM",
			log.String("file", filename),
			log.String("extension", ext))
		return arch.CHIP8System
	}
}
