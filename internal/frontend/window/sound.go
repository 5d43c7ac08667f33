package window

import (
	"encoding/binary"
	"math"
	"sync/atomic"
)

const (
	sampleRate    = 44100
	toneFrequency = 440
	toneVolume    = 0.2

	// bytes per stereo frame of two float32 samples
	bytesPerFrame = 8
)

// squareWave is an endless audio stream of 32 bit float stereo samples that
// plays a square wave while enabled and silence otherwise.
type squareWave struct {
	enabled atomic.Bool
	period  int // in sample frames
	pos     int
}

func newSquareWave(sampleRate, frequency int) *squareWave {
	return &squareWave{
		period: max(sampleRate/frequency, 2),
	}
}

// SetEnabled switches the tone on or off.
func (s *squareWave) SetEnabled(enabled bool) {
	s.enabled.Store(enabled)
}

// Read implements io.Reader and fills p with whole sample frames.
func (s *squareWave) Read(p []byte) (int, error) {
	n := len(p) / bytesPerFrame * bytesPerFrame
	enabled := s.enabled.Load()

	for i := 0; i < n; i += bytesPerFrame {
		var sample float32
		if enabled {
			sample = toneVolume
			if s.pos >= s.period/2 {
				sample = -toneVolume
			}
		}
		s.pos = (s.pos + 1) % s.period

		bits := math.Float32bits(sample)
		binary.LittleEndian.PutUint32(p[i:], bits)
		binary.LittleEndian.PutUint32(p[i+4:], bits)
	}
	return n, nil
}
