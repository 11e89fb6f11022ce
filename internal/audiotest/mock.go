// SPDX-License-Identifier: EPL-2.0

// Package audiotest provides synthetic float and PCM sources for tests.
package audiotest

import (
	"io"
	"math"
)

// Waveform returns the value of channel ch at frame i.
type Waveform func(i, ch int) float32

// FloatSource generates frames from a Waveform. It satisfies audio.Source;
// the interface is not named here so audio can use it in its own tests.
type FloatSource struct {
	rate     int
	channels int
	frames   int
	pos      int
	wave     Waveform
}

// NewFloatSource returns a source of frames frames.
func NewFloatSource(rate, channels, frames int, wave Waveform) *FloatSource {
	return &FloatSource{rate: rate, channels: channels, frames: frames, wave: wave}
}

func NewSilentSource(rate, channels, frames int) *FloatSource {
	return NewConstantSource(rate, channels, frames, 0)
}

func NewConstantSource(rate, channels, frames int, v float32) *FloatSource {
	return NewFloatSource(rate, channels, frames, func(int, int) float32 { return v })
}

// NewSineSource generates the same sine on every channel.
func NewSineSource(rate, channels, frames int, freq float64) *FloatSource {
	return NewFloatSource(rate, channels, frames, func(i, _ int) float32 {
		return float32(math.Sin(2 * math.Pi * freq * float64(i) / float64(rate)))
	})
}

func (s *FloatSource) SampleRate() int { return s.rate }
func (s *FloatSource) Channels() int   { return s.channels }
func (s *FloatSource) BufSize() int    { return 1024 * s.channels }
func (s *FloatSource) Close() error    { return nil }

// Rewind restarts generation from the first frame.
func (s *FloatSource) Rewind() { s.pos = 0 }

func (s *FloatSource) ReadSamples(dst []float32) (int, error) {
	if s.pos >= s.frames {
		return 0, io.EOF
	}

	n := min(len(dst)/s.channels, s.frames-s.pos)
	for f := range n {
		for ch := range s.channels {
			dst[f*s.channels+ch] = s.wave(s.pos+f, ch)
		}
	}
	s.pos += n

	var err error
	if s.pos >= s.frames {
		err = io.EOF
	}
	return n * s.channels, err
}
