// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"errors"
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/ik5/audvox/audio"
	"github.com/ik5/audvox/sample"
)

// ErrInvalidStream wraps errors from the Ogg/Vorbis parser.
var ErrInvalidStream = errors.New("invalid Ogg Vorbis stream")

// oggReader is the part of oggvorbis.Reader the source uses.
type oggReader interface {
	SampleRate() int
	Channels() int
	// Read returns the number of float values decoded, not frames.
	Read([]float32) (int, error)
}

// floatSource adapts an oggReader to audio.Source.
type floatSource struct {
	dec oggReader
}

func (s *floatSource) SampleRate() int { return s.dec.SampleRate() }
func (s *floatSource) Channels() int   { return s.dec.Channels() }
func (s *floatSource) BufSize() int    { return 4096 }
func (s *floatSource) Close() error    { return nil }

func (s *floatSource) ReadSamples(dst []float32) (int, error) {
	ch := s.dec.Channels()
	dst = dst[:len(dst)-len(dst)%ch]
	if len(dst) == 0 {
		return 0, nil
	}

	n, err := s.dec.Read(dst)
	if err != nil && !errors.Is(err, io.EOF) {
		return n, fmt.Errorf("decoding vorbis: %w", err)
	}
	return n, err
}

// Decoder decodes Ogg Vorbis into PCM. Bits selects 8 or 16-bit output;
// zero means 16.
type Decoder struct {
	Bits int
}

func (d Decoder) Decode(r io.Reader) (sample.Source, error) {
	src, err := DecodeFloat(r)
	if err != nil {
		return nil, err
	}

	bits := d.Bits
	if bits == 0 {
		bits = 16
	}
	return audio.ToPCM(src, audio.WithBits(bits))
}

// DecodeFloat returns the decoded stream as floats, before any PCM
// encoding.
func DecodeFloat(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidStream, err)
	}
	return &floatSource{dec: dec}, nil
}
