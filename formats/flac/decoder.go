// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/tphakala/flac"

	"github.com/ik5/audvox/sample"
)

var (
	// ErrInvalidStream indicates the data is not a FLAC stream
	ErrInvalidStream = errors.New("invalid FLAC stream")

	// ErrUnsupportedBitDepth indicates a sample size other than 8, 16, 24 or 32 bits
	ErrUnsupportedBitDepth = errors.New("unsupported FLAC bit depth")
)

// frameReader is the part of flac.Decoder the source uses. Next returns
// one decoded frame of interleaved little-endian samples.
type frameReader interface {
	Next() ([]byte, error)
}

// source rewrites decoded frames into backend layouts: 8-bit becomes
// unsigned, 16-bit passes through, 24 and 32-bit are narrowed to 16.
type source struct {
	dec   frameReader
	info  sample.Info
	depth int
	total int

	out     []byte
	pending []byte
	err     error
}

func newSource(dec frameReader, rate, channels, depth, total int) (*source, error) {
	bits := 16
	switch depth {
	case 8:
		bits = 8
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, depth)
	}

	info := sample.Info{SampleRate: rate, Channels: channels, Bits: bits}
	if err := info.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidStream, err)
	}

	return &source{dec: dec, info: info, depth: depth, total: total}, nil
}

func (s *source) Info() sample.Info { return s.info }

// Len returns the decoded size in bytes when the stream header records the
// sample count, or 0.
func (s *source) Len() int { return s.total * s.info.FrameSize() }

func (s *source) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	for len(s.pending) == 0 {
		if s.err != nil {
			return 0, s.err
		}
		s.next()
	}

	n := copy(p, s.pending)
	s.pending = s.pending[n:]
	return n, nil
}

func (s *source) next() {
	frame, err := s.dec.Next()
	switch {
	case errors.Is(err, io.EOF):
		s.err = io.EOF
		return
	case err != nil:
		s.err = fmt.Errorf("decoding flac: %w", err)
		return
	}

	width := s.depth / 8
	frame = frame[:len(frame)-len(frame)%width]

	switch s.depth {
	case 16:
		s.pending = frame
		return
	case 8:
		s.out = s.out[:0]
		for _, b := range frame {
			s.out = append(s.out, b^0x80)
		}
	default:
		s.out = s.out[:0]
		for i := 0; i < len(frame); i += width {
			// the top two bytes of a little-endian sample
			v := int16(binary.LittleEndian.Uint16(frame[i+width-2:]))
			s.out = binary.LittleEndian.AppendUint16(s.out, uint16(v))
		}
	}
	s.pending = s.out
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (sample.Source, error) {
	dec, err := flac.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidStream, err)
	}

	return newSource(dec, dec.SampleRate, dec.NChannels, dec.BitsPerSample, int(dec.TotalSamples))
}
