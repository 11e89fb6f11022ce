// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"

	"github.com/ik5/audvox/sample"
)

// aiffReader is the part of aiff.Decoder the source uses.
type aiffReader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// source converts big-endian AIFF samples to the little-endian layouts of
// the backend formats. 8-bit samples become unsigned; 24 and 32-bit samples
// are narrowed to 16 bits.
type source struct {
	dec   aiffReader
	info  sample.Info
	depth int

	ints    *goaudio.IntBuffer
	out     []byte
	pending []byte
	err     error
}

func newSource(dec aiffReader, rate, channels, depth int) (*source, error) {
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
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedAiffLayout, err)
	}

	return &source{
		dec:   dec,
		info:  info,
		depth: depth,
		ints: &goaudio.IntBuffer{
			Format:         &goaudio.Format{NumChannels: channels, SampleRate: rate},
			SourceBitDepth: depth,
		},
	}, nil
}

func (s *source) Info() sample.Info { return s.info }

func (s *source) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	for len(s.pending) == 0 {
		if s.err != nil {
			return 0, s.err
		}
		s.fill(len(p))
	}

	n := copy(p, s.pending)
	s.pending = s.pending[n:]
	return n, nil
}

func (s *source) fill(want int) {
	ch := s.info.Channels
	samples := max(want/(s.info.Bits/8), ch)
	samples -= samples % ch

	if cap(s.ints.Data) < samples {
		s.ints.Data = make([]int, samples)
	}
	s.ints.Data = s.ints.Data[:samples]

	n, err := s.dec.PCMBuffer(s.ints)

	s.out = s.out[:0]
	for _, v := range s.ints.Data[:n] {
		s.out = s.encode(s.out, v)
	}
	s.pending = s.out

	switch {
	case err == nil && n < samples, errors.Is(err, io.EOF):
		s.err = io.EOF
	case err != nil:
		s.err = fmt.Errorf("decoding aiff: %w", err)
	}
}

func (s *source) encode(dst []byte, v int) []byte {
	switch s.depth {
	case 8:
		return append(dst, uint8(v+128))
	case 24:
		v >>= 8
	case 32:
		v >>= 16
	}
	return binary.LittleEndian.AppendUint16(dst, uint16(int16(v)))
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (sample.Source, error) {
	// go-audio requires io.ReadSeeker
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading aiff data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}
	dec.ReadInfo()

	format := dec.Format()
	if format == nil {
		return nil, ErrUnsupportedAiffLayout
	}

	return newSource(dec, format.SampleRate, format.NumChannels, int(dec.BitDepth))
}
