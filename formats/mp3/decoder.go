// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"errors"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/audvox/sample"
)

// ErrInvalidStream wraps errors from the MP3 frame parser.
var ErrInvalidStream = errors.New("invalid MP3 stream")

// mp3Reader is the part of gomp3.Decoder the source uses.
type mp3Reader interface {
	io.Reader
	SampleRate() int
	Length() int64
}

// go-mp3 always produces 16-bit little-endian stereo.
type source struct {
	dec  mp3Reader
	info sample.Info
}

func newSource(dec mp3Reader) *source {
	return &source{
		dec:  dec,
		info: sample.Info{SampleRate: dec.SampleRate(), Channels: 2, Bits: 16},
	}
}

func (s *source) Info() sample.Info          { return s.info }
func (s *source) Read(p []byte) (int, error) { return s.dec.Read(p) }

// Len returns the decoded size in bytes, or 0 when the stream length is
// unknown.
func (s *source) Len() int {
	return int(max(s.dec.Length(), 0))
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (sample.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidStream, err)
	}
	return newSource(dec), nil
}
