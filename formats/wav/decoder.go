// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"fmt"
	"io"

	gowav "github.com/go-audio/wav"

	"github.com/ik5/audvox/sample"
)

const (
	formatPCM        = 1
	formatExtensible = 0xFFFE
)

// source streams the data chunk. The bytes are already in the layout the
// backend expects, so nothing is converted.
type source struct {
	info sample.Info
	r    io.Reader
	size int
}

func (s *source) Info() sample.Info          { return s.info }
func (s *source) Read(p []byte) (int, error) { return s.r.Read(p) }

// Len returns the size of the data chunk in bytes.
func (s *source) Len() int { return s.size }

type Decoder struct{}

// Decode parses the RIFF header and returns a source positioned at the
// start of the PCM data. Readers that cannot seek are buffered first.
func (Decoder) Decode(r io.Reader) (sample.Source, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading wav data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := gowav.NewDecoder(rs)
	dec.ReadInfo()
	if !dec.IsValidFile() {
		if err := dec.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrNotWavFile, err)
		}
		return nil, ErrNotWavFile
	}

	if dec.WavAudioFormat != formatPCM && dec.WavAudioFormat != formatExtensible {
		return nil, fmt.Errorf("%w: format tag 0x%X", ErrUnsupportedEncoding, dec.WavAudioFormat)
	}

	info := sample.Info{
		SampleRate: int(dec.SampleRate),
		Channels:   int(dec.NumChans),
		Bits:       int(dec.BitDepth),
	}
	if err := info.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedWavLayout, err)
	}

	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMissingData, err)
	}
	if dec.PCMChunk == nil {
		return nil, ErrMissingData
	}

	size := dec.PCMChunk.Size
	return &source{
		info: info,
		r:    io.LimitReader(dec.PCMChunk, int64(size)),
		size: size,
	}, nil
}

// Load decodes r fully into memory. The result implements sample.Pointer.
func Load(r io.Reader) (*sample.Memory, error) {
	src, err := Decoder{}.Decode(r)
	if err != nil {
		return nil, err
	}
	return sample.ReadAll(src)
}
