// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"encoding/binary"
	"errors"

	"github.com/ik5/audvox/sample"
)

// PCM16 encodes samples as little-endian signed 16-bit PCM.
func PCM16(samples ...int16) []byte {
	out := make([]byte, 2*len(samples))
	for i, v := range samples {
		binary.LittleEndian.PutUint16(out[2*i:], uint16(v))
	}
	return out
}

// Tone16 returns frames frames of 16-bit PCM where every sample is v.
func Tone16(rate, channels, frames int, v int16) *sample.Memory {
	s := make([]int16, frames*channels)
	for i := range s {
		s[i] = v
	}
	return sample.NewMemory(sample.Info{SampleRate: rate, Channels: channels, Bits: 16}, PCM16(s...))
}

// Stream hides the Pointer side of src so it can only be read.
func Stream(src sample.Source) sample.Source {
	return stream{src}
}

type stream struct {
	src sample.Source
}

func (s stream) Info() sample.Info          { return s.src.Info() }
func (s stream) Read(p []byte) (int, error) { return s.src.Read(p) }

// ErrBroken is returned by sources from Broken.
var ErrBroken = errors.New("audiotest: broken source")

// Broken returns a source that reports info and fails on the first Read.
func Broken(info sample.Info) sample.Source {
	return broken{info}
}

type broken struct {
	info sample.Info
}

func (b broken) Info() sample.Info        { return b.info }
func (b broken) Read([]byte) (int, error) { return 0, ErrBroken }
