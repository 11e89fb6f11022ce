// SPDX-License-Identifier: EPL-2.0

package sample

import (
	"fmt"
	"io"
)

// Info describes the PCM layout of a source.
type Info struct {
	SampleRate int
	Channels   int
	Bits       int
}

// FrameSize returns the number of bytes in one interleaved frame.
func (i Info) FrameSize() int {
	return i.Channels * i.Bits / 8
}

// Validate reports whether the layout is usable at all. It does not decide
// whether a backend supports it.
func (i Info) Validate() error {
	switch {
	case i.SampleRate <= 0:
		return fmt.Errorf("%w: %d", ErrInvalidSampleRate, i.SampleRate)
	case i.Channels <= 0:
		return fmt.Errorf("%w: %d", ErrInvalidChannels, i.Channels)
	case i.Bits <= 0 || i.Bits%8 != 0:
		return fmt.Errorf("%w: %d", ErrInvalidBits, i.Bits)
	}
	return nil
}

func (i Info) String() string {
	return fmt.Sprintf("%dHz/%dch/%dbit", i.SampleRate, i.Channels, i.Bits)
}

// Source yields interleaved PCM in the layout reported by Info.
type Source interface {
	Info() Info
	io.Reader
}

// Pointer is a Source whose decoded data is already contiguous in memory.
// Bytes returns that memory without copying; callers must not modify it.
type Pointer interface {
	Source
	Bytes() []byte
}

// Direct returns the memory of src when it implements Pointer.
func Direct(src Source) ([]byte, bool) {
	p, ok := src.(Pointer)
	if !ok {
		return nil, false
	}
	return p.Bytes(), true
}
