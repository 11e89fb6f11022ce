// SPDX-License-Identifier: EPL-2.0

package output

import (
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

var (
	ErrAlreadyStarted = errors.New("output already started")
	ErrUnknownSink    = errors.New("unknown output")
)

// BytesPerSample is the size of one S16LE sample.
const BytesPerSample = 2

// Format describes the stream handed to a sink.
type Format struct {
	SampleRate int
	Channels   int
}

func (f Format) frameSize() int { return f.Channels * BytesPerSample }

func (f Format) validate() error {
	if f.SampleRate <= 0 || f.Channels <= 0 {
		return fmt.Errorf("invalid output format %dHz/%dch", f.SampleRate, f.Channels)
	}
	return nil
}

// Sink plays PCM pulled from a reader until closed.
type Sink interface {
	Start(r io.Reader, f Format) error
	Close() error
}

// New returns the sink called name: "oto", "malgo" or "none".
func New(name string, log *logrus.Entry) (Sink, error) {
	switch name {
	case "oto":
		return NewOto(log), nil
	case "malgo":
		return NewMalgo(log), nil
	case "none", "":
		return NewNull(log), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSink, name)
}

// fill reads len(dst) bytes from r, or silence for whatever r could not
// provide. It reports the first read error other than EOF.
func fill(dst []byte, r io.Reader) error {
	n, err := io.ReadFull(r, dst)
	clear(dst[n:])

	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return nil
	}
	return err
}
