// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"testing"
)

// drain reads src to the end in chunks of size samples.
func drain(t *testing.T, src Source, size int) []float32 {
	t.Helper()

	buf := make([]float32, size)
	var out []float32
	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if errors.Is(err, io.EOF) {
			return out
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}
}

var errSourceFailed = errors.New("source failed")

// failingSource yields frames frames of zeros and then fails.
type failingSource struct {
	channels int
	frames   int
}

func (f *failingSource) SampleRate() int { return 8000 }
func (f *failingSource) Channels() int   { return f.channels }
func (f *failingSource) BufSize() int    { return 64 }
func (f *failingSource) Close() error    { return errSourceFailed }

func (f *failingSource) ReadSamples(dst []float32) (int, error) {
	if f.frames == 0 {
		return 0, errSourceFailed
	}
	n := min(len(dst)/f.channels, f.frames)
	clear(dst[:n*f.channels])
	f.frames -= n
	return n * f.channels, nil
}
