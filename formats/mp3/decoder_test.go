// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/ik5/audvox/internal/audiotest"
	"github.com/ik5/audvox/sample"
)

// mockMP3Reader stands in for gomp3.Decoder.
type mockMP3Reader struct {
	*bytes.Reader
	rate   int
	length int64
}

func (m *mockMP3Reader) SampleRate() int { return m.rate }
func (m *mockMP3Reader) Length() int64   { return m.length }

func TestSource_Passthrough(t *testing.T) {
	t.Parallel()

	pcm := audiotest.PCM16(1, -1, 1000, -1000, 32767, -32768)
	src := newSource(&mockMP3Reader{Reader: bytes.NewReader(pcm), rate: 44100, length: int64(len(pcm))})

	if want := (sample.Info{SampleRate: 44100, Channels: 2, Bits: 16}); src.Info() != want {
		t.Errorf("Info() = %v, want %v", src.Info(), want)
	}
	if src.Len() != len(pcm) {
		t.Errorf("Len() = %d, want %d", src.Len(), len(pcm))
	}

	mem, err := sample.ReadAll(src)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if !bytes.Equal(mem.Bytes(), pcm) {
		t.Errorf("Bytes() = %v, want %v", mem.Bytes(), pcm)
	}
	if mem.Frames() != 3 {
		t.Errorf("Frames() = %d, want 3", mem.Frames())
	}
}

func TestSource_UnknownLength(t *testing.T) {
	t.Parallel()

	src := newSource(&mockMP3Reader{Reader: bytes.NewReader(nil), rate: 22050, length: -1})
	if src.Len() != 0 {
		t.Errorf("Len() = %d, want 0", src.Len())
	}
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	inputs := map[string][]byte{
		"empty":    nil,
		"garbage":  []byte("This is not MP3 data at all"),
		"id3 only": []byte("ID3\x03\x00\x00\x00\x00\x00\x00"),
	}

	for name, in := range inputs {
		_, err := Decoder{}.Decode(bytes.NewReader(in))
		if !errors.Is(err, ErrInvalidStream) {
			t.Errorf("%s: Decode() error = %v, want ErrInvalidStream", name, err)
		}
	}
}

func TestDecoder_ReadError(t *testing.T) {
	t.Parallel()

	_, err := Decoder{}.Decode(io.MultiReader(&errReader{}))
	if !errors.Is(err, ErrInvalidStream) {
		t.Errorf("Decode() error = %v", err)
	}
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, io.ErrClosedPipe }
