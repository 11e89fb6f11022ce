// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"

	"github.com/ik5/audvox/internal/audiotest"
	"github.com/ik5/audvox/sample"
)

// mockAiffReader stands in for aiff.Decoder.
type mockAiffReader struct {
	samples []int
	offset  int
	err     error
}

func (m *mockAiffReader) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	if m.offset >= len(m.samples) {
		return 0, io.EOF
	}

	n := copy(buf.Data, m.samples[m.offset:])
	m.offset += n
	return n, nil
}

func readAll(t *testing.T, src sample.Source) []byte {
	t.Helper()

	data, err := io.ReadAll(src)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	return data
}

func TestSource_Conversion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		depth   int
		samples []int
		bits    int
		want    []byte
	}{
		{"8 bit signed to unsigned", 8, []int{0, 127, -128, -64}, 8, []byte{128, 255, 0, 64}},
		{"16 bit", 16, []int{0, 1000, -1000, 32767}, 16, audiotest.PCM16(0, 1000, -1000, 32767)},
		{"24 bit narrowed", 24, []int{0, 256000, -8388608, 8388607}, 16, audiotest.PCM16(0, 1000, -32768, 32767)},
		{"32 bit narrowed", 32, []int{1 << 16, -1 << 31}, 16, audiotest.PCM16(1, -32768)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src, err := newSource(&mockAiffReader{samples: tt.samples}, 8000, 2, tt.depth)
			if err != nil {
				t.Fatalf("newSource() error = %v", err)
			}
			if want := (sample.Info{SampleRate: 8000, Channels: 2, Bits: tt.bits}); src.Info() != want {
				t.Errorf("Info() = %v, want %v", src.Info(), want)
			}
			if got := readAll(t, src); !bytes.Equal(got, tt.want) {
				t.Errorf("data = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSource_SmallReads(t *testing.T) {
	t.Parallel()

	src, err := newSource(&mockAiffReader{samples: []int{1, 2, 3, 4, 5}}, 8000, 1, 16)
	if err != nil {
		t.Fatal(err)
	}

	var got []byte
	p := make([]byte, 3)
	for {
		n, err := src.Read(p)
		got = append(got, p[:n]...)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
	}
	if want := audiotest.PCM16(1, 2, 3, 4, 5); !bytes.Equal(got, want) {
		t.Errorf("data = %v, want %v", got, want)
	}
}

func TestSource_DecodeError(t *testing.T) {
	t.Parallel()

	src, err := newSource(&mockAiffReader{err: io.ErrUnexpectedEOF}, 8000, 1, 16)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := io.ReadAll(src); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("ReadAll() error = %v, want ErrUnexpectedEOF", err)
	}
}

func TestNewSource_Invalid(t *testing.T) {
	t.Parallel()

	if _, err := newSource(&mockAiffReader{}, 8000, 1, 12); !errors.Is(err, ErrUnsupportedBitDepth) {
		t.Errorf("12 bit: error = %v", err)
	}
	if _, err := newSource(&mockAiffReader{}, 8000, 0, 16); !errors.Is(err, ErrUnsupportedAiffLayout) {
		t.Errorf("no channels: error = %v", err)
	}
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	for _, in := range [][]byte{nil, []byte("This is not AIFF data")} {
		if _, err := (Decoder{}).Decode(bytes.NewReader(in)); !errors.Is(err, ErrNotAiffFile) {
			t.Errorf("Decode(%q) error = %v, want ErrNotAiffFile", in, err)
		}
	}
}

func TestDecoder_File(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "tone.aiff")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}

	samples := []int{0, 1000, -1000, 2000, -2000, 32767}
	enc := aiff.NewEncoder(f, 22050, 16, 1)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: 22050},
		Data:           samples,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	// A plain reader exercises the buffering path.
	src, err := Decoder{}.Decode(io.MultiReader(bytes.NewReader(data)))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if want := (sample.Info{SampleRate: 22050, Channels: 1, Bits: 16}); src.Info() != want {
		t.Errorf("Info() = %v, want %v", src.Info(), want)
	}
	if got, want := readAll(t, src), audiotest.PCM16(0, 1000, -1000, 2000, -2000, 32767); !bytes.Equal(got, want) {
		t.Errorf("data = %v, want %v", got, want)
	}
}
