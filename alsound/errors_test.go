// SPDX-License-Identifier: EPL-2.0

package alsound

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/audvox/al"
	"github.com/ik5/audvox/internal/audiotest"
)

func TestErrorMessages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
		is   error
	}{
		{
			name: "backend",
			err:  &BackendError{Op: "pausing", Code: al.InvalidName, Msg: "Invalid Name"},
			want: `"Invalid Name" while pausing`,
			is:   ErrBackend,
		},
		{
			name: "backend without message",
			err:  &BackendError{Op: "setting position", Code: 0xB000},
			want: "non-specified error while setting position (did you forget to initialize the backend?)",
			is:   ErrBackend,
		},
		{
			name: "init",
			err:  &BackendInitError{Step: "creating context", Err: io.ErrUnexpectedEOF},
			want: "failed to initialize context or device: creating context: unexpected EOF",
			is:   ErrBackendInit,
		},
		{
			name: "format",
			err:  &UnsupportedFormatError{Channels: 6, Bits: 24},
			want: "unsupported input format: 6 channels at 24 bits",
			is:   ErrUnsupportedFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, tt.err.Error())
			assert.ErrorIs(t, tt.err, tt.is)
			for _, other := range []error{ErrBackend, ErrBackendInit, ErrUnsupportedFormat} {
				if other != tt.is {
					assert.False(t, errors.Is(tt.err, other))
				}
			}
		})
	}

	assert.ErrorIs(t, &BackendInitError{Step: "opening device", Err: io.EOF}, io.EOF)
}

func TestSoundRendersThroughDevice(t *testing.T) {
	t.Parallel()

	f, dev := newFactory(t)
	s, err := f.LoadSound(audiotest.Tone16(dev.SampleRate(), 2, 64, 16000))
	require.NoError(t, err)

	out := make([]byte, 64*4)
	_, err = io.ReadFull(dev, out)
	require.NoError(t, err)
	assert.Equal(t, make([]byte, len(out)), out, "silent before play")

	require.NoError(t, s.Play())
	_, err = io.ReadFull(dev, out)
	require.NoError(t, err)
	assert.NotEqual(t, make([]byte, len(out)), out)
}
