// SPDX-License-Identifier: EPL-2.0

package alsound

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/audvox"
	"github.com/ik5/audvox/al"
	"github.com/ik5/audvox/al/soft"
	"github.com/ik5/audvox/internal/audiotest"
	"github.com/ik5/audvox/sample"
)

func TestNewSetup(t *testing.T) {
	t.Parallel()

	drv := soft.NewDriver(soft.WithLogger(quietLogger()))
	f, err := New(drv, WithLogger(quietLogger()))
	require.NoError(t, err)

	assert.Same(t, f.Context(), drv.CurrentContext())
	assert.Equal(t, soft.DefaultDeviceName, f.Context().Device().Name())

	require.NoError(t, f.Close())
	assert.Nil(t, drv.CurrentContext())
	require.NoError(t, f.Close(), "second close")
}

func TestNewUnknownDevice(t *testing.T) {
	t.Parallel()

	drv := &recordingDriver{Driver: soft.NewDriver(soft.WithLogger(quietLogger()))}
	f, err := New(drv, WithDeviceName("no such device"), WithLogger(quietLogger()))
	require.Error(t, err)
	assert.Nil(t, f)

	assert.ErrorIs(t, err, ErrBackendInit)
	assert.ErrorIs(t, err, soft.ErrDeviceNotFound)
	var ie *BackendInitError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, "opening device", ie.Step)
	assert.Zero(t, drv.currents)
}

func TestCaps(t *testing.T) {
	t.Parallel()

	f, _ := newFactory(t)
	assert.Equal(t, audvox.Caps{Has3D: true, CanLoadSource: true}, f.Caps())
}

func TestLoadFileAndStreamUnsupported(t *testing.T) {
	t.Parallel()

	f, dev := newFactory(t)

	_, err := f.LoadFile("shot.wav")
	assert.ErrorIs(t, err, ErrLoadNotSupported)
	_, err = f.LoadStream(bytes.NewReader(nil))
	assert.ErrorIs(t, err, ErrLoadNotSupported)
	assert.Zero(t, dev.Stats().Buffers)
}

func TestLoadZeroCopy(t *testing.T) {
	t.Parallel()

	drv, _, ctx := attached(t)
	rec := &recordingContext{Context: ctx}
	f, err := New(&recordingDriver{Driver: drv, ctx: rec}, WithoutSetup(), WithLogger(quietLogger()))
	require.NoError(t, err)
	defer f.Close()

	direct := audiotest.Tone16(22050, 1, 512, 1200)
	_, err = f.Load(direct)
	require.NoError(t, err)
	require.Len(t, rec.uploads, 1)
	assert.Same(t, &direct.Bytes()[0], &rec.uploads[0][0], "pointer source uploaded in place")

	streamed := audiotest.Tone16(22050, 1, 512, 1200)
	_, err = f.Load(audiotest.Stream(streamed))
	require.NoError(t, err)
	require.Len(t, rec.uploads, 2)
	assert.NotSame(t, &streamed.Bytes()[0], &rec.uploads[1][0], "stream source copied")
	assert.Equal(t, streamed.Bytes(), rec.uploads[1])
}

func TestAttachTeardownTouchesNothing(t *testing.T) {
	t.Parallel()

	drv, dev, ctx := attached(t)
	rec := &recordingContext{Context: ctx}
	rd := &recordingDriver{Driver: drv, ctx: rec}

	f, err := New(rd, WithoutSetup(), WithLogger(quietLogger()))
	require.NoError(t, err)
	s, err := f.Load(audiotest.Tone16(22050, 2, 64, 100))
	require.NoError(t, err)
	require.NoError(t, s.Play())

	require.NoError(t, f.Close())

	assert.Zero(t, rd.opened)
	assert.Zero(t, rd.currents)
	assert.Zero(t, rec.destroyed)
	assert.Same(t, ctx, drv.CurrentContext())
	assert.ErrorIs(t, dev.Close(), soft.ErrContextsAlive)

	st := dev.Stats()
	assert.Zero(t, st.Buffers, "sounds are still closed")
	assert.Zero(t, st.Sources)
}

func TestLoadWithoutContext(t *testing.T) {
	t.Parallel()

	f, err := New(soft.NewDriver(soft.WithLogger(quietLogger())), WithoutSetup(), WithLogger(quietLogger()))
	require.NoError(t, err)
	defer f.Close()

	_, err = f.Load(audiotest.Tone16(22050, 1, 16, 0))
	require.ErrorIs(t, err, ErrBackend)
	assert.Equal(t,
		"non-specified error while generating buffer (did you forget to initialize the backend?)",
		err.Error())

	_, err = f.Load(audiotest.Tone16(22050, 6, 16, 0))
	assert.ErrorIs(t, err, ErrUnsupportedFormat, "no extension without a context")
}

func TestErrorWithoutMessage(t *testing.T) {
	t.Parallel()

	drv, _, ctx := attached(t)
	f, err := New(&recordingDriver{Driver: drv, ctx: silentContext{ctx}}, WithoutSetup(), WithLogger(quietLogger()))
	require.NoError(t, err)
	defer f.Close()

	s, err := f.Load(audiotest.Tone16(22050, 1, 16, 0))
	require.NoError(t, err)

	err = s.SetVolume(float32(math.NaN()))
	var be *BackendError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, al.InvalidValue, be.Code)
	assert.Empty(t, be.Msg)
	assert.Contains(t, err.Error(), "while setting volume (did you forget to initialize the backend?)")
}

func TestFailedLoadLeavesNoHandles(t *testing.T) {
	t.Parallel()

	mono16 := sample.Info{SampleRate: 22050, Channels: 1, Bits: 16}

	tests := []struct {
		name    string
		src     sample.Source
		wantErr error
		deleted uint64
	}{
		{"unsupported layout", audiotest.Tone16(22050, 3, 16, 0), ErrUnsupportedFormat, 0},
		{"invalid rate", sample.NewMemory(sample.Info{Channels: 1, Bits: 16}, make([]byte, 4)), sample.ErrInvalidSampleRate, 0},
		{"partial frame upload", sample.NewMemory(mono16, make([]byte, 3)), ErrBackend, 1},
		{"partial frame stream", audiotest.Stream(sample.NewMemory(mono16, make([]byte, 3))), sample.ErrPartialFrame, 1},
		{"read failure", audiotest.Broken(mono16), audiotest.ErrBroken, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f, dev := newFactory(t)
			s, err := f.Load(tt.src)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, s)

			st := dev.Stats()
			assert.Zero(t, st.Buffers)
			assert.Zero(t, st.Sources)
			assert.Equal(t, tt.deleted, st.BuffersDeleted)
			assert.Zero(t, f.Live())
		})
	}
}

func TestFailedSourceReleasesBuffer(t *testing.T) {
	t.Parallel()

	f, dev := newFactory(t, soft.WithMaxSources(1))
	_ = loadTone(t, f)

	_, err := f.Load(audiotest.Tone16(22050, 1, 16, 0))
	var be *BackendError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "creating source", be.Op)

	st := dev.Stats()
	assert.Equal(t, 1, st.Buffers)
	assert.Equal(t, uint64(1), st.BuffersDeleted)
	assert.Equal(t, 1, f.Live())
}

func TestCloseClosesLiveSounds(t *testing.T) {
	t.Parallel()

	drv := soft.NewDriver(soft.WithLogger(quietLogger()))
	f, err := New(drv, WithLogger(quietLogger()))
	require.NoError(t, err)
	dev := f.device.(*soft.Device)

	a := loadTone(t, f)
	b := loadTone(t, f)
	c, err := a.clone()
	require.NoError(t, err)
	require.NoError(t, b.Play())
	assert.Equal(t, 3, f.Live())

	require.NoError(t, f.Close())

	for _, s := range []*Sound{a, b, c} {
		assert.True(t, s.closed.Load())
		assert.False(t, s.IsPlaying())
	}
	assert.Zero(t, f.Live())
	assert.Equal(t, uint64(2), dev.Stats().BuffersDeleted)
	assert.Equal(t, uint64(3), dev.Stats().SourcesDeleted)

	_, err = f.Load(audiotest.Tone16(22050, 1, 16, 0))
	assert.ErrorIs(t, err, ErrFactoryClosed)
}
