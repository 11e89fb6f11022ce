// SPDX-License-Identifier: EPL-2.0

package soft

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/audvox/al"
)

const centerGain = 0.70710678 // equal-power pan at the listener

func render(dev *Device, frames int) []float32 {
	out := make([]float32, frames*OutputChannels)
	dev.Mix(out)
	return out
}

func TestRender_MonoCentered(t *testing.T) {
	t.Parallel()

	_, dev, ctx := newTestContext(t, WithSampleRate(22050))
	_, s := loadSource(t, ctx, al.FormatMono16, constant16(16384, 100, 1), 22050)

	ctx.SourcePlay(s)
	out := render(dev, 10)

	for i := 0; i < len(out); i += 2 {
		assert.InDelta(t, 0.5*centerGain, out[i], 1e-4)
		assert.InDelta(t, 0.5*centerGain, out[i+1], 1e-4)
	}
}

func TestRender_SilentWhenNotPlaying(t *testing.T) {
	t.Parallel()

	_, dev, ctx := newTestContext(t)
	_, s := loadSource(t, ctx, al.FormatMono16, constant16(16384, 100, 1), 44100)

	for _, v := range render(dev, 8) {
		assert.Zero(t, v)
	}

	ctx.SourcePlay(s)
	ctx.SourcePause(s)
	for _, v := range render(dev, 8) {
		assert.Zero(t, v)
	}
}

func TestRender_Panning(t *testing.T) {
	t.Parallel()

	_, dev, ctx := newTestContext(t)
	_, s := loadSource(t, ctx, al.FormatMono16, constant16(16384, 100, 1), 44100)

	ctx.Source3f(s, al.Position, 1, 0, 0)
	ctx.SourcePlay(s)
	out := render(dev, 4)

	assert.InDelta(t, 0, out[0], 1e-4, "hard right leaves the left channel silent")
	assert.InDelta(t, 0.5, out[1], 1e-4)
}

func TestRender_DistanceAttenuation(t *testing.T) {
	t.Parallel()

	_, dev, ctx := newTestContext(t)
	_, s := loadSource(t, ctx, al.FormatMono16, constant16(16384, 100, 1), 44100)

	ctx.Source3f(s, al.Position, 0, 0, -3)
	ctx.SourcePlay(s)
	out := render(dev, 4)

	// ref 1, rolloff 1: 1 / (1 + (3 - 1))
	assert.InDelta(t, 0.5*centerGain/3, out[0], 1e-4)

	ctx.Sourcef(s, al.MaxDistance, 2)
	out = render(dev, 4)
	assert.InDelta(t, 0.5*centerGain/2, out[0], 1e-4, "distance clamps to max")
}

func TestRender_StereoNotSpatialized(t *testing.T) {
	t.Parallel()

	_, dev, ctx := newTestContext(t)
	data := make([]int16, 0, 200)
	for range 100 {
		data = append(data, 8192, -8192)
	}
	_, s := loadSource(t, ctx, al.FormatStereo16, pcm16(data...), 44100)

	ctx.Source3f(s, al.Position, 10, 0, 0)
	ctx.Sourcef(s, al.Gain, 0.5)
	ctx.SourcePlay(s)
	out := render(dev, 4)

	assert.InDelta(t, 0.125, out[0], 1e-4)
	assert.InDelta(t, -0.125, out[1], 1e-4)
}

func TestRender_StopsAtEnd(t *testing.T) {
	t.Parallel()

	_, dev, ctx := newTestContext(t)
	_, s := loadSource(t, ctx, al.FormatMono16, constant16(16384, 100, 1), 44100)

	ctx.SourcePlay(s)
	out := render(dev, 150)

	assert.Equal(t, al.Stopped, state(ctx, s))
	assert.NotZero(t, out[2*99])
	for f := 100; f < 150; f++ {
		assert.Zero(t, out[2*f], "frame %d should be silent", f)
	}
	assert.Zero(t, dev.Stats().Playing)
}

func TestRender_Looping(t *testing.T) {
	t.Parallel()

	_, dev, ctx := newTestContext(t)
	_, s := loadSource(t, ctx, al.FormatMono16, constant16(16384, 100, 1), 44100)

	ctx.Sourcei(s, al.Looping, al.True)
	ctx.SourcePlay(s)
	out := render(dev, 250)

	assert.Equal(t, al.Playing, state(ctx, s))
	assert.InDelta(t, 0.5*centerGain, out[2*249], 1e-4)
	assert.Equal(t, 1, dev.Stats().Playing)
}

func TestRender_PitchAndRate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		deviceRate int
		bufferRate int
		pitch      float32
		stopsAfter int
	}{
		{"same rate", 44100, 44100, 1, 100},
		{"double pitch", 44100, 44100, 2, 50},
		{"half rate buffer", 44100, 22050, 1, 200},
		{"half rate buffer at double pitch", 44100, 22050, 2, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, dev, ctx := newTestContext(t, WithSampleRate(tt.deviceRate))
			_, s := loadSource(t, ctx, al.FormatMono16, constant16(16384, 100, 1), tt.bufferRate)
			ctx.Sourcef(s, al.Pitch, tt.pitch)
			ctx.SourcePlay(s)

			render(dev, tt.stopsAfter-1)
			require.Equal(t, al.Playing, state(ctx, s))

			render(dev, 1)
			assert.Equal(t, al.Stopped, state(ctx, s))
		})
	}
}

func TestRender_MultichannelDownmix(t *testing.T) {
	t.Parallel()

	_, dev, ctx := newTestContext(t)

	quad := make([]int16, 0, 40)
	for range 10 {
		quad = append(quad, 16384, 0, 16384, 0)
	}
	_, s := loadSource(t, ctx, al.FormatQuad16, pcm16(quad...), 44100)
	ctx.SourcePlay(s)
	out := render(dev, 2)

	assert.InDelta(t, 0.5, out[0], 1e-4)
	assert.InDelta(t, 0, out[1], 1e-4)
}

func TestRender_EightBit(t *testing.T) {
	t.Parallel()

	_, dev, ctx := newTestContext(t)
	data := make([]byte, 50)
	for i := range data {
		data[i] = 192
	}
	_, s := loadSource(t, ctx, al.FormatMono8, data, 44100)
	ctx.SourcePlay(s)
	out := render(dev, 2)

	assert.InDelta(t, 0.5*centerGain, out[0], 1e-4)
}

func TestDevice_Read(t *testing.T) {
	t.Parallel()

	_, dev, ctx := newTestContext(t)
	_, s := loadSource(t, ctx, al.FormatMono16, constant16(16384, 100, 1), 44100)
	ctx.Source3f(s, al.Position, 1, 0, 0)
	ctx.SourcePlay(s)

	p := make([]byte, 4*BytesPerFrame+3)
	n, err := dev.Read(p)
	require.NoError(t, err)
	assert.Equal(t, 4*BytesPerFrame, n)

	left := int16(binary.LittleEndian.Uint16(p[0:]))
	right := int16(binary.LittleEndian.Uint16(p[2:]))
	assert.InDelta(t, 0, left, 2)
	assert.InDelta(t, 16383, right, 2)

	n, err = dev.Read(make([]byte, 3))
	assert.NoError(t, err)
	assert.Zero(t, n)
}

func TestAttenuation(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 1, attenuation(0, 1, math.MaxFloat32), 1e-9)
	assert.InDelta(t, 1, attenuation(1, 1, math.MaxFloat32), 1e-9)
	assert.InDelta(t, 0.5, attenuation(2, 1, math.MaxFloat32), 1e-9)
	assert.InDelta(t, 0.25, attenuation(8, 2, 8), 1e-9)
	assert.InDelta(t, 0.25, attenuation(100, 2, 8), 1e-9)
	assert.InDelta(t, 0, attenuation(5, 0, 10), 1e-9, "zero reference distance")
	assert.InDelta(t, 1, attenuation(0, 0, 10), 1e-9)
}

// BenchmarkDeviceRead renders 20ms periods for eight looping voices.
func BenchmarkDeviceRead(b *testing.B) {
	_, dev, ctx := newTestContext(b)
	for range 8 {
		_, s := loadSource(b, ctx, al.FormatMono16, constant16(1000, 4410, 1), 22050)
		ctx.Sourcei(s, al.Looping, al.True)
		ctx.SourcePlay(s)
	}

	p := make([]byte, 882*BytesPerFrame)
	b.ReportAllocs()

	for b.Loop() {
		_, _ = dev.Read(p)
	}
}
