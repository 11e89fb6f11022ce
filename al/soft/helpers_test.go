// SPDX-License-Identifier: EPL-2.0

package soft

import (
	"encoding/binary"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/ik5/audvox/al"
)

func quietLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

// newTestContext opens the default device and a current context.
func newTestContext(t testing.TB, opts ...Option) (*Driver, *Device, *Context) {
	t.Helper()

	drv := NewDriver(append([]Option{WithLogger(quietLogger())}, opts...)...)
	dev, err := drv.Open("")
	require.NoError(t, err)

	ctx, err := dev.CreateContext()
	require.NoError(t, err)
	require.NoError(t, drv.MakeContextCurrent(ctx))

	return drv, dev, ctx.(*Context)
}

// pcm16 encodes samples as little-endian signed 16-bit PCM.
func pcm16(samples ...int16) []byte {
	out := make([]byte, 2*len(samples))
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[2*i:], uint16(s))
	}
	return out
}

// constant16 returns frames*channels copies of v as 16-bit PCM.
func constant16(v int16, frames, channels int) []byte {
	s := make([]int16, frames*channels)
	for i := range s {
		s[i] = v
	}
	return pcm16(s...)
}

// loadSource creates a buffer from data and a source bound to it.
func loadSource(t testing.TB, ctx *Context, format al.Enum, data []byte, rate int) (al.Buffer, al.Source) {
	t.Helper()

	b := ctx.GenBuffer()
	ctx.BufferData(b, format, data, rate)
	s := ctx.GenSource()
	ctx.Sourcei(s, al.SourceBuffer, int32(b))
	require.Equal(t, al.NoError, ctx.GetError())

	return b, s
}

func state(ctx *Context, s al.Source) al.Enum {
	return al.Enum(ctx.GetSourcei(s, al.SourceState))
}
