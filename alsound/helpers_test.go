// SPDX-License-Identifier: EPL-2.0

package alsound

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/ik5/audvox/al"
	"github.com/ik5/audvox/al/soft"
)

func quietLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

// newFactory sets up a factory on a fresh software driver.
func newFactory(t *testing.T, opts ...soft.Option) (*Factory, *soft.Device) {
	t.Helper()

	drv := soft.NewDriver(append([]soft.Option{soft.WithLogger(quietLogger())}, opts...)...)
	f, err := New(drv, WithLogger(quietLogger()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	return f, f.device.(*soft.Device)
}

// attached opens a software context outside of any factory and makes it
// current.
func attached(t *testing.T) (*soft.Driver, *soft.Device, al.Context) {
	t.Helper()

	drv := soft.NewDriver(soft.WithLogger(quietLogger()))
	dev, err := drv.Open("")
	require.NoError(t, err)
	ctx, err := dev.CreateContext()
	require.NoError(t, err)
	require.NoError(t, drv.MakeContextCurrent(ctx))

	return drv, dev, ctx
}

// recordingDriver counts lifecycle calls and can substitute the current
// context.
type recordingDriver struct {
	al.Driver

	opened   int
	currents int
	ctx      al.Context
}

func (d *recordingDriver) OpenDevice(name string) (al.Device, error) {
	d.opened++
	return d.Driver.OpenDevice(name)
}

func (d *recordingDriver) MakeContextCurrent(ctx al.Context) error {
	d.currents++
	return d.Driver.MakeContextCurrent(ctx)
}

func (d *recordingDriver) CurrentContext() al.Context {
	if d.ctx != nil {
		return d.ctx
	}
	return d.Driver.CurrentContext()
}

// recordingContext remembers every slice handed to BufferData.
type recordingContext struct {
	al.Context

	uploads   [][]byte
	destroyed int
}

func (c *recordingContext) BufferData(b al.Buffer, format al.Enum, data []byte, rate int) {
	c.uploads = append(c.uploads, data)
	c.Context.BufferData(b, format, data, rate)
}

func (c *recordingContext) Destroy() error {
	c.destroyed++
	return c.Context.Destroy()
}

// silentContext reports an error code without a message.
type silentContext struct {
	al.Context
}

func (silentContext) ErrorString(al.ErrorCode) string { return "" }

// leakyContext loses track of the source it is asked to delete, so deletion
// fails with an invalid name.
type leakyContext struct {
	al.Context
}

func (c leakyContext) DeleteSource(al.Source) { c.Context.DeleteSource(0) }
