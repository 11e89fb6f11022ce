// SPDX-License-Identifier: EPL-2.0

package soft

import (
	"encoding/binary"
	"io"
	"sync"
	"sync/atomic"

	"github.com/ik5/audvox/al"
	"github.com/ik5/audvox/utils"
)

// Stats is a snapshot of a device's resource usage.
type Stats struct {
	Buffers        int
	Sources        int
	Playing        int
	BuffersDeleted uint64
	SourcesDeleted uint64
	BytesUploaded  uint64
}

// Device implements al.Device. It also implements io.Reader: each Read
// renders the next len(p)/BytesPerFrame frames of the mix as S16LE stereo.
type Device struct {
	driver *Driver
	name   string
	rate   int

	mu       sync.Mutex
	contexts map[*Context]struct{}
	closed   bool

	renderMu sync.Mutex
	mixBuf   []float32

	buffersDeleted atomic.Uint64
	sourcesDeleted atomic.Uint64
	bytesUploaded  atomic.Uint64
}

var (
	_ al.Device = (*Device)(nil)
	_ io.Reader = (*Device)(nil)
)

func newDevice(d *Driver, name string) *Device {
	return &Device{
		driver:   d,
		name:     name,
		rate:     d.cfg.sampleRate,
		contexts: make(map[*Context]struct{}),
	}
}

func (d *Device) Name() string    { return d.name }
func (d *Device) SampleRate() int { return d.rate }
func (d *Device) Channels() int   { return OutputChannels }

// CreateContext implements al.Device.
func (d *Device) CreateContext() (al.Context, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil, ErrDeviceClosed
	}

	c := newContext(d)
	d.contexts[c] = struct{}{}
	d.driver.cfg.log.WithField("device", d.name).Debug("context created")

	return c, nil
}

// Close implements al.Device. It fails while contexts are alive.
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return ErrDeviceClosed
	}
	if len(d.contexts) > 0 {
		return ErrContextsAlive
	}

	d.closed = true
	d.driver.cfg.log.WithField("device", d.name).Debug("device closed")

	return nil
}

func (d *Device) removeContext(c *Context) {
	d.mu.Lock()
	delete(d.contexts, c)
	d.mu.Unlock()
}

func (d *Device) liveContexts() []*Context {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]*Context, 0, len(d.contexts))
	for c := range d.contexts {
		out = append(out, c)
	}
	return out
}

func (d *Device) isClosed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}

// Mix adds the next len(dst)/2 frames of every playing source into dst,
// which holds interleaved stereo float samples. It returns the number of
// frames rendered. dst is not cleared first.
func (d *Device) Mix(dst []float32) int {
	frames := len(dst) / OutputChannels
	if frames == 0 {
		return 0
	}
	dst = dst[:frames*OutputChannels]

	for _, c := range d.liveContexts() {
		c.render(dst, d.rate)
	}
	return frames
}

// Read implements io.Reader. It returns io.EOF once the device is closed.
func (d *Device) Read(p []byte) (int, error) {
	if d.isClosed() {
		return 0, io.EOF
	}

	frames := len(p) / BytesPerFrame
	if frames == 0 {
		return 0, nil
	}

	d.renderMu.Lock()
	defer d.renderMu.Unlock()

	n := frames * OutputChannels
	if cap(d.mixBuf) < n {
		d.mixBuf = make([]float32, n)
	}
	mix := d.mixBuf[:n]
	clear(mix)

	d.Mix(mix)

	for i, s := range mix {
		binary.LittleEndian.PutUint16(p[2*i:], uint16(utils.Float32ToInt16(s)))
	}

	return frames * BytesPerFrame, nil
}

// Stats returns current resource usage across all live contexts.
func (d *Device) Stats() Stats {
	st := Stats{
		BuffersDeleted: d.buffersDeleted.Load(),
		SourcesDeleted: d.sourcesDeleted.Load(),
		BytesUploaded:  d.bytesUploaded.Load(),
	}

	for _, c := range d.liveContexts() {
		b, s, p := c.counts()
		st.Buffers += b
		st.Sources += s
		st.Playing += p
	}

	return st
}
