// SPDX-License-Identifier: EPL-2.0

package soft

import (
	"math"
	"sync"

	"github.com/ik5/audvox/al"
	"github.com/ik5/audvox/utils"
)

type buffer struct {
	format   al.Enum
	channels int
	rate     int
	frames   int
	samples  []float32 // interleaved
	users    int       // sources bound to this buffer
}

// Context implements al.Context.
type Context struct {
	device *Device

	mu         sync.Mutex
	err        al.ErrorCode
	destroyed  bool
	lastBuffer al.Buffer
	lastSource al.Source
	buffers    map[al.Buffer]*buffer
	sources    map[al.Source]*voice
}

var _ al.Context = (*Context)(nil)

func newContext(d *Device) *Context {
	return &Context{
		device:  d,
		buffers: make(map[al.Buffer]*buffer),
		sources: make(map[al.Source]*voice),
	}
}

// Device implements al.Context.
func (c *Context) Device() al.Device { return c.device }

// Destroy implements al.Context. A current context cannot be destroyed.
// Buffers and sources still alive are freed.
func (c *Context) Destroy() error {
	drv := c.device.driver
	drv.mu.Lock()
	defer drv.mu.Unlock()

	if drv.current == c {
		return ErrContextCurrent
	}

	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return ErrContextDestroyed
	}
	c.destroyed = true
	leakedBuffers, leakedSources := len(c.buffers), len(c.sources)
	c.device.buffersDeleted.Add(uint64(leakedBuffers))
	c.device.sourcesDeleted.Add(uint64(leakedSources))
	clear(c.buffers)
	clear(c.sources)
	c.mu.Unlock()

	c.device.removeContext(c)

	log := drv.cfg.log.WithField("device", c.device.name)
	if leakedBuffers > 0 || leakedSources > 0 {
		log = log.WithField("buffers", leakedBuffers).WithField("sources", leakedSources)
	}
	log.Debug("context destroyed")

	return nil
}

func (c *Context) isDestroyed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.destroyed
}

// setError latches code unless an earlier error is pending. c.mu must be held.
func (c *Context) setError(code al.ErrorCode) {
	if c.err == al.NoError {
		c.err = code
	}
}

// usable reports whether calls may proceed. c.mu must be held.
func (c *Context) usable() bool {
	if c.destroyed {
		c.setError(al.InvalidOperation)
		return false
	}
	return true
}

// IsExtensionPresent implements al.Context.
func (c *Context) IsExtensionPresent(name string) bool {
	return name == al.ExtMCFormats && c.device.driver.cfg.multiChannel
}

// EnumValue implements al.Context.
func (c *Context) EnumValue(name string) al.Enum {
	v, ok := enumNames[name]
	if !ok {
		return 0
	}
	if f := formats[v]; f.multi && !c.device.driver.cfg.multiChannel {
		return 0
	}
	return v
}

// GetError implements al.Context.
func (c *Context) GetError() al.ErrorCode {
	c.mu.Lock()
	defer c.mu.Unlock()

	code := c.err
	c.err = al.NoError
	return code
}

// ErrorString implements al.Context.
func (c *Context) ErrorString(code al.ErrorCode) string {
	return al.ErrorString(code)
}

// GenBuffer implements al.Context.
func (c *Context) GenBuffer() al.Buffer {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.usable() {
		return 0
	}

	c.lastBuffer++
	c.buffers[c.lastBuffer] = &buffer{}
	return c.lastBuffer
}

// BufferData implements al.Context. The data is converted and copied into
// the buffer; the caller keeps ownership of data.
func (c *Context) BufferData(b al.Buffer, format al.Enum, data []byte, rate int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.usable() {
		return
	}

	buf, ok := c.buffers[b]
	if !ok {
		c.setError(al.InvalidName)
		return
	}
	if buf.users > 0 {
		c.setError(al.InvalidOperation)
		return
	}

	f, ok := lookupFormat(format, c.device.driver.cfg.multiChannel)
	if !ok {
		c.setError(al.InvalidEnum)
		return
	}
	if rate <= 0 || len(data)%f.frameSize() != 0 {
		c.setError(al.InvalidValue)
		return
	}

	samples := make([]float32, len(data)*8/f.bits)
	switch f.bits {
	case 8:
		for i, v := range data {
			samples[i] = utils.Uint8ToFloat32(v)
		}
	case 16:
		for i := range samples {
			v := int16(uint16(data[2*i]) | uint16(data[2*i+1])<<8)
			samples[i] = utils.Int16ToFloat32(v)
		}
	}

	*buf = buffer{
		format:   format,
		channels: f.channels,
		rate:     rate,
		frames:   len(samples) / f.channels,
		samples:  samples,
	}
	c.device.bytesUploaded.Add(uint64(len(data)))
}

// DeleteBuffer implements al.Context. Buffers bound to a source cannot be
// deleted.
func (c *Context) DeleteBuffer(b al.Buffer) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.usable() {
		return
	}

	buf, ok := c.buffers[b]
	if !ok {
		c.setError(al.InvalidName)
		return
	}
	if buf.users > 0 {
		c.setError(al.InvalidOperation)
		return
	}

	delete(c.buffers, b)
	c.device.buffersDeleted.Add(1)
}

// IsBuffer implements al.Context.
func (c *Context) IsBuffer(b al.Buffer) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.buffers[b]
	return ok && !c.destroyed
}

// GenSource implements al.Context.
func (c *Context) GenSource() al.Source {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.usable() {
		return 0
	}
	if limit := c.device.driver.cfg.maxSources; limit > 0 && len(c.sources) >= limit {
		c.setError(al.OutOfMemory)
		return 0
	}

	c.lastSource++
	c.sources[c.lastSource] = newVoice()
	return c.lastSource
}

// DeleteSource implements al.Context. The bound buffer is released.
func (c *Context) DeleteSource(s al.Source) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := c.voice(s)
	if v == nil {
		return
	}

	v.bind(0, nil)
	delete(c.sources, s)
	c.device.sourcesDeleted.Add(1)
}

// IsSource implements al.Context.
func (c *Context) IsSource(s al.Source) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.sources[s]
	return ok && !c.destroyed
}

// voice looks up s, latching InvalidName if it does not exist. c.mu must be
// held.
func (c *Context) voice(s al.Source) *voice {
	if !c.usable() {
		return nil
	}

	v, ok := c.sources[s]
	if !ok {
		c.setError(al.InvalidName)
		return nil
	}
	return v
}

// SourcePlay implements al.Context. Playing an already playing source has
// no effect and a paused source resumes where it was.
func (c *Context) SourcePlay(s al.Source) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if v := c.voice(s); v != nil {
		v.play()
	}
}

// SourceStop implements al.Context.
func (c *Context) SourceStop(s al.Source) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if v := c.voice(s); v != nil {
		v.stop()
	}
}

// SourcePause implements al.Context.
func (c *Context) SourcePause(s al.Source) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if v := c.voice(s); v != nil && v.state == al.Playing {
		v.state = al.Paused
	}
}

func validFloat(v float32) bool {
	return !math.IsNaN(float64(v)) && !math.IsInf(float64(v), 0)
}

// Sourcef implements al.Context.
func (c *Context) Sourcef(s al.Source, param al.Enum, value float32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := c.voice(s)
	if v == nil {
		return
	}

	if !validFloat(value) {
		c.setError(al.InvalidValue)
		return
	}

	switch param {
	case al.Gain:
		if value < 0 {
			c.setError(al.InvalidValue)
			return
		}
		v.gain = value
	case al.Pitch:
		if value <= 0 {
			c.setError(al.InvalidValue)
			return
		}
		v.pitch = value
	case al.ReferenceDistance:
		if value < 0 {
			c.setError(al.InvalidValue)
			return
		}
		v.refDistance = value
	case al.MaxDistance:
		if value < 0 {
			c.setError(al.InvalidValue)
			return
		}
		v.maxDistance = value
	default:
		c.setError(al.InvalidEnum)
	}
}

// Source3f implements al.Context.
func (c *Context) Source3f(s al.Source, param al.Enum, x, y, z float32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := c.voice(s)
	if v == nil {
		return
	}

	if param != al.Position {
		c.setError(al.InvalidEnum)
		return
	}
	if !validFloat(x) || !validFloat(y) || !validFloat(z) {
		c.setError(al.InvalidValue)
		return
	}

	v.position = [3]float32{x, y, z}
}

// Sourcei implements al.Context. A buffer can only be bound while the
// source is Initial or Stopped; binding 0 detaches the current one.
func (c *Context) Sourcei(s al.Source, param al.Enum, value int32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := c.voice(s)
	if v == nil {
		return
	}

	switch param {
	case al.Looping:
		if value != al.False && value != al.True {
			c.setError(al.InvalidValue)
			return
		}
		v.looping = value == al.True
	case al.SourceBuffer:
		if v.state == al.Playing || v.state == al.Paused {
			c.setError(al.InvalidOperation)
			return
		}
		if value == 0 {
			v.bind(0, nil)
			return
		}
		buf, ok := c.buffers[al.Buffer(value)]
		if !ok {
			c.setError(al.InvalidName)
			return
		}
		v.bind(al.Buffer(value), buf)
	default:
		c.setError(al.InvalidEnum)
	}
}

// GetSourcef implements al.Context.
func (c *Context) GetSourcef(s al.Source, param al.Enum) float32 {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := c.voice(s)
	if v == nil {
		return 0
	}

	switch param {
	case al.Gain:
		return v.gain
	case al.Pitch:
		return v.pitch
	case al.ReferenceDistance:
		return v.refDistance
	case al.MaxDistance:
		return v.maxDistance
	}

	c.setError(al.InvalidEnum)
	return 0
}

// GetSource3f implements al.Context.
func (c *Context) GetSource3f(s al.Source, param al.Enum) (x, y, z float32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := c.voice(s)
	if v == nil {
		return 0, 0, 0
	}

	if param != al.Position {
		c.setError(al.InvalidEnum)
		return 0, 0, 0
	}
	return v.position[0], v.position[1], v.position[2]
}

// GetSourcei implements al.Context.
func (c *Context) GetSourcei(s al.Source, param al.Enum) int32 {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := c.voice(s)
	if v == nil {
		return 0
	}

	switch param {
	case al.SourceState:
		return int32(v.state)
	case al.Looping:
		if v.looping {
			return al.True
		}
		return al.False
	case al.SourceBuffer:
		return int32(v.bufferID)
	}

	c.setError(al.InvalidEnum)
	return 0
}

func (c *Context) render(dst []float32, deviceRate int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.destroyed {
		return
	}
	for _, v := range c.sources {
		if v.state == al.Playing {
			v.render(dst, deviceRate)
		}
	}
}

func (c *Context) counts() (buffers, sources, playing int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, v := range c.sources {
		if v.state == al.Playing {
			playing++
		}
	}
	return len(c.buffers), len(c.sources), playing
}
