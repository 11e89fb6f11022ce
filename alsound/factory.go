// SPDX-License-Identifier: EPL-2.0

package alsound

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/ik5/audvox"
	"github.com/ik5/audvox/al"
	"github.com/ik5/audvox/sample"
	"github.com/sirupsen/logrus"
)

// Factory loads sample sources into sounds on one backend context.
type Factory struct {
	driver   al.Driver
	device   al.Device
	ctx      al.Context
	didSetup bool
	log      *logrus.Entry

	mu     sync.Mutex
	sounds map[*Sound]struct{}
	closed bool
}

var _ audvox.Factory = (*Factory)(nil)

// New creates a factory on driver. Unless WithoutSetup is given it opens a
// device, creates a context and makes it current.
func New(driver al.Driver, opts ...Option) (*Factory, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	f := &Factory{
		driver: driver,
		log:    cfg.log,
		sounds: make(map[*Sound]struct{}),
	}

	if !cfg.setup {
		f.log.Debug("attached to current context")
		return f, nil
	}

	if err := f.setup(cfg.deviceName); err != nil {
		return nil, err
	}

	f.log.WithField("device", f.device.Name()).Info("audio backend initialized")
	return f, nil
}

func (f *Factory) setup(name string) error {
	dev, err := f.driver.OpenDevice(name)
	if err != nil {
		return &BackendInitError{Step: "opening device", Err: err}
	}

	ctx, err := dev.CreateContext()
	if err != nil {
		_ = dev.Close()
		return &BackendInitError{Step: "creating context", Err: err}
	}

	if err := f.driver.MakeContextCurrent(ctx); err != nil {
		_ = ctx.Destroy()
		_ = dev.Close()
		return &BackendInitError{Step: "making context current", Err: err}
	}

	f.device = dev
	f.ctx = ctx
	f.didSetup = true
	return nil
}

// Caps implements audvox.Factory.
func (f *Factory) Caps() audvox.Caps {
	return audvox.Caps{
		Has3D:         true,
		CanLoadSource: true,
	}
}

// Context returns the context sounds are created in: the factory's own after
// setup, otherwise the driver's current one.
func (f *Factory) Context() al.Context {
	if f.didSetup {
		return f.ctx
	}
	return f.driver.CurrentContext()
}

// Load uploads src into a new buffer and returns a sound playing it. Sources
// implementing sample.Pointer are uploaded without copying.
func (f *Factory) Load(src sample.Source) (audvox.Sound, error) {
	s, err := f.LoadSound(src)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// LoadSound is Load returning the concrete type.
func (f *Factory) LoadSound(src sample.Source) (*Sound, error) {
	if f.isClosed() {
		return nil, ErrFactoryClosed
	}

	info := src.Info()
	if err := info.Validate(); err != nil {
		return nil, fmt.Errorf("loading sample source: %w", err)
	}

	ctx := f.Context()
	format, err := ResolveFormat(info.Channels, info.Bits, ProbeCapabilities(ctx))
	if err != nil {
		return nil, err
	}

	buf, err := f.upload(ctx, src, format, info.SampleRate)
	if err != nil {
		return nil, err
	}

	s, err := bindSound(f, ctx, buf, "creating source", "assigning buffer")
	if err != nil {
		if rerr := buf.release(); rerr != nil {
			f.log.WithError(rerr).Warn("releasing buffer after failed load")
		}
		return nil, err
	}

	if err := f.track(s); err != nil {
		_ = s.Close()
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"format": info.String(),
		"bytes":  buf.size,
	}).Debug("sound loaded")
	return s, nil
}

func (f *Factory) upload(ctx al.Context, src sample.Source, format al.Enum, rate int) (*sharedBuffer, error) {
	if ctx == nil {
		return nil, checkError(nil, "generating buffer")
	}

	handle := ctx.GenBuffer()
	if err := checkError(ctx, "generating buffer"); err != nil {
		return nil, err
	}

	data, ok := sample.Direct(src)
	if !ok {
		mem, err := sample.ReadAll(src)
		if err != nil {
			f.discardBuffer(ctx, handle)
			return nil, err
		}
		data = mem.Bytes()
	}

	ctx.BufferData(handle, format, data, rate)
	if err := checkError(ctx, "loading sound buffer"); err != nil {
		f.discardBuffer(ctx, handle)
		return nil, err
	}

	return newSharedBuffer(ctx, handle, format, rate, len(data)), nil
}

func (f *Factory) discardBuffer(ctx al.Context, handle al.Buffer) {
	ctx.DeleteBuffer(handle)
	if err := checkError(ctx, "deleting buffer"); err != nil {
		f.log.WithError(err).Warn("discarding buffer after failed load")
	}
}

// LoadFile always fails; decode the file into a sample source and use Load.
func (f *Factory) LoadFile(string) (audvox.Sound, error) {
	return nil, ErrLoadNotSupported
}

// LoadStream always fails; wrap the stream in a sample source and use Load.
func (f *Factory) LoadStream(io.Reader) (audvox.Sound, error) {
	return nil, ErrLoadNotSupported
}

// Live returns the number of sounds not yet closed.
func (f *Factory) Live() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sounds)
}

func (f *Factory) track(s *Sound) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return ErrFactoryClosed
	}
	f.sounds[s] = struct{}{}
	return nil
}

func (f *Factory) untrack(s *Sound) {
	f.mu.Lock()
	delete(f.sounds, s)
	f.mu.Unlock()
}

func (f *Factory) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

// Close closes every live sound and, if New set up the backend, releases
// the context and closes the device. It is safe to call more than once.
func (f *Factory) Close() error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil
	}
	f.closed = true

	live := make([]*Sound, 0, len(f.sounds))
	for s := range f.sounds {
		live = append(live, s)
	}
	f.mu.Unlock()

	var errs []error

	if len(live) > 0 {
		f.log.WithField("sounds", len(live)).Warn("closing sounds still alive")
	}
	for _, s := range live {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if !f.didSetup {
		return errors.Join(errs...)
	}

	if err := f.driver.MakeContextCurrent(nil); err != nil {
		errs = append(errs, fmt.Errorf("releasing context: %w", err))
	}
	if err := f.ctx.Destroy(); err != nil {
		errs = append(errs, fmt.Errorf("destroying context: %w", err))
	}
	if err := f.device.Close(); err != nil {
		errs = append(errs, fmt.Errorf("closing device: %w", err))
	}

	f.log.Info("audio backend closed")
	return errors.Join(errs...)
}
