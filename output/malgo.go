// SPDX-License-Identifier: EPL-2.0

package output

import (
	"fmt"
	"io"
	"sync"

	"github.com/gen2brain/malgo"
	"github.com/sirupsen/logrus"
)

// Malgo plays through a miniaudio playback device. The device callback
// reads each period straight from the mix.
type Malgo struct {
	log *logrus.Entry

	mu     sync.Mutex
	ctx    *malgo.AllocatedContext
	device *malgo.Device
}

func NewMalgo(log *logrus.Entry) *Malgo {
	return &Malgo{log: log.WithField("output", "malgo")}
}

func (m *Malgo) Start(r io.Reader, f Format) error {
	if err := f.validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.device != nil {
		return ErrAlreadyStarted
	}

	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return fmt.Errorf("failed to initialize malgo context: %w", err)
	}

	cfg := malgo.DefaultDeviceConfig(malgo.Playback)
	cfg.Playback.Format = malgo.FormatS16
	cfg.Playback.Channels = uint32(f.Channels)
	cfg.SampleRate = uint32(f.SampleRate)
	cfg.Alsa.NoMMap = 1

	var once sync.Once
	callbacks := malgo.DeviceCallbacks{
		Data: func(out, _ []byte, frames uint32) {
			n := min(int(frames)*f.frameSize(), len(out))
			if err := fill(out[:n], r); err != nil {
				once.Do(func() { m.log.WithError(err).Error("reading mix") })
			}
		},
	}

	device, err := malgo.InitDevice(ctx.Context, cfg, callbacks)
	if err != nil {
		m.freeContext(ctx)
		return fmt.Errorf("failed to initialize playback device: %w", err)
	}
	if err := device.Start(); err != nil {
		device.Uninit()
		m.freeContext(ctx)
		return fmt.Errorf("failed to start device: %w", err)
	}

	m.ctx, m.device = ctx, device
	m.log.WithFields(logrus.Fields{
		"sample_rate": f.SampleRate,
		"channels":    f.Channels,
	}).Info("audio output started")
	return nil
}

func (m *Malgo) freeContext(ctx *malgo.AllocatedContext) {
	if err := ctx.Uninit(); err != nil {
		m.log.WithError(err).Warn("malgo context uninit")
	}
	ctx.Free()
}

func (m *Malgo) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.device == nil {
		return nil
	}

	if err := m.device.Stop(); err != nil {
		m.log.WithError(err).Warn("device stop")
	}
	m.device.Uninit()
	m.device = nil

	m.freeContext(m.ctx)
	m.ctx = nil
	return nil
}
