// SPDX-License-Identifier: EPL-2.0

package soft

import (
	"fmt"
	"sync"

	"github.com/ik5/audvox/al"
	"github.com/sirupsen/logrus"
)

// Driver implements al.Driver.
type Driver struct {
	cfg config

	mu      sync.Mutex
	current *Context
}

var _ al.Driver = (*Driver)(nil)

// NewDriver creates a software driver.
func NewDriver(opts ...Option) *Driver {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Driver{cfg: cfg}
}

// Open opens the named device and returns the concrete type, which also
// renders the mix through io.Reader.
func (d *Driver) Open(name string) (*Device, error) {
	if name != "" && name != DefaultDeviceName {
		return nil, fmt.Errorf("%w: %q", ErrDeviceNotFound, name)
	}

	dev := newDevice(d, DefaultDeviceName)
	d.cfg.log.WithFields(logrus.Fields{
		"device":      dev.name,
		"sample_rate": dev.rate,
	}).Debug("device opened")

	return dev, nil
}

// OpenDevice implements al.Driver.
func (d *Driver) OpenDevice(name string) (al.Device, error) {
	dev, err := d.Open(name)
	if err != nil {
		return nil, err
	}
	return dev, nil
}

// MakeContextCurrent implements al.Driver.
func (d *Driver) MakeContextCurrent(ctx al.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if ctx == nil {
		d.current = nil
		return nil
	}

	c, ok := ctx.(*Context)
	if !ok || c.device.driver != d {
		return ErrForeignContext
	}
	if c.isDestroyed() {
		return ErrContextDestroyed
	}

	d.current = c
	return nil
}

// CurrentContext implements al.Driver.
func (d *Driver) CurrentContext() al.Context {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.current == nil {
		return nil
	}
	return d.current
}
