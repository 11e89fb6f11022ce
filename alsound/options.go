// SPDX-License-Identifier: EPL-2.0

package alsound

import "github.com/sirupsen/logrus"

type config struct {
	setup      bool
	deviceName string
	log        *logrus.Entry
}

// Option configures a Factory.
type Option func(*config)

// WithoutSetup attaches the factory to whatever context is current on the
// driver instead of opening its own device. Close then leaves the backend
// untouched.
func WithoutSetup() Option {
	return func(c *config) { c.setup = false }
}

// WithDeviceName selects the device to open. The default device is used
// when name is empty.
func WithDeviceName(name string) Option {
	return func(c *config) { c.deviceName = name }
}

// WithLogger sets the logger used by the factory and its sounds.
func WithLogger(log *logrus.Entry) Option {
	return func(c *config) {
		if log != nil {
			c.log = log
		}
	}
}

func defaultConfig() config {
	return config{
		setup: true,
		log:   logrus.WithField("component", "alsound"),
	}
}
