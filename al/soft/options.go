// SPDX-License-Identifier: EPL-2.0

package soft

import "github.com/sirupsen/logrus"

const (
	// DefaultDeviceName is the name of the only device the driver exposes.
	DefaultDeviceName = "audvox software renderer"

	// DefaultSampleRate is the output rate used unless WithSampleRate is given.
	DefaultSampleRate = 44100

	// OutputChannels is the channel count of the rendered stream.
	OutputChannels = 2

	// BytesPerFrame is the size of one rendered S16LE stereo frame.
	BytesPerFrame = OutputChannels * 2
)

type config struct {
	sampleRate   int
	multiChannel bool
	maxSources   int
	log          *logrus.Entry
}

// Option configures a Driver.
type Option func(*config)

// WithSampleRate sets the device output rate in Hz.
func WithSampleRate(rate int) Option {
	return func(c *config) {
		if rate > 0 {
			c.sampleRate = rate
		}
	}
}

// WithoutMultiChannel makes devices report no AL_EXT_MCFORMATS support.
func WithoutMultiChannel() Option {
	return func(c *config) {
		c.multiChannel = false
	}
}

// WithMaxSources limits the number of sources per context. Zero means no
// limit. GenSource latches al.OutOfMemory past the limit.
func WithMaxSources(n int) Option {
	return func(c *config) {
		if n >= 0 {
			c.maxSources = n
		}
	}
}

// WithLogger sets the logger used for device and context lifecycle events.
func WithLogger(log *logrus.Entry) Option {
	return func(c *config) {
		if log != nil {
			c.log = log
		}
	}
}

func defaultConfig() config {
	return config{
		sampleRate:   DefaultSampleRate,
		multiChannel: true,
		log:          logrus.WithField("component", "al/soft"),
	}
}
