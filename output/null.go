// SPDX-License-Identifier: EPL-2.0

package output

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultPeriod is how much audio Null reads per tick.
const DefaultPeriod = 20 * time.Millisecond

// Null consumes the mix at the rate a device would, and drops it.
type Null struct {
	log    *logrus.Entry
	period time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
	frames uint64
}

func NewNull(log *logrus.Entry) *Null {
	return &Null{log: log.WithField("output", "none"), period: DefaultPeriod}
}

func (n *Null) Start(r io.Reader, f Format) error {
	if err := f.validate(); err != nil {
		return err
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if n.cancel != nil {
		return ErrAlreadyStarted
	}

	ctx, cancel := context.WithCancel(context.Background())
	n.cancel = cancel
	n.done = make(chan struct{})

	frames := max(1, int(int64(f.SampleRate)*int64(n.period)/int64(time.Second)))
	buf := make([]byte, frames*f.frameSize())

	go func() {
		defer close(n.done)

		t := time.NewTicker(n.period)
		defer t.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				if err := fill(buf, r); err != nil {
					n.log.WithError(err).Error("reading mix")
					return
				}
				n.mu.Lock()
				n.frames += uint64(frames)
				n.mu.Unlock()
			}
		}
	}()

	return nil
}

// Frames returns the number of frames consumed so far.
func (n *Null) Frames() uint64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.frames
}

func (n *Null) Close() error {
	n.mu.Lock()
	cancel, done := n.cancel, n.done
	n.cancel = nil
	n.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()
	<-done
	return nil
}
