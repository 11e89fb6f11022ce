// SPDX-License-Identifier: EPL-2.0

package output

import (
	"fmt"
	"io"
	"sync"

	"github.com/ebitengine/oto/v3"
	"github.com/sirupsen/logrus"
)

// oto allows a single context per process.
var (
	otoOnce   sync.Once
	otoCtx    *oto.Context
	otoFormat Format
	otoErr    error
)

// Oto plays through an oto player reading directly from the mix.
type Oto struct {
	log    *logrus.Entry
	mu     sync.Mutex
	player *oto.Player
}

func NewOto(log *logrus.Entry) *Oto {
	return &Oto{log: log.WithField("output", "oto")}
}

func otoContext(f Format) (*oto.Context, error) {
	otoOnce.Do(func() {
		ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   f.SampleRate,
			ChannelCount: f.Channels,
			Format:       oto.FormatSignedInt16LE,
		})
		if err != nil {
			otoErr = fmt.Errorf("failed to create oto context: %w", err)
			return
		}
		<-ready
		otoCtx, otoFormat = ctx, f
	})

	if otoErr != nil {
		return nil, otoErr
	}
	if otoFormat != f {
		return nil, fmt.Errorf("oto context already open at %dHz/%dch", otoFormat.SampleRate, otoFormat.Channels)
	}
	return otoCtx, nil
}

func (o *Oto) Start(r io.Reader, f Format) error {
	if err := f.validate(); err != nil {
		return err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.player != nil {
		return ErrAlreadyStarted
	}

	ctx, err := otoContext(f)
	if err != nil {
		return err
	}
	if err := ctx.Resume(); err != nil {
		return fmt.Errorf("resuming oto context: %w", err)
	}

	o.player = ctx.NewPlayer(r)
	o.player.Play()

	o.log.WithFields(logrus.Fields{
		"sample_rate": f.SampleRate,
		"channels":    f.Channels,
	}).Info("audio output started")
	return nil
}

func (o *Oto) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.player == nil {
		return nil
	}

	err := o.player.Close()
	o.player = nil
	if serr := otoCtx.Suspend(); serr != nil {
		o.log.WithError(serr).Warn("suspending oto context")
	}
	return err
}
