// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/ik5/audvox"
	"github.com/ik5/audvox/al/soft"
	"github.com/ik5/audvox/alsound"
	"github.com/ik5/audvox/audio"
	"github.com/ik5/audvox/formats/wav"
	"github.com/ik5/audvox/internal/metrics"
	"github.com/ik5/audvox/output"
	"github.com/ik5/audvox/sample"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// pollInterval is how often playback checks whether its voices finished.
const pollInterval = 50 * time.Millisecond

var ErrEndless = errors.New("--loop needs --duration when recording")

func playCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play FILE",
		Short: "Play a sound file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.play(cmd.Context(), args[0])
		},
	}

	f := cmd.Flags()
	f.Float32("volume", 1, "gain from 0 to 1")
	f.Float32("pitch", 1, "playback rate multiplier")
	f.String("pos", "0,0,0", "source position as x,y,z")
	f.Bool("loop", false, "repeat until interrupted")
	f.Int("voices", 1, "number of simultaneous clones")
	f.Bool("mono", false, "downmix to mono before upload")
	f.Int("bits", 0, "convert to 8 or 16 bits before upload")
	f.Int("rate", 0, "resample to this rate before upload")
	f.String("output", "oto", "audio output: oto, malgo or none")
	f.String("metrics-addr", "", "serve Prometheus metrics on this address")
	f.String("record", "", "render the mix into a WAV file instead of a device")
	f.Duration("duration", 0, "stop after this long")

	return cmd
}

func (a *app) convertOptions() []audio.ConvertOption {
	s := a.settings

	var opts []audio.ConvertOption
	if s.Mono {
		opts = append(opts, audio.WithMono())
	}
	if s.Bits != 0 {
		opts = append(opts, audio.WithBits(s.Bits))
	}
	if s.Rate != 0 {
		opts = append(opts, audio.WithRate(s.Rate))
	}
	return opts
}

func (a *app) play(ctx context.Context, path string) (err error) {
	s := a.settings
	if s.Record != "" && s.Loop && s.Duration == 0 {
		return ErrEndless
	}
	if ctx == nil {
		ctx = context.Background()
	}

	drv := soft.NewDriver(
		soft.WithSampleRate(s.SampleRate),
		soft.WithLogger(a.log.WithField("component", "soft")),
	)
	factory, err := alsound.New(drv,
		alsound.WithDeviceName(s.Device),
		alsound.WithLogger(a.log.WithField("component", "alsound")),
	)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, factory.Close()) }()

	dev, ok := factory.Context().Device().(*soft.Device)
	if !ok {
		return fmt.Errorf("unexpected device type %T", factory.Context().Device())
	}

	if s.MetricsAddr != "" {
		stop, err := a.serveMetrics(dev)
		if err != nil {
			return err
		}
		defer stop()
	}

	voices, err := a.loadVoices(factory, path)
	defer func() {
		for _, v := range voices {
			err = errors.Join(err, v.Close())
		}
	}()
	if err != nil {
		return err
	}

	for _, v := range voices {
		if err := v.Play(); err != nil {
			return err
		}
	}

	a.log.WithFields(logrus.Fields{
		"file":   path,
		"voices": len(voices),
		"output": s.Output,
	}).Info("playing")

	if s.Record != "" {
		return a.record(dev, voices)
	}
	return a.playLive(ctx, dev, voices)
}

// loadVoices loads path once and clones it until there are enough voices,
// each configured from the settings. On error the voices created so far
// are returned with it.
func (a *app) loadVoices(f *alsound.Factory, path string) ([]audvox.Sound, error) {
	first, err := audvox.LoadFile(f, a.registry, path, a.convertOptions()...)
	if err != nil {
		return nil, err
	}

	voices := []audvox.Sound{first}
	for len(voices) < a.settings.Voices {
		c, err := first.Clone()
		if err != nil {
			return voices, fmt.Errorf("cloning voice %d: %w", len(voices), err)
		}
		voices = append(voices, c)
	}

	for _, v := range voices {
		if err := a.configure(v); err != nil {
			return voices, err
		}
	}
	return voices, nil
}

// configure applies the source settings. Clones start from defaults.
func (a *app) configure(v audvox.Sound) error {
	s := a.settings
	pos := s.Position()

	return errors.Join(
		v.SetVolume(s.Volume),
		v.SetPitch(s.Pitch),
		v.SetPos(pos[0], pos[1], pos[2]),
		v.SetRepeat(s.Loop),
	)
}

func anyPlaying(voices []audvox.Sound) bool {
	for _, v := range voices {
		if v.IsPlaying() {
			return true
		}
	}
	return false
}

func (a *app) playLive(ctx context.Context, dev *soft.Device, voices []audvox.Sound) error {
	sink, err := output.New(a.settings.Output, a.log)
	if err != nil {
		return err
	}
	if err := sink.Start(dev, output.Format{SampleRate: dev.SampleRate(), Channels: dev.Channels()}); err != nil {
		return err
	}
	defer func() {
		if err := sink.Close(); err != nil {
			a.log.WithError(err).Warn("closing output")
		}
	}()

	if d := a.settings.Duration; d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}

	t := time.NewTicker(pollInterval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			if !anyPlaying(voices) {
				return nil
			}
		}
	}
}

// record renders the mix offline until every voice stops or the duration
// is reached, and writes it out as 16-bit stereo WAV.
func (a *app) record(dev *soft.Device, voices []audvox.Sound) error {
	rate := dev.SampleRate()
	limit := int(a.settings.Duration * time.Duration(rate) / time.Second)

	chunk := make([]byte, rate/50*soft.BytesPerFrame)
	var mix bytes.Buffer

	for frames := 0; anyPlaying(voices) && (limit == 0 || frames < limit); {
		n, err := dev.Read(chunk)
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("rendering mix: %w", err)
		}
		if limit > 0 {
			n = min(n, (limit-frames)*soft.BytesPerFrame)
		}
		mix.Write(chunk[:n])
		frames += n / soft.BytesPerFrame
		if n == 0 {
			break
		}
	}

	f, err := os.Create(a.settings.Record)
	if err != nil {
		return err
	}

	info := sample.Info{SampleRate: rate, Channels: dev.Channels(), Bits: 16}
	if err := wav.Encode(f, sample.NewMemory(info, mix.Bytes())); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing %s: %w", a.settings.Record, err)
	}

	a.log.WithFields(logrus.Fields{
		"file":   a.settings.Record,
		"frames": mix.Len() / soft.BytesPerFrame,
	}).Info("recording written")
	return f.Close()
}

// serveMetrics exposes the device stats over HTTP until stop is called.
func (a *app) serveMetrics(dev *soft.Device) (stop func(), err error) {
	reg := prometheus.NewRegistry()
	if _, err := metrics.Register(reg, dev); err != nil {
		return nil, fmt.Errorf("registering metrics: %w", err)
	}

	ln, err := net.Listen("tcp", a.settings.MetricsAddr)
	if err != nil {
		return nil, fmt.Errorf("metrics listener: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.WithError(err).Error("metrics server")
		}
	}()
	a.log.WithField("addr", ln.Addr().String()).Info("serving metrics")

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}, nil
}
