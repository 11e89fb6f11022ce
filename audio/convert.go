// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/ik5/audvox/sample"
	"github.com/ik5/audvox/utils"
)

// FromPCM reads an 8 or 16-bit PCM source as floats. 8-bit samples are
// unsigned, 16-bit samples signed little-endian.
func FromPCM(src sample.Source) (Source, error) {
	info := src.Info()
	if err := info.Validate(); err != nil {
		return nil, err
	}
	if info.Bits != 8 && info.Bits != 16 {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedPCM, info)
	}

	return &pcmDecoder{src: src, info: info, width: info.Bits / 8}, nil
}

type pcmDecoder struct {
	src   sample.Source
	info  sample.Info
	width int
	raw   []byte
	carry int
}

func (d *pcmDecoder) SampleRate() int { return d.info.SampleRate }
func (d *pcmDecoder) Channels() int   { return d.info.Channels }
func (d *pcmDecoder) BufSize() int    { return 1024 * d.info.Channels }

func (d *pcmDecoder) Close() error {
	if c, ok := d.src.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (d *pcmDecoder) ReadSamples(dst []float32) (int, error) {
	frame := d.info.FrameSize()
	frames := len(dst) / d.info.Channels
	if frames == 0 {
		return 0, nil
	}

	if want := frames * frame; cap(d.raw) < want {
		raw := make([]byte, want)
		copy(raw, d.raw[:d.carry])
		d.raw = raw
	}
	d.raw = d.raw[:frames*frame]

	n, err := io.ReadAtLeast(d.src, d.raw[d.carry:], 1)
	n += d.carry
	whole := n - n%frame
	d.carry = copy(d.raw, d.raw[whole:n])

	samples := whole / d.width
	if d.width == 1 {
		for i, v := range d.raw[:samples] {
			dst[i] = utils.Uint8ToFloat32(v)
		}
	} else {
		for i := range samples {
			dst[i] = utils.Int16ToFloat32(int16(binary.LittleEndian.Uint16(d.raw[2*i:])))
		}
	}

	switch {
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		if d.carry > 0 {
			return samples, fmt.Errorf("%w: %d trailing bytes", sample.ErrPartialFrame, d.carry)
		}
		return samples, io.EOF
	case err != nil:
		return samples, fmt.Errorf("reading pcm: %w", err)
	}
	return samples, nil
}

type convertConfig struct {
	bits int
	rate int
	mono bool
}

// ConvertOption configures ToPCM.
type ConvertOption func(*convertConfig)

// WithBits selects 8-bit unsigned or 16-bit signed output. The default is 16.
func WithBits(bits int) ConvertOption {
	return func(c *convertConfig) { c.bits = bits }
}

// WithRate resamples to rate when it differs from the source rate.
func WithRate(rate int) ConvertOption {
	return func(c *convertConfig) { c.rate = rate }
}

// WithMono mixes all channels down to one. Only mono sounds are positioned
// by the backend.
func WithMono() ConvertOption {
	return func(c *convertConfig) { c.mono = true }
}

// ToPCM encodes src as a PCM sample source.
func ToPCM(src Source, opts ...ConvertOption) (sample.Source, error) {
	cfg := convertConfig{bits: 16}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.bits != 8 && cfg.bits != 16 {
		return nil, fmt.Errorf("%w: %d bits", ErrUnsupportedPCM, cfg.bits)
	}
	if cfg.rate < 0 {
		return nil, fmt.Errorf("%w: %d", sample.ErrInvalidSampleRate, cfg.rate)
	}

	if cfg.rate > 0 && cfg.rate != src.SampleRate() {
		src = NewResampler(src, cfg.rate)
	}
	if cfg.mono && src.Channels() > 1 {
		src = NewMonoMixer(src)
	}

	return &pcmEncoder{
		src: src,
		info: sample.Info{
			SampleRate: src.SampleRate(),
			Channels:   src.Channels(),
			Bits:       cfg.bits,
		},
		width: cfg.bits / 8,
	}, nil
}

type pcmEncoder struct {
	src   Source
	info  sample.Info
	width int

	floats  []float32
	out     []byte
	pending []byte
	err     error
}

func (e *pcmEncoder) Info() sample.Info { return e.info }

// Close closes the float source.
func (e *pcmEncoder) Close() error { return e.src.Close() }

func (e *pcmEncoder) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	for len(e.pending) == 0 {
		if e.err != nil {
			return 0, e.err
		}
		e.fill(len(p))
	}

	n := copy(p, e.pending)
	e.pending = e.pending[n:]
	return n, nil
}

func (e *pcmEncoder) fill(want int) {
	ch := e.info.Channels
	samples := max(want/e.width, ch)
	samples -= samples % ch
	if cap(e.floats) < samples {
		e.floats = make([]float32, samples)
	}

	n, err := e.src.ReadSamples(e.floats[:samples])
	n -= n % ch

	e.out = e.out[:0]
	for _, v := range e.floats[:n] {
		if e.width == 1 {
			e.out = append(e.out, utils.Float32ToUint8(v))
			continue
		}
		e.out = binary.LittleEndian.AppendUint16(e.out, uint16(utils.Float32ToInt16(v)))
	}
	e.pending = e.out

	switch {
	case errors.Is(err, io.EOF):
		e.err = io.EOF
	case err != nil:
		e.err = fmt.Errorf("encoding pcm: %w", err)
	}
}
