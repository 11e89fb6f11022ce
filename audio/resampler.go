// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/ik5/audvox/utils"
)

// Resampler converts src to another sample rate with cubic interpolation.
// Channel count is preserved. When downsampling, input frames pass through a
// one-pole low-pass filter tuned to the output Nyquist frequency.
type Resampler struct {
	src      Source
	rate     int
	channels int
	step     float64 // input frames per output frame

	// win holds frames k-1, k, k+1 and k+2 around the read position k+frac.
	// After the source ends the window is padded by repeating the last frame;
	// live counts the real frames among win[1:].
	win    [4][]float32
	live   int
	frac   float64
	primed bool

	in     []float32
	inPos  int
	inLen  int
	inDone bool
	err    error

	alpha float32
	lp    []float32
}

func NewResampler(src Source, dstRate int) *Resampler {
	ch := src.Channels()
	step := float64(src.SampleRate()) / float64(dstRate)

	size := max(src.BufSize(), 256*ch)
	r := &Resampler{
		src:      src,
		rate:     dstRate,
		channels: ch,
		step:     step,
		in:       make([]float32, size-size%ch),
	}
	for i := range r.win {
		r.win[i] = make([]float32, ch)
	}

	if step > 1 {
		r.alpha = float32(1 - math.Exp(-math.Pi/step))
		r.lp = make([]float32, ch)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.rate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("closing resampler source: %w", err)
	}
	return nil
}

// pull copies the next input frame into frame.
func (r *Resampler) pull(frame []float32, first bool) bool {
	for r.inPos >= r.inLen {
		if r.inDone {
			return false
		}

		n, err := r.src.ReadSamples(r.in)
		r.inPos, r.inLen = 0, n-n%r.channels
		if err != nil {
			r.inDone = true
			if !errors.Is(err, io.EOF) {
				r.err = err
			}
		}
	}

	copy(frame, r.in[r.inPos:r.inPos+r.channels])
	r.inPos += r.channels

	if r.lp != nil {
		if first {
			copy(r.lp, frame)
		}
		for c, x := range frame {
			r.lp[c] += r.alpha * (x - r.lp[c])
			frame[c] = r.lp[c]
		}
	}
	return true
}

func (r *Resampler) prime() bool {
	r.primed = true
	if !r.pull(r.win[1], true) {
		return false
	}

	copy(r.win[0], r.win[1])
	r.live = 1
	for i := 2; i < len(r.win); i++ {
		if r.pull(r.win[i], false) {
			r.live++
		} else {
			copy(r.win[i], r.win[i-1])
		}
	}
	return true
}

func (r *Resampler) advance() {
	oldest := r.win[0]
	r.win[0], r.win[1], r.win[2] = r.win[1], r.win[2], r.win[3]
	r.win[3] = oldest
	r.live--

	if r.live >= 2 && r.pull(r.win[3], false) {
		r.live++
		return
	}
	copy(r.win[3], r.win[2])
}

func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.primed && !r.prime() {
		return 0, r.endErr()
	}

	n := 0
	for n < len(dst) {
		for r.frac >= 1 && r.live > 0 {
			r.frac--
			r.advance()
		}
		if r.live == 0 {
			break
		}

		t := float32(r.frac)
		for c := range r.channels {
			dst[n+c] = utils.CubicInterpolate(r.win[0][c], r.win[1][c], r.win[2][c], r.win[3][c], t)
		}
		n += r.channels
		r.frac += r.step
	}

	if r.live == 0 {
		return n, r.endErr()
	}
	return n, nil
}

func (r *Resampler) endErr() error {
	if r.err != nil {
		return fmt.Errorf("resampling: %w", r.err)
	}
	return io.EOF
}
