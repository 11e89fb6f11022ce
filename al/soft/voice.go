// SPDX-License-Identifier: EPL-2.0

package soft

import (
	"math"

	"github.com/ik5/audvox/al"
	"github.com/ik5/audvox/utils"
)

const (
	rolloff = 1.0

	// 5.1 downmix weights: centre and surrounds at -3dB, LFE dropped,
	// normalized so a full scale signal on every channel stays in range.
	surroundWeight = 0.70710678
	surroundNorm   = 1 / (1 + 2*surroundWeight)
)

type voice struct {
	bufferID al.Buffer
	buf      *buffer

	state       al.Enum
	gain        float32
	pitch       float32
	position    [3]float32
	refDistance float32
	maxDistance float32
	looping     bool

	cursor float64 // frame position inside buf
}

func newVoice() *voice {
	return &voice{
		state:       al.Initial,
		gain:        1,
		pitch:       1,
		refDistance: 1,
		maxDistance: math.MaxFloat32,
	}
}

func (v *voice) bind(id al.Buffer, buf *buffer) {
	if v.buf != nil {
		v.buf.users--
	}
	v.bufferID, v.buf = id, buf
	if buf != nil {
		buf.users++
	}
	v.cursor = 0
}

func (v *voice) play() {
	switch v.state {
	case al.Playing:
		return
	case al.Paused:
		v.state = al.Playing
	default:
		v.cursor = 0
		v.state = al.Playing
	}

	if v.buf == nil || v.buf.frames == 0 {
		v.stop()
	}
}

func (v *voice) stop() {
	v.state = al.Stopped
	v.cursor = 0
}

// attenuation applies the inverse distance clamped model.
func attenuation(distance, ref, maxDist float64) float64 {
	if maxDist < ref {
		maxDist = ref
	}
	distance = math.Min(math.Max(distance, ref), maxDist)

	denom := ref + rolloff*(distance-ref)
	if denom <= 0 {
		return 1
	}
	return ref / denom
}

// channelGains returns the left and right gains for the current source
// parameters. Only mono buffers are spatialized.
func (v *voice) channelGains() (left, right float32) {
	g := float64(v.gain)
	if v.buf.channels != 1 {
		return float32(g), float32(g)
	}

	x, y, z := float64(v.position[0]), float64(v.position[1]), float64(v.position[2])
	distance := math.Sqrt(x*x + y*y + z*z)
	g *= attenuation(distance, float64(v.refDistance), float64(v.maxDistance))

	pan := 0.0
	if distance > 0 {
		pan = math.Max(-1, math.Min(1, x/distance))
	}
	angle := (pan + 1) * math.Pi / 4

	return float32(g * math.Cos(angle)), float32(g * math.Sin(angle))
}

// at returns channel ch of frame i, wrapping for looping sources and
// clamping to the edges otherwise.
func (b *buffer) at(i, ch int, looping bool) float32 {
	switch {
	case i < 0 && looping:
		i += b.frames
	case i < 0:
		i = 0
	case i >= b.frames && looping:
		i %= b.frames
	case i >= b.frames:
		i = b.frames - 1
	}
	return b.samples[i*b.channels+ch]
}

// stereoAt interpolates the frame at pos and downmixes it to stereo.
func (b *buffer) stereoAt(pos float64, looping bool) (left, right float32) {
	i := int(pos)
	x := float32(pos - float64(i))

	var s [6]float32
	for ch := range min(b.channels, len(s)) {
		s[ch] = utils.CubicInterpolate(
			b.at(i-1, ch, looping),
			b.at(i, ch, looping),
			b.at(i+1, ch, looping),
			b.at(i+2, ch, looping),
			x,
		)
	}

	switch b.channels {
	case 1:
		return s[0], s[0]
	case 2:
		return s[0], s[1]
	case 4: // FL FR BL BR
		return (s[0] + s[2]) * 0.5, (s[1] + s[3]) * 0.5
	case 6: // FL FR FC LFE BL BR
		c := s[2] * surroundWeight
		return (s[0] + c + s[4]*surroundWeight) * surroundNorm,
			(s[1] + c + s[5]*surroundWeight) * surroundNorm
	}
	return 0, 0
}

// render adds the voice into dst (interleaved stereo) and advances it.
func (v *voice) render(dst []float32, deviceRate int) {
	b := v.buf
	if b == nil || b.frames == 0 {
		v.stop()
		return
	}

	step := float64(v.pitch) * float64(b.rate) / float64(deviceRate)
	left, right := v.channelGains()
	end := float64(b.frames)

	for f := 0; f+1 < len(dst); f += 2 {
		l, r := b.stereoAt(v.cursor, v.looping)
		dst[f] += l * left
		dst[f+1] += r * right

		v.cursor += step
		if v.cursor >= end {
			if !v.looping {
				v.stop()
				return
			}
			v.cursor = math.Mod(v.cursor, end)
		}
	}
}
