// SPDX-License-Identifier: EPL-2.0

package audvox

import (
	"io"

	"github.com/ik5/audvox/sample"
)

// Sound is one playback voice bound to a loaded sample buffer.
//
// Controls are synchronous calls into the backend. A failed control returns
// an error and leaves the Sound usable. Clone returns a new Sound that shares
// the decoded buffer but has its own play head, volume, pitch and position,
// starting from the backend defaults.
type Sound interface {
	Play() error
	Stop() error
	Pause() error
	IsPlaying() bool

	// SetVolume clamps volume to [0, 1].
	SetVolume(volume float32) error
	// SetRange sets the reference and max attenuation distances. The third
	// value is reserved.
	SetRange(min, max, extra float32) error
	SetPos(x, y, z float32) error
	SetPitch(pitch float32) error
	SetRepeat(repeat bool) error

	Clone() (Sound, error)

	// Close stops playback and releases the voice. The shared buffer is
	// released with the last Sound that uses it.
	Close() error
}

// Caps advertises what a Factory can do.
type Caps struct {
	Has3D         bool
	CanLoadFile   bool
	CanLoadStream bool
	CanLoadSource bool
	NeedsUpdate   bool
}

// Factory turns sample sources into Sounds for one backend.
type Factory interface {
	Caps() Caps
	Load(src sample.Source) (Sound, error)
	LoadFile(path string) (Sound, error)
	LoadStream(r io.Reader) (Sound, error)
	Close() error
}
