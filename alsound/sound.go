// SPDX-License-Identifier: EPL-2.0

package alsound

import (
	"errors"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/ik5/audvox"
	"github.com/ik5/audvox/al"
	"github.com/sirupsen/logrus"
)

// Sound is one source bound to a shared buffer.
type Sound struct {
	id  uuid.UUID
	ctx al.Context
	src al.Source
	buf *sharedBuffer

	owner  *Factory
	log    *logrus.Entry
	closed atomic.Bool
}

var _ audvox.Sound = (*Sound)(nil)

// bindSound creates a source on ctx and binds buf to it. The caller keeps
// its reference to buf when an error is returned.
func bindSound(owner *Factory, ctx al.Context, buf *sharedBuffer, createOp, bindOp string) (*Sound, error) {
	src := ctx.GenSource()
	if err := checkError(ctx, createOp); err != nil {
		return nil, err
	}

	ctx.Sourcei(src, al.SourceBuffer, int32(buf.handle))
	if err := checkError(ctx, bindOp); err != nil {
		ctx.DeleteSource(src)
		if derr := checkError(ctx, "deleting source"); derr != nil {
			owner.log.WithError(derr).Warn("discarding source after failed bind")
		}
		return nil, err
	}

	id := uuid.New()
	return &Sound{
		id:    id,
		ctx:   ctx,
		src:   src,
		buf:   buf,
		owner: owner,
		log: owner.log.WithFields(logrus.Fields{
			"sound":  id.String(),
			"source": uint32(src),
			"buffer": uint32(buf.handle),
		}),
	}, nil
}

// ID identifies the sound in log output.
func (s *Sound) ID() uuid.UUID { return s.id }

// Source returns the backend source handle.
func (s *Sound) Source() al.Source { return s.src }

// Buffer returns the handle of the shared buffer.
func (s *Sound) Buffer() al.Buffer { return s.buf.handle }

func (s *Sound) call(op string, fn func(ctx al.Context, src al.Source)) error {
	if s.closed.Load() {
		return ErrSoundClosed
	}

	fn(s.ctx, s.src)
	return checkError(s.ctx, op)
}

func (s *Sound) Play() error {
	return s.call("starting playback", al.Context.SourcePlay)
}

func (s *Sound) Stop() error {
	return s.call("stopping", al.Context.SourceStop)
}

func (s *Sound) Pause() error {
	return s.call("pausing", al.Context.SourcePause)
}

// IsPlaying reports whether the source is playing. A backend error is
// logged and reported as not playing.
func (s *Sound) IsPlaying() bool {
	if s.closed.Load() {
		return false
	}

	state := s.ctx.GetSourcei(s.src, al.SourceState)
	if err := checkError(s.ctx, "querying state"); err != nil {
		s.log.WithError(err).Warn("cannot query playback state")
		return false
	}

	return al.Enum(state) == al.Playing
}

func (s *Sound) SetVolume(volume float32) error {
	volume = max(0, min(volume, 1))
	return s.call("setting volume", func(ctx al.Context, src al.Source) {
		ctx.Sourcef(src, al.Gain, volume)
	})
}

func (s *Sound) SetRange(minDist, maxDist, _ float32) error {
	return s.call("setting sound ranges", func(ctx al.Context, src al.Source) {
		ctx.Sourcef(src, al.ReferenceDistance, minDist)
		ctx.Sourcef(src, al.MaxDistance, maxDist)
	})
}

func (s *Sound) SetPos(x, y, z float32) error {
	return s.call("setting position", func(ctx al.Context, src al.Source) {
		ctx.Source3f(src, al.Position, x, y, z)
	})
}

func (s *Sound) SetPitch(pitch float32) error {
	return s.call("setting pitch", func(ctx al.Context, src al.Source) {
		ctx.Sourcef(src, al.Pitch, pitch)
	})
}

func (s *Sound) SetRepeat(repeat bool) error {
	v := al.False
	if repeat {
		v = al.True
	}
	return s.call("setting repeat", func(ctx al.Context, src al.Source) {
		ctx.Sourcei(src, al.Looping, v)
	})
}

// Clone returns a new sound on the same buffer with default source settings.
func (s *Sound) Clone() (audvox.Sound, error) {
	c, err := s.clone()
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Sound) clone() (*Sound, error) {
	if s.closed.Load() || !s.buf.acquire() {
		return nil, ErrSoundClosed
	}

	c, err := bindSound(s.owner, s.ctx, s.buf, "creating instance (clone)", "assigning buffer (clone)")
	if err != nil {
		if rerr := s.buf.release(); rerr != nil {
			s.log.WithError(rerr).Warn("releasing buffer after failed clone")
		}
		return nil, err
	}

	if err := s.owner.track(c); err != nil {
		_ = c.Close()
		return nil, err
	}

	c.log.WithField("parent", s.id.String()).Debug("sound cloned")
	return c, nil
}

// Close stops the sound and deletes its source. The buffer is deleted when
// no other sound references it. Every step runs even if an earlier one
// fails. Close is idempotent.
func (s *Sound) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	defer s.owner.untrack(s)

	s.ctx.SourceStop(s.src)
	if err := checkError(s.ctx, "stopping"); err != nil {
		s.log.WithError(err).Warn("stopping sound before close")
	}

	var errs []error

	s.ctx.DeleteSource(s.src)
	if err := checkError(s.ctx, "deleting source"); err != nil {
		s.log.WithError(err).Warn("deleting source")
		errs = append(errs, err)
	}

	if err := s.buf.release(); err != nil {
		s.log.WithError(err).Warn("deleting buffer")
		errs = append(errs, err)
	}

	s.log.Debug("sound closed")
	return errors.Join(errs...)
}
