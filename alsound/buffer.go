// SPDX-License-Identifier: EPL-2.0

package alsound

import (
	"sync/atomic"

	"github.com/ik5/audvox/al"
)

// sharedBuffer is a device buffer referenced by one or more sounds. The
// handle is deleted when the last reference is released.
type sharedBuffer struct {
	ctx    al.Context
	handle al.Buffer
	format al.Enum
	rate   int
	size   int

	refs atomic.Int32
}

func newSharedBuffer(ctx al.Context, handle al.Buffer, format al.Enum, rate, size int) *sharedBuffer {
	b := &sharedBuffer{
		ctx:    ctx,
		handle: handle,
		format: format,
		rate:   rate,
		size:   size,
	}
	b.refs.Store(1)
	return b
}

// acquire adds a reference. It fails once the count has dropped to zero so a
// deleted handle is never handed out again.
func (b *sharedBuffer) acquire() bool {
	for {
		n := b.refs.Load()
		if n <= 0 {
			return false
		}
		if b.refs.CompareAndSwap(n, n+1) {
			return true
		}
	}
}

// release drops a reference and deletes the handle on the last one.
func (b *sharedBuffer) release() error {
	if b.refs.Add(-1) != 0 {
		return nil
	}

	b.ctx.DeleteBuffer(b.handle)
	return checkError(b.ctx, "deleting buffer")
}

// Refs reports the current reference count.
func (b *sharedBuffer) Refs() int {
	return int(b.refs.Load())
}
