// SPDX-License-Identifier: EPL-2.0

package sample

import (
	"bytes"
	"fmt"
	"io"
)

// Memory is an in-memory Source that implements Pointer.
type Memory struct {
	info Info
	data []byte
	off  int
}

// NewMemory wraps data without copying it.
func NewMemory(info Info, data []byte) *Memory {
	return &Memory{info: info, data: data}
}

func (m *Memory) Info() Info    { return m.info }
func (m *Memory) Bytes() []byte { return m.data }
func (m *Memory) Len() int      { return len(m.data) }

// Frames returns the number of whole frames held.
func (m *Memory) Frames() int {
	fs := m.info.FrameSize()
	if fs == 0 {
		return 0
	}
	return len(m.data) / fs
}

func (m *Memory) Read(p []byte) (int, error) {
	if m.off >= len(m.data) {
		return 0, io.EOF
	}
	n := copy(p, m.data[m.off:])
	m.off += n
	return n, nil
}

// Rewind resets the read position. Bytes is not affected by reads.
func (m *Memory) Rewind() {
	m.off = 0
}

// ReadAll drains src into a new Memory. It is the buffering adapter for
// sources that cannot expose their data directly and always copies. When
// src has a Len() int method its value is used to size the buffer.
func ReadAll(src Source) (*Memory, error) {
	var buf bytes.Buffer
	if l, ok := src.(interface{ Len() int }); ok && l.Len() > 0 {
		buf.Grow(l.Len())
	}

	if _, err := buf.ReadFrom(src); err != nil {
		return nil, fmt.Errorf("reading sample source: %w", err)
	}

	info := src.Info()
	if fs := info.FrameSize(); fs > 0 && buf.Len()%fs != 0 {
		return nil, fmt.Errorf("%w: %d bytes, frame size %d", ErrPartialFrame, buf.Len(), fs)
	}

	return NewMemory(info, buf.Bytes()), nil
}
