// SPDX-License-Identifier: EPL-2.0

package al

// Buffer is a device buffer handle. Zero is never a valid buffer.
type Buffer uint32

// Source is a device source (voice) handle. Zero is never a valid source.
type Source uint32

// Driver opens audio devices and tracks the current context.
type Driver interface {
	// OpenDevice opens the named device, or the default one for "".
	OpenDevice(name string) (Device, error)

	// MakeContextCurrent makes ctx current. nil releases the current context.
	MakeContextCurrent(ctx Context) error

	// CurrentContext returns the current context, or nil when there is none.
	CurrentContext() Context
}

// Device is an open audio device.
type Device interface {
	Name() string
	CreateContext() (Context, error)
	Close() error
}

// Context is a rendering context. All buffer and source calls target the
// context they are made on.
type Context interface {
	Device() Device
	Destroy() error

	IsExtensionPresent(name string) bool
	// EnumValue returns the value of a named enum, or 0 if unknown.
	EnumValue(name string) Enum

	// GetError returns the latched error and resets it to NoError.
	GetError() ErrorCode
	// ErrorString returns a description of code, or "" when there is none.
	ErrorString(code ErrorCode) string

	GenBuffer() Buffer
	BufferData(b Buffer, format Enum, data []byte, rate int)
	DeleteBuffer(b Buffer)
	IsBuffer(b Buffer) bool

	GenSource() Source
	DeleteSource(s Source)
	IsSource(s Source) bool
	SourcePlay(s Source)
	SourceStop(s Source)
	SourcePause(s Source)

	Sourcef(s Source, param Enum, v float32)
	Source3f(s Source, param Enum, x, y, z float32)
	Sourcei(s Source, param Enum, v int32)
	GetSourcef(s Source, param Enum) float32
	GetSource3f(s Source, param Enum) (x, y, z float32)
	GetSourcei(s Source, param Enum) int32
}
