// SPDX-License-Identifier: EPL-2.0

package alsound

import (
	"errors"
	"fmt"

	"github.com/ik5/audvox/al"
)

var (
	ErrBackendInit       = errors.New("backend initialization failed")
	ErrBackend           = errors.New("backend error")
	ErrUnsupportedFormat = errors.New("unsupported input format")

	ErrSoundClosed      = errors.New("sound is closed")
	ErrFactoryClosed    = errors.New("factory is closed")
	ErrLoadNotSupported = errors.New("loading is only supported from a sample source")
)

// initHint replaces the backend message when none is available, which
// usually means no context is current.
const initHint = "did you forget to initialize the backend?"

// BackendInitError reports that the device or context could not be created.
type BackendInitError struct {
	Step string
	Err  error
}

func (e *BackendInitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("failed to initialize context or device: %s", e.Step)
	}
	return fmt.Sprintf("failed to initialize context or device: %s: %v", e.Step, e.Err)
}

func (e *BackendInitError) Unwrap() error { return e.Err }

func (e *BackendInitError) Is(target error) bool { return target == ErrBackendInit }

// BackendError reports an error latched by a backend call. Op describes the
// attempted operation, Msg is the backend's description of Code.
type BackendError struct {
	Op   string
	Code al.ErrorCode
	Msg  string
}

func (e *BackendError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("non-specified error while %s (%s)", e.Op, initHint)
	}
	return fmt.Sprintf("%q while %s", e.Msg, e.Op)
}

func (e *BackendError) Is(target error) bool { return target == ErrBackend }

// UnsupportedFormatError reports a channel and bit depth combination with no
// backend format.
type UnsupportedFormatError struct {
	Channels int
	Bits     int
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("%s: %d channels at %d bits", ErrUnsupportedFormat, e.Channels, e.Bits)
}

func (e *UnsupportedFormatError) Is(target error) bool { return target == ErrUnsupportedFormat }

// checkError reads the error latched on ctx. A nil ctx means no context was
// available and reports the initialization hint.
func checkError(ctx al.Context, op string) error {
	if ctx == nil {
		return &BackendError{Op: op}
	}

	code := ctx.GetError()
	if code == al.NoError {
		return nil
	}
	return &BackendError{Op: op, Code: code, Msg: ctx.ErrorString(code)}
}
