// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")
	ErrUnknownFormat  = errors.New("no decoder registered")
	ErrUnsupportedPCM = errors.New("unsupported pcm layout")
)

// UnknownFormatError reports a path whose extension has no decoder.
type UnknownFormatError struct {
	Path string
	Ext  string
}

func (e *UnknownFormatError) Error() string {
	if e.Ext == "" {
		return fmt.Sprintf("%s: %s has no extension", ErrUnknownFormat, e.Path)
	}
	return fmt.Sprintf("%s for %q (%s)", ErrUnknownFormat, e.Ext, e.Path)
}

func (e *UnknownFormatError) Is(target error) bool { return target == ErrUnknownFormat }
