// SPDX-License-Identifier: EPL-2.0

package sample

import "errors"

var (
	ErrInvalidSampleRate = errors.New("sample rate must be positive")
	ErrInvalidChannels   = errors.New("channel count must be positive")
	ErrInvalidBits       = errors.New("bits per sample must be a positive multiple of 8")
	ErrPartialFrame      = errors.New("data length is not a multiple of the frame size")
)
