// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	ErrNotWavFile           = errors.New("not a WAV file")
	ErrUnsupportedEncoding  = errors.New("only integer PCM WAV is supported")
	ErrUnsupportedWavLayout = errors.New("unsupported WAV layout")
	ErrMissingData          = errors.New("WAV file has no data chunk")
)
