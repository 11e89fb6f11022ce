// SPDX-License-Identifier: EPL-2.0

// Package aiff provides AIFF (Audio Interchange File Format) decoding.
//
// This package uses github.com/go-audio/aiff to parse the file. AIFF stores
// signed big-endian samples; the decoder rewrites them into the layouts a
// sound buffer accepts:
//   - 8-bit samples become unsigned 8-bit
//   - 16-bit samples become little-endian 16-bit
//   - 24 and 32-bit samples are narrowed to little-endian 16-bit
//
// Channel count and sample rate are kept as found in the file.
//
//	f, _ := os.Open("hit.aif")
//	src, err := aiff.Decoder{}.Decode(f)
//	if err != nil {
//	    // ErrNotAiffFile, ErrUnsupportedBitDepth, ...
//	}
//	sound, err := factory.Load(src)
//
// go-audio needs an io.ReadSeeker; other readers are read into memory first.
package aiff
