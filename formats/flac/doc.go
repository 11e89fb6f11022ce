// SPDX-License-Identifier: EPL-2.0

// Package flac provides FLAC decoding using github.com/tphakala/flac.
//
// Frames are decoded lazily as the source is read. 16-bit streams are
// passed through; 8-bit samples become unsigned and 24 or 32-bit samples
// are narrowed to 16 bits by keeping the high bytes.
//
//	f, _ := os.Open("take.flac")
//	src, err := flac.Decoder{}.Decode(f)
//	if err != nil {
//	    // ErrInvalidStream, ErrUnsupportedBitDepth
//	}
//	sound, err := factory.Load(src)
package flac
