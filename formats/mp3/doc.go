// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 streams with github.com/hajimehoshi/go-mp3.
//
// go-mp3 always decodes to 16-bit little-endian stereo, so the decoded
// bytes are handed to the sample source unchanged. Mono files come out with
// both channels equal. To position an MP3 in 3D, mix it down first:
//
//	src, err := mp3.Decoder{}.Decode(f)
//	floats, err := audio.FromPCM(src)
//	mono, err := audio.ToPCM(floats, audio.WithMono())
//	sound, err := factory.Load(mono)
//
// When the reader is seekable the source reports its decoded size through
// Len, which lets sample.ReadAll allocate once.
package mp3
