// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis with github.com/jfreymuth/oggvorbis.
//
// Vorbis decodes to floats. Decoder runs them through audio.ToPCM and
// returns 16-bit PCM, or 8-bit when Bits is 8:
//
//	src, err := vorbis.Decoder{}.Decode(f)
//	sound, err := factory.Load(src)
//
// DecodeFloat returns the float stream itself, for pipelines that resample
// or mix down before encoding:
//
//	floats, err := vorbis.DecodeFloat(f)
//	pcm, err := audio.ToPCM(floats, audio.WithMono(), audio.WithRate(22050))
package vorbis
