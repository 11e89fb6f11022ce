// SPDX-License-Identifier: EPL-2.0

// Package sample describes raw PCM sample sources.
//
// A Source reports its format (sample rate, channel count and bits per
// sample) through Info and yields interleaved little-endian PCM through
// io.Reader. 8-bit samples are unsigned, 16-bit samples are signed.
//
// Sources that already hold all of their decoded data in memory implement
// Pointer, which exposes that memory directly so it can be uploaded without
// a copy. Any other source can be materialized with ReadAll:
//
//	src, _ := wav.Decoder{}.Decode(file)
//	mem, err := sample.ReadAll(src)
//	pcm := mem.Bytes()
package sample
