// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes PCM WAV files.
//
// Decoding uses github.com/go-audio/wav to parse the RIFF structure and find
// the data chunk. The samples are passed through unchanged: a WAV file is
// already little-endian PCM, with unsigned 8-bit or signed 16-bit samples,
// which is what a sound buffer expects.
//
//	f, _ := os.Open("shot.wav")
//	src, err := wav.Decoder{}.Decode(f)
//	sound, err := factory.Load(src)
//
// Decode streams from the file. Load reads everything into a
// *sample.Memory, which a factory uploads without copying:
//
//	mem, err := wav.Load(f)
//
// # Writing
//
// WriteWAV writes raw PCM behind a canonical 44 byte header to any
// io.Writer. WriteWAV16 is the same for mono int16 samples. Encode streams a
// sample source through the go-audio encoder and needs an io.WriteSeeker to
// patch the chunk sizes when done.
//
// # Errors
//
//   - ErrNotWavFile: no RIFF/WAVE header
//   - ErrUnsupportedEncoding: compressed or floating point samples
//   - ErrUnsupportedWavLayout: zero rate or channels, or an unusable bit depth
//   - ErrMissingData: no data chunk
package wav
