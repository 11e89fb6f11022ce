// SPDX-License-Identifier: EPL-2.0

// Package audio provides the float-domain processing that sits between the
// decoders and the PCM sample sources a sound factory consumes.
//
// It contains:
//   - Source, a stream of interleaved float32 samples in [-1, 1]
//   - Resampler for sample rate conversion
//   - MonoMixer for channel downmixing
//   - FromPCM and ToPCM, bridging Source and sample.Source
//   - Registry, mapping file extensions to decoders
//
// # Converting For Playback
//
// Only mono sounds are positioned in 3D, and the backend formats are 8 or
// 16-bit PCM. ToPCM builds the pipeline:
//
//	pcm, err := audio.ToPCM(src,
//	    audio.WithRate(22050),
//	    audio.WithMono(),
//	)
//	sound, err := factory.Load(pcm)
//
// FromPCM goes the other way, so a decoded PCM source can be resampled or
// mixed before it is encoded again.
//
// # Resampling
//
// The Resampler interpolates with a Catmull-Rom cubic over a four frame
// window. When downsampling, each input frame first passes through a
// one-pole low-pass filter at the output Nyquist frequency. A source of N
// frames at rate a yields ceil(N*b/a) frames at rate b.
//
// # Format Registry
//
//	reg := audio.NewRegistry()
//	reg.Register(wav.Decoder{}, "wav", "wave")
//	dec, err := reg.Lookup("shot.WAV")
//	src, err := dec.Decode(file)
//
// Lookup fails with an *UnknownFormatError, matching ErrUnknownFormat, when
// no decoder is registered for the extension.
//
// # Error Handling
//
// ReadSamples returns io.EOF at the end of the stream, possibly together with
// the last samples. Any other error comes from the underlying source:
//
//	for {
//	    n, err := src.ReadSamples(buf)
//	    process(buf[:n])
//	    if errors.Is(err, io.EOF) {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	}
package audio
