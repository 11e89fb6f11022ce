// SPDX-License-Identifier: EPL-2.0

// Package audvox plays sound effects through a 3D positional audio backend.
//
// A Factory uploads decoded PCM into a device buffer and returns a Sound
// bound to it. Sounds can be played, paused, moved in space, pitched and
// looped. Cloning a Sound yields another voice on the same buffer, so one
// decoded sample can play many times at once from different positions. The
// buffer is released with the last Sound that uses it.
//
// # Backends
//
// The interfaces here are backend independent. Package alsound implements
// them over the al contract, and al/soft is a pure Go implementation of that
// contract whose mix can be fed to any output, see package output.
//
//	drv := soft.NewDriver()
//	f, err := alsound.New(drv)
//	if err != nil {
//	    return err
//	}
//	defer f.Close()
//
// # Loading
//
// Factories load sample sources, never files. Decode and LoadFile route a
// file through the decoder registered for its extension:
//
//	reg := audvox.NewRegistry()
//	step, err := audvox.LoadFile(f, reg, "step.ogg", audio.WithMono())
//	if err != nil {
//	    return err
//	}
//	_ = step.SetPos(2, 0, -1)
//	_ = step.Play()
//
// Supported formats:
//   - WAV (8 and 16-bit PCM, passed through) via formats/wav
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//   - AIFF via formats/aiff
//   - FLAC via formats/flac
//
// Only mono sounds are positioned. Stereo and multichannel sounds play
// unattenuated; use audio.WithMono when a file should follow SetPos.
//
// # Pipelines
//
// Convert, and the audio package under it, resample and mix PCM before it
// is loaded:
//
//	src, err := audvox.Convert(mem, audio.WithRate(22050), audio.WithMono())
//
// See the individual subpackages for more detailed documentation.
package audvox
