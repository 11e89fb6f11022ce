// SPDX-License-Identifier: EPL-2.0

package audvox

import (
	"fmt"
	"os"

	"github.com/ik5/audvox/audio"
	"github.com/ik5/audvox/formats/aiff"
	"github.com/ik5/audvox/formats/flac"
	"github.com/ik5/audvox/formats/mp3"
	"github.com/ik5/audvox/formats/vorbis"
	"github.com/ik5/audvox/formats/wav"
	"github.com/ik5/audvox/sample"
)

// NewRegistry returns a registry holding every decoder in formats/.
func NewRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register(wav.Decoder{}, "wav", "wave")
	reg.Register(mp3.Decoder{}, "mp3")
	reg.Register(vorbis.Decoder{}, "ogg", "oga")
	reg.Register(aiff.Decoder{}, "aif", "aiff")
	reg.Register(flac.Decoder{}, "flac")
	return reg
}

// Decode reads the file at path with the decoder registered for its
// extension and returns its samples in memory.
func Decode(reg *audio.Registry, path string) (*sample.Memory, error) {
	dec, err := reg.Lookup(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening sound file: %w", err)
	}
	defer f.Close()

	src, err := dec.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	mem, err := sample.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return mem, nil
}

// LoadFile decodes path and loads it into f. Conversion options, such as
// audio.WithMono for a positional sound, are applied before loading.
// Factories that load files themselves are used directly when no options
// are given.
func LoadFile(f Factory, reg *audio.Registry, path string, opts ...audio.ConvertOption) (Sound, error) {
	if len(opts) == 0 && f.Caps().CanLoadFile {
		return f.LoadFile(path)
	}

	mem, err := Decode(reg, path)
	if err != nil {
		return nil, err
	}
	if len(opts) == 0 {
		return f.Load(mem)
	}

	src, err := Convert(mem, opts...)
	if err != nil {
		return nil, err
	}
	return f.Load(src)
}

// Convert applies opts to a PCM source through the float pipeline.
func Convert(src sample.Source, opts ...audio.ConvertOption) (sample.Source, error) {
	floats, err := audio.FromPCM(src)
	if err != nil {
		return nil, fmt.Errorf("converting %s: %w", src.Info(), err)
	}

	out, err := audio.ToPCM(floats, opts...)
	if err != nil {
		return nil, fmt.Errorf("converting %s: %w", src.Info(), err)
	}
	return out, nil
}
