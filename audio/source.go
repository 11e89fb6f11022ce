// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/ik5/audvox/sample"
)

// Source is a stream of interleaved float32 samples in [-1, 1].
type Source interface {
	SampleRate() int
	Channels() int

	// ReadSamples fills dst and returns the number of float32 values written,
	// always a multiple of Channels. io.EOF marks the end of the stream and
	// may come with the final samples.
	ReadSamples(dst []float32) (n int, err error)

	// BufSize is a read size the source handles efficiently, in samples.
	BufSize() int

	Close() error
}

// Decoder turns an encoded stream into PCM.
type Decoder interface {
	Decode(r io.Reader) (sample.Source, error)
}

// Registry maps file extensions to decoders.
type Registry struct {
	mu     sync.RWMutex
	codecs map[string]Decoder
}

func NewRegistry() *Registry {
	return &Registry{codecs: make(map[string]Decoder)}
}

// Register adds d under each extension. Extensions are matched without the
// leading dot and case insensitively.
func (r *Registry) Register(d Decoder, exts ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ext := range exts {
		r.codecs[normalizeExt(ext)] = d
	}
}

func (r *Registry) Get(ext string) (Decoder, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.codecs[normalizeExt(ext)]
	return d, ok
}

// Lookup returns the decoder registered for the extension of path.
func (r *Registry) Lookup(path string) (Decoder, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return nil, &UnknownFormatError{Path: path}
	}

	d, ok := r.Get(ext)
	if !ok {
		return nil, &UnknownFormatError{Path: path, Ext: normalizeExt(ext)}
	}
	return d, nil
}

// Formats lists the registered extensions in order.
func (r *Registry) Formats() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.codecs))
	for ext := range r.codecs {
		out = append(out, ext)
	}
	slices.Sort(out)
	return out
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
