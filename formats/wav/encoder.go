// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	"github.com/ik5/audvox/sample"
)

const headerSize = 44

// WriteWAV writes data as a canonical PCM WAV file laid out as info.
func WriteWAV(w io.Writer, info sample.Info, data []byte) error {
	if err := info.Validate(); err != nil {
		return err
	}
	if len(data)%info.FrameSize() != 0 {
		return fmt.Errorf("%w: %d bytes, frame size %d", sample.ErrPartialFrame, len(data), info.FrameSize())
	}

	h := make([]byte, headerSize)
	le := binary.LittleEndian

	copy(h[0:], "RIFF")
	le.PutUint32(h[4:], uint32(headerSize-8+len(data)))
	copy(h[8:], "WAVE")

	copy(h[12:], "fmt ")
	le.PutUint32(h[16:], 16)
	le.PutUint16(h[20:], formatPCM)
	le.PutUint16(h[22:], uint16(info.Channels))
	le.PutUint32(h[24:], uint32(info.SampleRate))
	le.PutUint32(h[28:], uint32(info.SampleRate*info.FrameSize()))
	le.PutUint16(h[32:], uint16(info.FrameSize()))
	le.PutUint16(h[34:], uint16(info.Bits))

	copy(h[36:], "data")
	le.PutUint32(h[40:], uint32(len(data)))

	if _, err := w.Write(h); err != nil {
		return fmt.Errorf("writing wav header: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing wav data: %w", err)
	}
	return nil
}

// WriteWAV16 writes mono 16-bit samples at sampleRate.
func WriteWAV16(w io.Writer, sampleRate int, samples []int16) error {
	data := make([]byte, 0, 2*len(samples))
	for _, s := range samples {
		data = binary.LittleEndian.AppendUint16(data, uint16(s))
	}
	return WriteWAV(w, sample.Info{SampleRate: sampleRate, Channels: 1, Bits: 16}, data)
}

// Encode streams src into ws with the go-audio encoder, which patches the
// chunk sizes on Close. 8-bit sources are widened to 16 bits.
func Encode(ws io.WriteSeeker, src sample.Source) error {
	info := src.Info()
	if err := info.Validate(); err != nil {
		return err
	}
	if info.Bits != 8 && info.Bits != 16 {
		return fmt.Errorf("%w: %d-bit source", ErrUnsupportedWavLayout, info.Bits)
	}

	enc := gowav.NewEncoder(ws, info.SampleRate, 16, info.Channels, formatPCM)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: info.Channels, SampleRate: info.SampleRate},
		SourceBitDepth: 16,
	}

	raw := make([]byte, 4096*info.FrameSize())
	for {
		n, err := io.ReadFull(src, raw)
		n -= n % info.FrameSize()

		buf.Data = widen(buf.Data[:0], raw[:n], info.Bits)
		if len(buf.Data) > 0 {
			if werr := enc.Write(buf); werr != nil {
				return fmt.Errorf("encoding wav: %w", werr)
			}
		}

		if err == io.EOF || err == io.ErrUnexpectedEOF {
			break
		}
		if err != nil {
			return fmt.Errorf("reading sample source: %w", err)
		}
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("finishing wav: %w", err)
	}
	return nil
}

func widen(dst []int, raw []byte, bits int) []int {
	if bits == 8 {
		for _, b := range raw {
			dst = append(dst, (int(b)-128)<<8)
		}
		return dst
	}
	for i := 0; i+1 < len(raw); i += 2 {
		dst = append(dst, int(int16(binary.LittleEndian.Uint16(raw[i:]))))
	}
	return dst
}
