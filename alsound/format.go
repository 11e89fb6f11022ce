// SPDX-License-Identifier: EPL-2.0

package alsound

import "github.com/ik5/audvox/al"

// Capabilities describes the optional formats of a backend context.
type Capabilities struct {
	// MultiChannel reports AL_EXT_MCFORMATS.
	MultiChannel bool

	Quad8      al.Enum
	Quad16     al.Enum
	Surround8  al.Enum
	Surround16 al.Enum
}

// ProbeCapabilities queries ctx for the multichannel extension and its enum
// values. A nil ctx yields the base capabilities only.
func ProbeCapabilities(ctx al.Context) Capabilities {
	if ctx == nil || !ctx.IsExtensionPresent(al.ExtMCFormats) {
		return Capabilities{}
	}

	return Capabilities{
		MultiChannel: true,
		Quad8:        ctx.EnumValue(al.NameFormatQuad8),
		Quad16:       ctx.EnumValue(al.NameFormatQuad16),
		Surround8:    ctx.EnumValue(al.NameFormat51Chn8),
		Surround16:   ctx.EnumValue(al.NameFormat51Chn16),
	}
}

// ResolveFormat returns the backend format for a channel count and bit
// depth. Mono and stereo are always tried first; 4 and 6 channels only when
// caps reports the multichannel extension and the backend knows the enum.
func ResolveFormat(channels, bits int, caps Capabilities) (al.Enum, error) {
	if f := baseFormat(channels, bits); f != 0 {
		return f, nil
	}

	if caps.MultiChannel {
		if f := caps.extendedFormat(channels, bits); f != 0 {
			return f, nil
		}
	}

	return 0, &UnsupportedFormatError{Channels: channels, Bits: bits}
}

func baseFormat(channels, bits int) al.Enum {
	switch {
	case bits == 8 && channels == 1:
		return al.FormatMono8
	case bits == 8 && channels == 2:
		return al.FormatStereo8
	case bits == 16 && channels == 1:
		return al.FormatMono16
	case bits == 16 && channels == 2:
		return al.FormatStereo16
	}
	return 0
}

func (c Capabilities) extendedFormat(channels, bits int) al.Enum {
	switch {
	case bits == 8 && channels == 4:
		return c.Quad8
	case bits == 8 && channels == 6:
		return c.Surround8
	case bits == 16 && channels == 4:
		return c.Quad16
	case bits == 16 && channels == 6:
		return c.Surround16
	}
	return 0
}
