// SPDX-License-Identifier: EPL-2.0

package al

// Enum is a backend enumeration value.
type Enum int32

// Sample formats always available.
const (
	FormatMono8    Enum = 0x1100
	FormatMono16   Enum = 0x1101
	FormatStereo8  Enum = 0x1102
	FormatStereo16 Enum = 0x1103
)

// Multichannel formats from AL_EXT_MCFORMATS. They are looked up by name
// with Context.EnumValue, the constants only document the usual values.
const (
	FormatQuad8   Enum = 0x1204
	FormatQuad16  Enum = 0x1205
	Format51Chn8  Enum = 0x120A
	Format51Chn16 Enum = 0x120B
)

// Extension and enum names.
const (
	ExtMCFormats = "AL_EXT_MCFORMATS"

	NameFormatQuad8   = "AL_FORMAT_QUAD8"
	NameFormatQuad16  = "AL_FORMAT_QUAD16"
	NameFormat51Chn8  = "AL_FORMAT_51CHN8"
	NameFormat51Chn16 = "AL_FORMAT_51CHN16"
)

// Source parameters.
const (
	Pitch             Enum = 0x1003
	Position          Enum = 0x1004
	Looping           Enum = 0x1007
	SourceBuffer      Enum = 0x1009
	Gain              Enum = 0x100A
	SourceState       Enum = 0x1010
	ReferenceDistance Enum = 0x1020
	MaxDistance       Enum = 0x1023
)

// Source states reported for SourceState.
const (
	Initial Enum = 0x1011
	Playing Enum = 0x1012
	Paused  Enum = 0x1013
	Stopped Enum = 0x1014
)

// Boolean values for integer parameters such as Looping.
const (
	False int32 = 0
	True  int32 = 1
)
