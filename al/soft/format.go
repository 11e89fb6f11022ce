// SPDX-License-Identifier: EPL-2.0

package soft

import "github.com/ik5/audvox/al"

type formatInfo struct {
	channels int
	bits     int
	multi    bool
}

func (f formatInfo) frameSize() int {
	return f.channels * f.bits / 8
}

var formats = map[al.Enum]formatInfo{
	al.FormatMono8:    {channels: 1, bits: 8},
	al.FormatMono16:   {channels: 1, bits: 16},
	al.FormatStereo8:  {channels: 2, bits: 8},
	al.FormatStereo16: {channels: 2, bits: 16},
	al.FormatQuad8:    {channels: 4, bits: 8, multi: true},
	al.FormatQuad16:   {channels: 4, bits: 16, multi: true},
	al.Format51Chn8:   {channels: 6, bits: 8, multi: true},
	al.Format51Chn16:  {channels: 6, bits: 16, multi: true},
}

var enumNames = map[string]al.Enum{
	"AL_FORMAT_MONO8":    al.FormatMono8,
	"AL_FORMAT_MONO16":   al.FormatMono16,
	"AL_FORMAT_STEREO8":  al.FormatStereo8,
	"AL_FORMAT_STEREO16": al.FormatStereo16,
	al.NameFormatQuad8:   al.FormatQuad8,
	al.NameFormatQuad16:  al.FormatQuad16,
	al.NameFormat51Chn8:  al.Format51Chn8,
	al.NameFormat51Chn16: al.Format51Chn16,
}

// lookupFormat returns the layout of format if the device supports it.
func lookupFormat(format al.Enum, multiChannel bool) (formatInfo, bool) {
	f, ok := formats[format]
	if !ok || (f.multi && !multiChannel) {
		return formatInfo{}, false
	}
	return f, true
}
