// SPDX-License-Identifier: EPL-2.0

// Package alsound implements audvox.Factory and audvox.Sound over the al
// backend contract.
//
// # Ownership
//
// Loading a sample source uploads it into one device buffer and binds that
// buffer to a new source. Clone binds the same buffer to another source and
// increments the buffer's reference count. Every Sound owns its source
// exclusively; the buffer is deleted once, by whichever Sound is closed last:
//
//	f, _ := alsound.New(soft.NewDriver())
//	defer f.Close()
//
//	shot, _ := f.Load(src)
//	echo, _ := shot.Clone() // shares shot's samples
//	_ = echo.SetPos(4, 0, -2)
//	_ = shot.Play()
//	_ = echo.Play()
//
// # Formats
//
// ResolveFormat maps a channel count and bit depth onto a backend format.
// Mono and stereo at 8 or 16 bits are always available; 4 and 6 channel
// formats require the AL_EXT_MCFORMATS extension.
//
// # Errors
//
// Backend errors surface as *BackendError, a failed New as
// *BackendInitError, and layouts without a backend format as
// *UnsupportedFormatError. Use errors.Is with ErrBackend,
// ErrBackendInit and ErrUnsupportedFormat to classify them.
package alsound
