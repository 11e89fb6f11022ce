// SPDX-License-Identifier: EPL-2.0

package utils

// ClampUnit clamps x to [-1, 1].
func ClampUnit(x float32) float32 {
	if x > 1 {
		return 1
	}
	if x < -1 {
		return -1
	}
	return x
}

// Float32ToInt16 converts a float sample in [-1, 1] to signed 16-bit PCM.
// Out of range input is clamped.
func Float32ToInt16(x float32) int16 {
	// 32767 keeps +1 from overflowing
	return int16(ClampUnit(x) * 32767.0)
}

// Float32ToUint8 converts a float sample in [-1, 1] to unsigned 8-bit PCM,
// where 128 is silence.
func Float32ToUint8(x float32) uint8 {
	return uint8(int16(ClampUnit(x)*127.0) + 128)
}

// Int16ToFloat32 converts signed 16-bit PCM to a float sample in [-1, 1).
func Int16ToFloat32(v int16) float32 {
	return float32(v) / 32768.0
}

// Uint8ToFloat32 converts unsigned 8-bit PCM to a float sample in [-1, 1).
func Uint8ToFloat32(v uint8) float32 {
	return float32(int16(v)-128) / 128.0
}
