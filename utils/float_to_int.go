// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// Float32ToInt16 scales a sample in [-1,1] to 16-bit PCM, clamping out of range input.
func Float32ToInt16(x float32) int16 {
	x = Clamp(x, -1, 1)

	// 32767 for both signs keeps the scale symmetric
	return int16(math.Round(float64(x) * 32767.0))
}

// Int16ToFloat32 is the inverse of Float32ToInt16.
func Int16ToFloat32(v int16) float32 {
	return Clamp(float32(v)/32767.0, -1, 1)
}
