// SPDX-License-Identifier: EPL-2.0

package utils

// Float is the set of normalized floating point sample types.
type Float interface {
	~float32 | ~float64
}

// Largest magnitude of a signed sample at each supported depth, 2^(B-1)-1.
const (
	MaxInt16 = 1<<15 - 1
	MaxInt20 = 1<<19 - 1
	MaxInt24 = 1<<23 - 1
)

// MaxForDepth returns 2^(bits-1)-1, or 0 for a non positive depth.
func MaxForDepth(bits int) int32 {
	if bits <= 0 || bits > 32 {
		return 0
	}

	return int32(uint32(1)<<(bits-1) - 1)
}

func clampUnit(x float64) float64 {
	// NaN fails both comparisons and ends up as silence below.
	if x > 1 {
		return 1
	} else if x < -1 {
		return -1
	}

	return x
}

func clampInt(v, limit int32) int32 {
	if v > limit {
		return limit
	} else if v < -limit {
		return -limit
	}

	return v
}

// floatToDepth clamps x to [-1, 1], scales it by max and truncates toward
// zero. The result is clamped again so rounding at the boundary can never
// leave [-max, max].
func floatToDepth(x float64, limit int32) int32 {
	x = clampUnit(x)
	if x != x {
		return 0
	}

	return clampInt(int32(x*float64(limit)), limit)
}

// FloatToInt16 converts a normalized sample to 16-bit PCM in
// [-32767, 32767].
func FloatToInt16[F Float](x F) int16 {
	return int16(floatToDepth(float64(x), MaxInt16))
}

// FloatToInt20 converts a normalized sample to 20-bit PCM held in an int32.
func FloatToInt20[F Float](x F) int32 {
	return floatToDepth(float64(x), MaxInt20)
}

// FloatToInt24 converts a normalized sample to 24-bit PCM held in an int32.
func FloatToInt24[F Float](x F) int32 {
	return floatToDepth(float64(x), MaxInt24)
}

// IntToDepth rescales an integer PCM sample recorded at srcBits to dstBits by
// shifting, then clamps it to the symmetric range of dstBits.
func IntToDepth(v int, srcBits, dstBits int) int32 {
	limit := MaxForDepth(dstBits)
	if srcBits <= 0 || limit == 0 {
		return 0
	}

	s := int64(v)
	if dstBits >= srcBits {
		s <<= uint(dstBits - srcBits)
	} else {
		s >>= uint(srcBits - dstBits)
	}

	if s > int64(limit) {
		return limit
	} else if s < -int64(limit) {
		return -limit
	}

	return int32(s)
}
