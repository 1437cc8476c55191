// SPDX-License-Identifier: EPL-2.0

package utils

// Quantizer converts one sample of type S into signed fixed point PCM at the
// three supported depths. Any sample type can be encoded once it has a
// Quantizer.
type Quantizer[S any] interface {
	ToInt16(s S) int16
	ToInt20(s S) int32
	ToInt24(s S) int32
}

// FloatQuantizer quantizes normalized float32 or float64 samples.
type FloatQuantizer[F Float] struct{}

func (FloatQuantizer[F]) ToInt16(s F) int16 { return FloatToInt16(s) }
func (FloatQuantizer[F]) ToInt20(s F) int32 { return FloatToInt20(s) }
func (FloatQuantizer[F]) ToInt24(s F) int32 { return FloatToInt24(s) }

// IntQuantizer quantizes integer PCM recorded at SourceBitDepth, such as the
// data of a go-audio IntBuffer.
type IntQuantizer struct {
	SourceBitDepth int
}

func (q IntQuantizer) ToInt16(s int) int16 { return int16(IntToDepth(s, q.SourceBitDepth, 16)) }
func (q IntQuantizer) ToInt20(s int) int32 { return IntToDepth(s, q.SourceBitDepth, 20) }
func (q IntQuantizer) ToInt24(s int) int32 { return IntToDepth(s, q.SourceBitDepth, 24) }

// Quantize converts s with q at the given depth. Depths other than 16, 20
// and 24 yield 0.
func Quantize[S any](q Quantizer[S], s S, bits int) int32 {
	switch bits {
	case 16:
		return int32(q.ToInt16(s))
	case 20:
		return q.ToInt20(s)
	case 24:
		return q.ToInt24(s)
	default:
		return 0
	}
}
