// SPDX-License-Identifier: EPL-2.0

package audio

import (
	goaudio "github.com/go-audio/audio"
)

// FromFloat32Buffer views the interleaved data of a go-audio float buffer.
func FromFloat32Buffer(buf *goaudio.Float32Buffer) (Interleaved[float32], error) {
	if buf == nil || buf.Format == nil {
		return Interleaved[float32]{}, ErrNoFormat
	}

	return Interleaved[float32]{Data: buf.Data, NumChannels: buf.Format.NumChannels}, nil
}

// FromIntBuffer views the interleaved data of a go-audio integer buffer. The
// samples keep their SourceBitDepth scale.
func FromIntBuffer(buf *goaudio.IntBuffer) (Interleaved[int], error) {
	if buf == nil || buf.Format == nil {
		return Interleaved[int]{}, ErrNoFormat
	}

	return Interleaved[int]{Data: buf.Data, NumChannels: buf.Format.NumChannels}, nil
}
