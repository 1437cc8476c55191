// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
)

// Source is a stream of normalized interleaved samples.
type Source interface {
	// SampleRate of the PCM stream in Hz.
	SampleRate() int
	// Channels count (e.g., 1=mono, 2=stereo).
	Channels() int
	// ReadSamples fills dst with interleaved float32 samples in [-1,1].
	// Returns number of float32 values written (not frames). When n == 0 with err == io.EOF, the stream is finished.
	ReadSamples(dst []float32) (n int, err error)

	BufSize() int

	// Close releases any resources.
	Close() error
}

// maxEmptyReads bounds consecutive (0, nil) reads before Drain gives up.
const maxEmptyReads = 100

// Drain reads src until io.EOF and returns everything it produced as an
// Interleaved view. bufSize is the read size in samples and must be a
// positive multiple of the channel count; 0 picks src.BufSize().
//
// A trailing partial frame is kept, so the result fails
// ChannelSizesMatch when the source ends mid frame.
func Drain(src Source, bufSize int) (Interleaved[float32], error) {
	channels := src.Channels()
	if channels <= 0 {
		return Interleaved[float32]{}, ErrNoChannels
	}

	if bufSize == 0 {
		bufSize = src.BufSize() - src.BufSize()%channels
	}

	if bufSize <= 0 || bufSize%channels != 0 {
		return Interleaved[float32]{}, fmt.Errorf("%w: %d for %d channels", ErrInvalidBufSize, bufSize, channels)
	}

	data := make([]float32, 0, bufSize)
	buf := make([]float32, bufSize)
	empty := 0

	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			data = append(data, buf[:n]...)
			empty = 0
		} else if err == nil {
			empty++
			if empty >= maxEmptyReads {
				return Interleaved[float32]{}, io.ErrNoProgress
			}
		}

		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return Interleaved[float32]{}, fmt.Errorf("%w", err)
		}
	}

	return Interleaved[float32]{Data: data, NumChannels: channels}, nil
}
