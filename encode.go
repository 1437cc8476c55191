// SPDX-License-Identifier: EPL-2.0

package flacpbx

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ik5/flacpbx/audio"
	"github.com/ik5/flacpbx/formats/flac"
	"github.com/ik5/flacpbx/utils"
)

// Options tune the one call encoders. The zero value encodes 16-bit FLAC
// with the flac package defaults.
type Options struct {
	// BitDepth of the output; 0 means flac.DefaultBitDepth.
	BitDepth flac.BitDepth
	// Profile, when set, is applied after BitDepth.
	Profile  *flac.Profile
	// Logger receives the encode logs; nil discards them.
	Logger   *zap.Logger
}

func apply[S any](b flac.Builder[S], o Options) flac.Builder[S] {
	if o.BitDepth != 0 {
		b = b.BitDepth(o.BitDepth)
	}

	if o.Profile != nil {
		b = b.Profile(*o.Profile)
	}

	return b.Logger(o.Logger)
}

// EncodePlanar encodes one slice per channel into an in-memory FLAC stream.
func EncodePlanar[F utils.Float](data [][]F, sampleRate int, o Options) ([]byte, error) {
	out, err := apply(flac.FromPlanar(data, sampleRate), o).Build()
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return out, nil
}

// EncodeInterleaved encodes frames stored back to back into an in-memory
// FLAC stream.
func EncodeInterleaved[F utils.Float](data []F, channels, sampleRate int, o Options) ([]byte, error) {
	out, err := apply(flac.FromInterleaved(data, channels, sampleRate), o).Build()
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return out, nil
}

// EncodePlanarToFile encodes one slice per channel into the file at path.
func EncodePlanarToFile[F utils.Float](path string, data [][]F, sampleRate int, o Options) error {
	if err := apply(flac.FromPlanar(data, sampleRate), o).WriteFile(path); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

// EncodeSource reads src to the end and encodes it.
//
// This function builds a small pipeline:
//  1. Averages the channels to mono when mono is true
//  2. Resamples to targetRate using cubic interpolation, unless targetRate
//     is 0 or already the source rate
//  3. Collects every sample in memory
//  4. Quantizes and encodes the result
//
// src is not closed.
//
// Example:
//
//	data, err := flacpbx.EncodeSource(src, 16000, true, flacpbx.Options{})
func EncodeSource(src audio.Source, targetRate int, mono bool, o Options) ([]byte, error) {
	var s audio.Source = src

	if mono && s.Channels() > 1 {
		s = audio.NewDownmix(s)
	}

	if targetRate > 0 && targetRate != s.SampleRate() {
		s = audio.NewResampler(s, targetRate)
	}

	pcm, err := audio.Drain(s, 0)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return EncodeInterleaved(pcm.Data, pcm.NumChannels, s.SampleRate(), o)
}
