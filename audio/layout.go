// SPDX-License-Identifier: EPL-2.0

package audio

// Input is a read-only view over in-memory samples of type S.
type Input[S any] interface {
	// Channels count (e.g., 1=mono, 2=stereo).
	Channels() int
	// TotalSamples is the number of samples across all channels.
	TotalSamples() int
	// SamplesPerChannel is the number of frames.
	SamplesPerChannel() int
	// ChannelSizesMatch reports whether every channel holds the same number
	// of samples. It must hold before any frame is read.
	ChannelSizesMatch() bool
	// At returns the sample of channel ch in frame i. ok is false when the
	// position lies outside the data.
	At(ch, i int) (s S, ok bool)
}

// Planar holds one sample slice per channel. Converting a [][]S to Planar
// does not copy the samples.
type Planar[S any] [][]S

func (p Planar[S]) Channels() int { return len(p) }

func (p Planar[S]) TotalSamples() int {
	total := 0
	for _, ch := range p {
		total += len(ch)
	}

	return total
}

// SamplesPerChannel is the length of the first channel, or 0 without
// channels.
func (p Planar[S]) SamplesPerChannel() int {
	if len(p) == 0 {
		return 0
	}

	return len(p[0])
}

func (p Planar[S]) ChannelSizesMatch() bool {
	for _, ch := range p {
		if len(ch) != len(p[0]) {
			return false
		}
	}

	return true
}

func (p Planar[S]) At(ch, i int) (S, bool) {
	var zero S
	if ch < 0 || ch >= len(p) || i < 0 || i >= len(p[ch]) {
		return zero, false
	}

	return p[ch][i], true
}

// Interleaved holds frames back to back, NumChannels samples per frame
// (e.g. LRLRLR for stereo).
type Interleaved[S any] struct {
	Data        []S
	NumChannels int
}

func (v Interleaved[S]) Channels() int     { return v.NumChannels }
func (v Interleaved[S]) TotalSamples() int { return len(v.Data) }

func (v Interleaved[S]) SamplesPerChannel() int {
	if v.NumChannels <= 0 {
		return 0
	}

	return len(v.Data) / v.NumChannels
}

// ChannelSizesMatch reports whether the data splits into whole frames. A
// non positive channel count never matches.
func (v Interleaved[S]) ChannelSizesMatch() bool {
	return v.NumChannels > 0 && len(v.Data)%v.NumChannels == 0
}

func (v Interleaved[S]) At(ch, i int) (S, bool) {
	var zero S
	if ch < 0 || ch >= v.NumChannels || i < 0 {
		return zero, false
	}

	idx := i*v.NumChannels + ch
	if idx >= len(v.Data) {
		return zero, false
	}

	return v.Data[idx], true
}
