// SPDX-License-Identifier: EPL-2.0

// Package audiotest holds deterministic sample generators and a scripted
// codec engine for tests.
package audiotest

import (
	"io"
	"math"
)

// Waveform yields the sample of channel ch at frame index i.
type Waveform func(i, ch int) float32

// Sine is a full scale sine of freq Hz at rate Hz, identical on every channel.
func Sine(rate int, freq float64) Waveform {
	return func(i, _ int) float32 {
		t := float64(i) / float64(rate)
		return float32(math.Sin(2 * math.Pi * freq * t))
	}
}

// Constant returns v everywhere.
func Constant(v float32) Waveform {
	return func(int, int) float32 { return v }
}

// Planar renders frames samples of w for each of channels channels.
func Planar(channels, frames int, w Waveform) [][]float32 {
	out := make([][]float32, channels)
	for ch := range out {
		out[ch] = make([]float32, frames)
		for i := range frames {
			out[ch][i] = w(i, ch)
		}
	}

	return out
}

// Interleaved renders frames frames of w, channels samples per frame.
func Interleaved(channels, frames int, w Waveform) []float32 {
	out := make([]float32, channels*frames)
	for i := range frames {
		for ch := range channels {
			out[i*channels+ch] = w(i, ch)
		}
	}

	return out
}

// MockSource streams a Waveform through the audio.Source method set
// without importing the audio package.
type MockSource struct {
	sampleRate int
	channels   int
	frames     int // per channel
	generated  int // per channel
	waveform   Waveform
}

// NewMockSource returns a source of frames frames of w.
func NewMockSource(sampleRate, channels, frames int, w Waveform) *MockSource {
	return &MockSource{
		sampleRate: sampleRate,
		channels:   channels,
		frames:     frames,
		waveform:   w,
	}
}

func NewSilentSource(sampleRate, channels, frames int) *MockSource {
	return NewMockSource(sampleRate, channels, frames, Constant(0))
}

func NewSineSource(sampleRate, channels, frames int, freq float64) *MockSource {
	return NewMockSource(sampleRate, channels, frames, Sine(sampleRate, freq))
}

func NewConstantSource(sampleRate, channels, frames int, v float32) *MockSource {
	return NewMockSource(sampleRate, channels, frames, Constant(v))
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return 4096 }
func (m *MockSource) Close() error    { return nil }

// Reset rewinds the source to its first frame.
func (m *MockSource) Reset() {
	m.generated = 0
}

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.generated >= m.frames {
		return 0, io.EOF
	}

	n := min(len(dst)/m.channels, m.frames-m.generated)

	for f := range n {
		for ch := range m.channels {
			dst[f*m.channels+ch] = m.waveform(m.generated+f, ch)
		}
	}

	m.generated += n

	if m.generated >= m.frames {
		return n * m.channels, io.EOF
	}

	return n * m.channels, nil
}

// FailingSource reports the shape of its MockSource but never yields
// samples. ReadSamples returns (0, Err); a nil Err makes the source stall.
type FailingSource struct {
	*MockSource
	Err error
}

func (f *FailingSource) ReadSamples([]float32) (int, error) {
	return 0, f.Err
}
