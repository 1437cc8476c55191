// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/flacpbx/utils"
)

// Downmix averages every frame of a source into a single channel.
type Downmix struct {
	src Source
	buf []float32
}

func NewDownmix(src Source) *Downmix {
	return &Downmix{src: src}
}

func (d *Downmix) SampleRate() int { return d.src.SampleRate() }
func (d *Downmix) Channels() int   { return 1 }
func (d *Downmix) BufSize() int    { return d.src.BufSize() }

func (d *Downmix) Close() error {
	if err := d.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

// ReadSamples fills dst with up to len(dst) mono samples.
func (d *Downmix) ReadSamples(dst []float32) (int, error) {
	channels := d.src.Channels()
	if channels <= 0 {
		return 0, ErrNoChannels
	}

	if channels == 1 || len(dst) == 0 {
		return d.src.ReadSamples(dst)
	}

	need := len(dst) * channels
	if cap(d.buf) < need {
		d.buf = make([]float32, need)
	}

	in := d.buf[:need]

	n, err := d.src.ReadSamples(in)
	frames := n / channels
	scale := 1 / float32(channels)

	for f := range frames {
		var sum float32
		for _, s := range in[f*channels : (f+1)*channels] {
			sum += s
		}

		dst[f] = sum * scale
	}

	return frames, err
}

// Resampler converts a source to another sample rate with Catmull-Rom
// interpolation, keeping the channel count. When the rate goes down each
// input frame first passes a one pole low-pass.
type Resampler struct {
	src      Source
	rate     int
	step     float64 // input frames per output frame
	channels int

	// window holds input frames t-1, t, t+1 and t+2; output is taken
	// between window[1] and window[2]. live marks slots holding real input
	// rather than a repeat of the last frame.
	window [4][]float32
	live   [4]bool
	pos    float64

	in           []float32
	inPos, inLen int
	eof          bool
	primed       bool
	done         bool

	smooth bool
	warm   bool
	prev   []float32
}

// lowPassAlpha weights the new frame in the downsampling low-pass.
const lowPassAlpha = 0.5

// NewResampler converts src to rate Hz. A non-positive rate on either side
// makes ReadSamples fail with ErrSampleRate.
func NewResampler(src Source, rate int) *Resampler {
	channels := max(src.Channels(), 0)
	step := float64(src.SampleRate()) / float64(rate)

	size := src.BufSize()
	if channels > 0 {
		size -= size % channels
	}

	r := &Resampler{
		src:      src,
		rate:     rate,
		step:     step,
		channels: channels,
		in:       make([]float32, max(size, channels)),
		smooth:   step > 1,
		prev:     make([]float32, channels),
	}

	for i := range r.window {
		r.window[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.rate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

// pull copies the next input frame into frame. It reports false once the
// source is exhausted.
func (r *Resampler) pull(frame []float32) (bool, error) {
	empty := 0

	for r.inPos >= r.inLen {
		if r.eof {
			return false, nil
		}

		n, err := r.src.ReadSamples(r.in)
		r.inPos, r.inLen = 0, n-n%r.channels

		switch {
		case errors.Is(err, io.EOF):
			r.eof = true
		case err != nil:
			return false, fmt.Errorf("%w", err)
		case n == 0:
			empty++
			if empty >= maxEmptyReads {
				return false, io.ErrNoProgress
			}
		}
	}

	copy(frame, r.in[r.inPos:r.inPos+r.channels])
	r.inPos += r.channels

	if r.smooth {
		if !r.warm {
			// Start the filter settled on the first frame.
			copy(r.prev, frame)
			r.warm = true
		}

		for c := range frame {
			frame[c] = lowPassAlpha*frame[c] + (1-lowPassAlpha)*r.prev[c]
			r.prev[c] = frame[c]
		}
	}

	return true, nil
}

// fill loads window slot i, repeating slot i-1 past the end of the input.
func (r *Resampler) fill(i int) error {
	ok, err := r.pull(r.window[i])
	if err != nil {
		return err
	}

	if !ok {
		copy(r.window[i], r.window[i-1])
	}

	r.live[i] = ok

	return nil
}

func (r *Resampler) prime() error {
	r.primed = true

	ok, err := r.pull(r.window[1])
	if err != nil || !ok {
		return err
	}

	r.live[1] = true
	copy(r.window[0], r.window[1])

	if err := r.fill(2); err != nil {
		return err
	}

	return r.fill(3)
}

// advance slides the window forward by one input frame.
func (r *Resampler) advance() error {
	oldest := r.window[0]
	copy(r.window[:3], r.window[1:])
	copy(r.live[:3], r.live[1:])
	r.window[3] = oldest

	return r.fill(3)
}

// ReadSamples produces interleaved samples at the target rate. len(dst)
// must be a multiple of the channel count.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if r.channels <= 0 {
		return 0, ErrNoChannels
	}

	if r.rate <= 0 || r.src.SampleRate() <= 0 {
		return 0, fmt.Errorf("%w: %d Hz to %d Hz", ErrSampleRate, r.src.SampleRate(), r.rate)
	}

	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidBufSize
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}

		r.done = !r.live[1]
	}

	if r.done {
		return 0, io.EOF
	}

	frames := len(dst) / r.channels
	written := 0

	for written < frames {
		for r.pos >= 1 {
			r.pos--
			if err := r.advance(); err != nil {
				return written * r.channels, err
			}
		}

		if !r.live[1] {
			r.done = true
			break
		}

		t := float32(r.pos)
		out := dst[written*r.channels : (written+1)*r.channels]

		for c := range out {
			out[c] = utils.CubicInterpolate(r.window[0][c], r.window[1][c], r.window[2][c], r.window[3][c], t)
		}

		written++
		r.pos += r.step
	}

	if r.done {
		return written * r.channels, io.EOF
	}

	return written * r.channels, nil
}
