// SPDX-License-Identifier: EPL-2.0

// Package audio describes the sample data handed to the encoders.
//
// This package contains:
//   - Input, the read-only view over in-memory samples, with the Planar and
//     Interleaved layouts
//   - Source, a stream of interleaved float32 samples, and Drain to collect
//     one into memory
//   - Resampler and Downmix, Source stages for rate and channel conversion
//   - adapters for github.com/go-audio/audio buffers
//
// # Layouts
//
// Planar keeps one slice per channel; Interleaved keeps frames back to back:
//
//	planar := audio.Planar[float32]{left, right}
//	interleaved := audio.Interleaved[float32]{Data: lrlr, NumChannels: 2}
//
// Both are views: converting a slice does not copy the samples. Before a
// layout is read, ChannelSizesMatch must hold: every planar channel has the
// same length, or the interleaved length divides evenly by the channel count.
//
// # Sources
//
// The Source interface streams normalized samples:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// Stages wrap a Source and are Sources themselves:
//
//	pipeline := audio.NewResampler(audio.NewDownmix(src), 16000)
//	v, err := audio.Drain(pipeline, 0)
//
// The Resampler uses Catmull-Rom interpolation and low-pass filters the
// input when the rate goes down.
//
// # Sample Format
//
// Float samples are normalized to [-1.0, 1.0]:
//   - 0.0 represents silence
//   - 1.0 represents maximum positive amplitude
//   - -1.0 represents maximum negative amplitude
//
// Values outside the range are clamped when quantized.
//
// # Error Handling
//
// ReadSamples returns io.EOF when no more data is available:
//
//	for {
//	    n, err := source.ReadSamples(buf)
//	    // use buf[:n]
//	    if err == io.EOF {
//	        break // Normal end of stream
//	    }
//	    if err != nil {
//	        return err
//	    }
//	}
package audio
