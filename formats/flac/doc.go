// SPDX-License-Identifier: EPL-2.0

// Package flac encodes in-memory PCM to FLAC.
//
// A Builder wraps borrowed sample data, either one slice per channel or a
// single interleaved slice, together with the stream settings. Samples are
// normalized floats in [-1.0, 1.0]; values outside are clamped. Other sample
// types work through a utils.Quantizer.
//
// # Encoding to memory
//
//	left := []float32{0, 0.5, 1}
//	right := []float32{0, -0.5, -1}
//
//	data, err := flac.FromPlanar([][]float32{left, right}, 44100).
//	    BitDepth(flac.Depth24).
//	    Artist("Someone").
//	    Build()
//
// # Encoding to a file
//
//	err := flac.FromInterleaved(samples, 2, 48000).
//	    CompressionLevel(8).
//	    Padding(0).
//	    WriteFile("out.flac")
//
// # Settings
//
// Bit depth is one of Depth16, Depth20 or Depth24 (default 16). The
// compression level goes to the codec unchanged; it accepts 0 to 8
// (default 5). A padding block of DefaultPadding bytes is written unless
// changed, and a vorbis comment block is added when at least one tag is set.
// Verify, on by default, decodes the output again and compares it with the
// input before returning.
//
// Settings can also come from a YAML Profile:
//
//	p, err := flac.LoadProfile("archive.yaml")
//	data, err := flac.FromPlanar(channels, 44100).Profile(p).Build()
//
// # Error Handling
//
// Every failure wraps one of the sentinel errors of this package, so the
// kind can be checked with errors.Is while the codec cause is kept:
//
//	_, err := b.Build()
//	switch {
//	case errors.Is(err, flac.ErrNoData):
//	case errors.Is(err, flac.ErrInvalidCompressionLevel):
//	}
//
// A rejected tag is reported as an *InvalidCommentError carrying its key.
//
// # Logging
//
// The Builder logs through a *zap.Logger set with Logger. Phase changes go
// to debug, a finished encode to info and failures to warn. The default
// logger discards everything.
package flac
