// SPDX-License-Identifier: EPL-2.0

// Package flacpbx turns PCM audio held in memory into FLAC.
//
// This package offers one call helpers over the formats/flac Builder for the
// common cases. Samples are normalized floats in [-1.0, 1.0], stored either
// one slice per channel (planar) or frame by frame (interleaved).
//
// # Quick Start
//
//	left, right := render()
//	data, err := flacpbx.EncodePlanar([][]float32{left, right}, 44100, flacpbx.Options{})
//
//	// Or straight to disk at 24 bits
//	err = flacpbx.EncodePlanarToFile("out.flac", channels, 48000,
//	    flacpbx.Options{BitDepth: flac.Depth24})
//
// # Streaming Sources
//
// Anything implementing audio.Source can be encoded; it is optionally mixed
// to mono and resampled first:
//
//	data, err := flacpbx.EncodeSource(src, 16000, true, flacpbx.Options{})
//
// # Full Control
//
// For tags, padding, compression level or a YAML profile use the Builder
// from the formats/flac subpackage:
//
//	data, err := flac.FromInterleaved(samples, 2, 44100).
//	    CompressionLevel(8).
//	    Artist("Someone").
//	    Title("Something").
//	    Padding(4096).
//	    Build()
//
// # Subpackages
//
//   - audio: input layouts, the Source interface, resampling and downmixing
//   - formats/flac: the Builder, error kinds and profiles
//   - utils: quantization and interpolation helpers
//
// See the individual subpackages for more detailed documentation.
package flacpbx
