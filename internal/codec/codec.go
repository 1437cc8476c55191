// SPDX-License-Identifier: EPL-2.0

// Package codec defines the stream encoder contract the flac builder drives
// and provides the default engine built on github.com/mewkiz/flac.
//
// An Encoder is configured through individual setters, initialized for
// either a file or a set of write/seek/tell callbacks, fed interleaved
// 32-bit PCM blocks, and finished. Every step reports its own error so the
// caller can map failures to precise kinds.
package codec

// Engine creates encoders and the metadata objects lent to them.
type Engine interface {
	NewEncoder() (Encoder, error)
	NewMetadata(t MetadataType) (*Metadata, error)
}

// Encoder is a single use FLAC stream encoder.
type Encoder interface {
	SetVerify(verify bool) error
	SetCompressionLevel(level int) error
	SetChannels(channels int) error
	SetBitsPerSample(bps int) error
	SetSampleRate(rate int) error
	SetTotalSamplesEstimate(samples uint64) error
	// SetMetadata lends blocks to the encoder. The caller keeps ownership
	// and must not release them before Finish returns.
	SetMetadata(blocks []*Metadata) error

	InitFile(path string) error
	InitStream(cb Callbacks) error

	// ProcessInterleaved encodes frames frames taken from samples, which
	// hold frames*channels values ordered frame major.
	ProcessInterleaved(samples []int32, frames int) error
	Finish() error
}

// Callbacks is the virtual file an encoder writes to when it is not given a
// path. Seek takes an absolute byte offset.
type Callbacks struct {
	Write func(p []byte) error
	Seek  func(offset int64) error
	Tell  func() (int64, error)
}
