// SPDX-License-Identifier: EPL-2.0

package codec

import "errors"

var (
	ErrAlreadyInitialized = errors.New("encoder already initialized")
	ErrNotInitialized     = errors.New("encoder not initialized")
	ErrFinished           = errors.New("encoder already finished")

	ErrCompressionLevel = errors.New("compression level out of range")
	ErrChannels         = errors.New("channel count out of range")
	ErrBitsPerSample    = errors.New("unsupported bits per sample")
	ErrSampleRate       = errors.New("sample rate out of range")
	ErrTotalSamples     = errors.New("total samples estimate out of range")

	ErrMetadataReleased   = errors.New("metadata object already released")
	ErrMetadataType       = errors.New("unexpected metadata type")
	ErrDuplicateMetadata  = errors.New("duplicate metadata block")
	ErrMetadataTooLarge   = errors.New("metadata block exceeds 24-bit length")
	ErrInvalidEntryName   = errors.New("invalid vorbis comment field name")
	ErrInvalidEntryValue  = errors.New("invalid vorbis comment value")
	ErrIncompleteCallback = errors.New("write, seek and tell callbacks are all required")

	ErrFrameCount     = errors.New("frame count does not match the sample buffer")
	ErrVerifyFailed   = errors.New("verification decode failed")
	ErrVerifyMismatch = errors.New("decoded audio does not match the input")
)
