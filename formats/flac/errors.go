// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"errors"
	"fmt"
)

// Input errors.
var (
	ErrNoData                           = errors.New("no audio data")
	ErrMismatchedSampleCountPerChannels = errors.New("mismatched sample count per channels")
	ErrInvalidBitDepth                  = errors.New("invalid bit depth")
	ErrNullCharInPath                   = errors.New("null character in output path")
)

// Codec configuration errors.
var (
	ErrInitialization            = errors.New("failed to create encoder")
	ErrVerification              = errors.New("failed to set verify mode")
	ErrInvalidCompressionLevel   = errors.New("invalid compression level")
	ErrInvalidChannelCount       = errors.New("invalid channel count")
	ErrInvalidSampleType         = errors.New("invalid sample type")
	ErrInvalidSampleRate         = errors.New("invalid sample rate")
	ErrTooManyOrTooFewSamples    = errors.New("too many or too few samples")
	ErrFailedToSetMetadata       = errors.New("failed to set metadata")
	ErrFailedToInitializeEncoder = errors.New("failed to initialize encoder")
)

var (
	ErrInvalidVorbisComment = errors.New("invalid vorbis comment")
	ErrEncoding             = errors.New("encoding error")
	ErrInvalidProfile       = errors.New("invalid encoding profile")
)

// InvalidCommentError reports the key of a tag pair the codec rejected. It
// matches ErrInvalidVorbisComment with errors.Is.
type InvalidCommentError struct {
	Key string
	Err error
}

func (e *InvalidCommentError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: key %q", ErrInvalidVorbisComment, e.Key)
	}

	return fmt.Sprintf("%s: key %q: %v", ErrInvalidVorbisComment, e.Key, e.Err)
}

func (e *InvalidCommentError) Is(target error) bool {
	return target == ErrInvalidVorbisComment
}

func (e *InvalidCommentError) Unwrap() error { return e.Err }

// kindError tags cause with the error kind of the failed step.
func kindError(kind, cause error) error {
	return fmt.Errorf("%w: %w", kind, cause)
}
