// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidBufSize = errors.New("buffer size must be a positive multiple of channels")
	ErrNoFormat       = errors.New("buffer has no format")
	ErrNoChannels     = errors.New("source reports no channels")
	ErrSampleRate     = errors.New("sample rate must be positive")
)
