// SPDX-License-Identifier: EPL-2.0

// Package iobuf holds a growable in-memory file with a byte cursor.
package iobuf

import (
	"errors"
	"fmt"
	"io"
)

var (
	ErrNegativeOffset = errors.New("seek to a negative offset")
	ErrInvalidWhence  = errors.New("invalid whence")
)

// Buffer is an in-memory io.WriteSeeker. Writes land at the cursor, growing
// the data as needed; a gap between the end of the data and the cursor is
// zero filled. The zero value is an empty buffer ready to use.
type Buffer struct {
	data   []byte
	cursor int
}

// New returns a Buffer whose backing array has room for capacity bytes.
func New(capacity int) *Buffer {
	if capacity < 0 {
		capacity = 0
	}

	return &Buffer{data: make([]byte, 0, capacity)}
}

// Write copies p at the cursor and advances it by len(p).
func (b *Buffer) Write(p []byte) (int, error) {
	end := b.cursor + len(p)
	if end > len(b.data) {
		if end > cap(b.data) {
			grown := make([]byte, len(b.data), max(end, 2*cap(b.data)))
			copy(grown, b.data)
			b.data = grown
		}

		// Reslicing exposes stale bytes only beyond the old length; clear
		// them so the gap reads as zeros.
		old := len(b.data)
		b.data = b.data[:end]
		clear(b.data[old:end])
	}

	copy(b.data[b.cursor:end], p)
	b.cursor = end

	return len(p), nil
}

// Seek moves the cursor. Offsets past the end are allowed.
func (b *Buffer) Seek(offset int64, whence int) (int64, error) {
	var abs int64

	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = int64(b.cursor) + offset
	case io.SeekEnd:
		abs = int64(len(b.data)) + offset
	default:
		return int64(b.cursor), fmt.Errorf("%w: %d", ErrInvalidWhence, whence)
	}

	if abs < 0 {
		return int64(b.cursor), fmt.Errorf("%w: %d", ErrNegativeOffset, abs)
	}

	b.cursor = int(abs)

	return abs, nil
}

// Tell reports the cursor position.
func (b *Buffer) Tell() int64 { return int64(b.cursor) }

// Len returns the number of bytes written so far, gaps included.
func (b *Buffer) Len() int { return len(b.data) }

// Bytes returns the buffer contents. The slice aliases the buffer until the
// next Write.
func (b *Buffer) Bytes() []byte { return b.data }
