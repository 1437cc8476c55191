// SPDX-License-Identifier: EPL-2.0

package codec

import (
	"fmt"
	"io"

	"github.com/ik5/flacpbx/internal/iobuf"
)

// The mewkiz encoder closes any io.Closer it is handed. The writers below
// expose only Write and Seek; the output file is closed by Finish.

// fileWriter hides the Close method of the wrapped file.
type fileWriter struct {
	io.WriteSeeker
}

// callbackWriter adapts Callbacks to io.WriteSeeker.
type callbackWriter struct {
	cb Callbacks
}

func (w callbackWriter) Write(p []byte) (int, error) {
	if err := w.cb.Write(p); err != nil {
		return 0, fmt.Errorf("write callback: %w", err)
	}

	return len(p), nil
}

func (w callbackWriter) Seek(offset int64, whence int) (int64, error) {
	abs := offset

	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		pos, err := w.cb.Tell()
		if err != nil {
			return 0, fmt.Errorf("tell callback: %w", err)
		}

		abs += pos
	default:
		return 0, fmt.Errorf("%w: %d", iobuf.ErrInvalidWhence, whence)
	}

	if err := w.cb.Seek(abs); err != nil {
		return 0, fmt.Errorf("seek callback: %w", err)
	}

	return abs, nil
}

// mirrorWriter copies everything written to dst into mirror so the stream
// can be decoded again for verification.
type mirrorWriter struct {
	dst    io.WriteSeeker
	mirror *iobuf.Buffer
}

func (w *mirrorWriter) Write(p []byte) (int, error) {
	n, err := w.dst.Write(p)
	if _, merr := w.mirror.Write(p[:n]); merr != nil && err == nil {
		err = fmt.Errorf("%w", merr)
	}

	return n, err
}

func (w *mirrorWriter) Seek(offset int64, whence int) (int64, error) {
	pos, err := w.dst.Seek(offset, whence)
	if err != nil {
		return pos, err
	}

	if _, err := w.mirror.Seek(pos, io.SeekStart); err != nil {
		return pos, fmt.Errorf("%w", err)
	}

	return pos, nil
}
