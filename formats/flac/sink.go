// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"fmt"
	"io"
	"strings"

	"github.com/ik5/flacpbx/internal/codec"
	"github.com/ik5/flacpbx/internal/iobuf"
)

// sink is where one encode sends its bytes.
type sink interface {
	// init starts enc on the sink.
	init(enc codec.Encoder) error
	// bytes is the encoded stream, nil for files.
	bytes() []byte
	String() string
}

// newSink returns a file sink for a non-empty path and a buffer sink
// otherwise.
func newSink(path string) (sink, error) {
	if path == "" {
		return &bufferSink{buf: iobuf.New(0)}, nil
	}

	if strings.IndexByte(path, 0) >= 0 {
		return nil, fmt.Errorf("%w: %q", ErrNullCharInPath, path)
	}

	return fileSink{path: path}, nil
}

type fileSink struct {
	path string
}

func (s fileSink) init(enc codec.Encoder) error { return enc.InitFile(s.path) }
func (s fileSink) bytes() []byte                { return nil }
func (s fileSink) String() string               { return s.path }

// bufferSink is the in-memory target. Its buffer is reachable only through
// the callbacks handed to a single encoder.
type bufferSink struct {
	buf *iobuf.Buffer
}

func (s *bufferSink) init(enc codec.Encoder) error { return enc.InitStream(s.callbacks()) }
func (s *bufferSink) bytes() []byte                { return s.buf.Bytes() }
func (s *bufferSink) String() string               { return "buffer" }

func (s *bufferSink) callbacks() codec.Callbacks {
	return codec.Callbacks{
		Write: func(p []byte) error {
			_, err := s.buf.Write(p)
			return err
		},
		Seek: func(offset int64) error {
			_, err := s.buf.Seek(offset, io.SeekStart)
			return err
		},
		Tell: func() (int64, error) {
			return s.buf.Tell(), nil
		},
	}
}
