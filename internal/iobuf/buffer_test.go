// SPDX-License-Identifier: EPL-2.0

package iobuf

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestBuffer_SequentialWrites(t *testing.T) {
	t.Parallel()

	b := New(0)

	b.Write([]byte("fLaC"))
	b.Write([]byte{1, 2, 3})

	if got := b.Bytes(); !bytes.Equal(got, []byte{'f', 'L', 'a', 'C', 1, 2, 3}) {
		t.Errorf("Bytes() = %v", got)
	}

	if b.Tell() != 7 {
		t.Errorf("Tell() = %d, want 7", b.Tell())
	}
}

func TestBuffer_WritePastEndZeroFills(t *testing.T) {
	t.Parallel()

	b := New(4)
	b.Write([]byte{9, 9})

	if _, err := b.Seek(5, io.SeekStart); err != nil {
		t.Fatalf("Seek() error = %v", err)
	}

	b.Write([]byte{7, 7})

	want := []byte{9, 9, 0, 0, 0, 7, 7}
	if got := b.Bytes(); !bytes.Equal(got, want) {
		t.Errorf("Bytes() = %v, want %v", got, want)
	}

	if b.Len() != max(2, 5+2) {
		t.Errorf("Len() = %d, want %d", b.Len(), 7)
	}
}

// TestBuffer_GapAfterRewindIsZero covers stale capacity bytes: data that was
// never part of the visible slice must not leak into a zero-filled gap.
func TestBuffer_GapAfterRewindIsZero(t *testing.T) {
	t.Parallel()

	b := &Buffer{data: []byte{1, 2, 3, 4, 5, 6, 7, 8}[:2]}
	b.Seek(6, io.SeekStart)
	b.Write([]byte{42})

	want := []byte{1, 2, 0, 0, 0, 0, 42}
	if got := b.Bytes(); !bytes.Equal(got, want) {
		t.Errorf("Bytes() = %v, want %v", got, want)
	}
}

func TestBuffer_BackpatchKeepsTail(t *testing.T) {
	t.Parallel()

	b := New(0)
	b.Write([]byte("0123456789"))

	if _, err := b.Seek(0, io.SeekStart); err != nil {
		t.Fatalf("Seek() error = %v", err)
	}

	b.Write([]byte("abc"))

	if got := string(b.Bytes()); got != "abc3456789" {
		t.Errorf("Bytes() = %q, want %q", got, "abc3456789")
	}

	if b.Tell() != 3 {
		t.Errorf("Tell() = %d, want 3", b.Tell())
	}

	if b.Len() != 10 {
		t.Errorf("Len() = %d, want 10", b.Len())
	}
}

func TestBuffer_Seek(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		offset  int64
		whence  int
		want    int64
		wantErr error
	}{
		{"start", 3, io.SeekStart, 3, nil},
		{"current", -2, io.SeekCurrent, 8, nil},
		{"end", -1, io.SeekEnd, 9, nil},
		{"past end", 100, io.SeekStart, 100, nil},
		{"negative", -1, io.SeekStart, 10, ErrNegativeOffset},
		{"bad whence", 0, 42, 10, ErrInvalidWhence},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b := New(0)
			b.Write(make([]byte, 10))

			got, err := b.Seek(tt.offset, tt.whence)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Seek() error = %v, want %v", err, tt.wantErr)
			}

			if got != tt.want || b.Tell() != tt.want {
				t.Errorf("Seek() = %d, Tell() = %d, want %d", got, b.Tell(), tt.want)
			}
		})
	}
}

func TestBuffer_ZeroValue(t *testing.T) {
	t.Parallel()

	var b Buffer
	if b.Len() != 0 || b.Tell() != 0 {
		t.Fatalf("zero Buffer: Len() = %d, Tell() = %d", b.Len(), b.Tell())
	}

	b.Write([]byte{1})
	if b.Len() != 1 {
		t.Errorf("Len() = %d, want 1", b.Len())
	}
}
