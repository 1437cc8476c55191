// SPDX-License-Identifier: EPL-2.0

package codec

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MetadataType identifies the kind of a metadata block.
type MetadataType int

const (
	MetadataPadding MetadataType = iota
	MetadataVorbisComment
)

func (t MetadataType) String() string {
	switch t {
	case MetadataPadding:
		return "padding"
	case MetadataVorbisComment:
		return "vorbis_comment"
	default:
		return fmt.Sprintf("MetadataType(%d)", int(t))
	}
}

// Entry is one validated NAME=value vorbis comment.
type Entry struct {
	Name  string
	Value string
}

// EntryFromNameValuePair validates a field name and value. Names must be
// non-empty printable ASCII (0x20-0x7D) without '='; values must be valid
// UTF-8. Neither may contain a NUL byte.
func EntryFromNameValuePair(name, value string) (Entry, error) {
	if name == "" {
		return Entry{}, fmt.Errorf("%w: empty name", ErrInvalidEntryName)
	}

	for i := 0; i < len(name); i++ {
		c := name[i]
		if c < 0x20 || c > 0x7d || c == '=' {
			return Entry{}, fmt.Errorf("%w: byte 0x%02x at %d", ErrInvalidEntryName, c, i)
		}
	}

	if !utf8.ValidString(value) || strings.IndexByte(value, 0) >= 0 {
		return Entry{}, fmt.Errorf("%w: %q", ErrInvalidEntryValue, value)
	}

	return Entry{Name: name, Value: value}, nil
}

// Metadata is an engine allocated metadata object. It stays owned by
// whoever created it and must be released exactly once.
type Metadata struct {
	Type     MetadataType
	// Length is the padding size in bytes; used by MetadataPadding only.
	Length   int
	Vendor   string
	Comments []Entry

	released  bool
	onRelease func(*Metadata)
}

// NewMetadataObject returns a fresh object of type t. onRelease, when set,
// runs once on Release.
func NewMetadataObject(t MetadataType, onRelease func(*Metadata)) *Metadata {
	return &Metadata{Type: t, onRelease: onRelease}
}

// AppendComment adds e to a vorbis comment block.
func (m *Metadata) AppendComment(e Entry) error {
	if m.released {
		return ErrMetadataReleased
	}

	if m.Type != MetadataVorbisComment {
		return fmt.Errorf("%w: append comment to %s", ErrMetadataType, m.Type)
	}

	m.Comments = append(m.Comments, e)

	return nil
}

// Release frees the object. Calling it again is a no-op.
func (m *Metadata) Release() {
	if m == nil || m.released {
		return
	}

	m.released = true
	m.Comments = nil

	if m.onRelease != nil {
		m.onRelease(m)
	}
}

// Released reports whether Release has run.
func (m *Metadata) Released() bool { return m.released }

// encodedLength is the body size of the block in the FLAC container.
func (m *Metadata) encodedLength() int {
	switch m.Type {
	case MetadataPadding:
		return m.Length
	case MetadataVorbisComment:
		// vendor length + vendor + comment count, then a length prefixed
		// NAME=value per comment.
		n := 4 + len(m.Vendor) + 4
		for _, c := range m.Comments {
			n += 4 + len(c.Name) + 1 + len(c.Value)
		}

		return n
	default:
		return 0
	}
}
