// SPDX-License-Identifier: EPL-2.0

package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryFromNameValuePair(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		key     string
		value   string
		wantErr error
	}{
		{"plain", "ARTIST", "Some Body", nil},
		{"lower case and space", "my tag", "x", nil},
		{"utf8 value", "TITLE", "Ünïcødé ♫", nil},
		{"empty value", "COMMENT", "", nil},
		{"empty key", "", "x", ErrInvalidEntryName},
		{"equals in key", "A=B", "x", ErrInvalidEntryName},
		{"control char in key", "A\tB", "x", ErrInvalidEntryName},
		{"non ascii key", "TÎTLE", "x", ErrInvalidEntryName},
		{"tilde in key", "A~", "x", ErrInvalidEntryName},
		{"nul in key", "A\x00", "x", ErrInvalidEntryName},
		{"nul in value", "TITLE", "a\x00b", ErrInvalidEntryValue},
		{"invalid utf8 value", "TITLE", "\xff\xfe", ErrInvalidEntryValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e, err := EntryFromNameValuePair(tt.key, tt.value)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, Entry{Name: tt.key, Value: tt.value}, e)
		})
	}
}

func TestMetadata_ReleaseOnce(t *testing.T) {
	t.Parallel()

	calls := 0
	m := NewMetadataObject(MetadataVorbisComment, func(*Metadata) { calls++ })

	require.NoError(t, m.AppendComment(Entry{Name: "A", Value: "b"}))

	m.Release()
	m.Release()

	assert.True(t, m.Released())
	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, m.AppendComment(Entry{Name: "A", Value: "b"}), ErrMetadataReleased)

	var nilMeta *Metadata
	assert.NotPanics(t, nilMeta.Release)
}

func TestMetadata_AppendToPadding(t *testing.T) {
	t.Parallel()

	m := NewMetadataObject(MetadataPadding, nil)
	assert.ErrorIs(t, m.AppendComment(Entry{Name: "A"}), ErrMetadataType)
}

func TestMetadata_EncodedLength(t *testing.T) {
	t.Parallel()

	pad := NewMetadataObject(MetadataPadding, nil)
	pad.Length = 500
	assert.Equal(t, 500, pad.encodedLength())

	vc := NewMetadataObject(MetadataVorbisComment, nil)
	vc.Vendor = "abc"
	vc.Comments = []Entry{{Name: "K", Value: "vv"}}

	// 4+3 vendor, 4 count, 4+len("K=vv")
	assert.Equal(t, 4+3+4+4+4, vc.encodedLength())
}

func TestMetadataType_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "padding", MetadataPadding.String())
	assert.Equal(t, "vorbis_comment", MetadataVorbisComment.String())
	assert.Equal(t, "MetadataType(7)", MetadataType(7).String())
}
