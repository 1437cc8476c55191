// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/flacpbx/internal/audiotest"
	"github.com/ik5/flacpbx/internal/codec"
)

func TestMetadataSet_Assemble(t *testing.T) {
	t.Parallel()

	eng := &audiotest.FakeEngine{}
	var set metadataSet

	err := set.assemble(eng, []Comment{{"ARTIST", "a"}, {"ARTIST", "b"}, {"TITLE", "t"}}, 42)
	require.NoError(t, err)

	require.Len(t, set.blocks, 2)
	assert.Equal(t, []codec.Entry{
		{Name: "ARTIST", Value: "a"},
		{Name: "ARTIST", Value: "b"},
		{Name: "TITLE", Value: "t"},
	}, set.blocks[0].Comments)
	assert.Equal(t, 42, set.blocks[1].Length)

	set.release()
	assert.True(t, eng.AllReleased())
	assert.Nil(t, set.blocks)
}

func TestMetadataSet_NoComments(t *testing.T) {
	t.Parallel()

	eng := &audiotest.FakeEngine{}
	var set metadataSet

	require.NoError(t, set.assemble(eng, nil, 0))

	require.Len(t, set.blocks, 1)
	assert.Equal(t, codec.MetadataPadding, set.blocks[0].Type)
	assert.Equal(t, []string{audiotest.StepNewMetadata}, eng.Calls)
}

func TestMetadataSet_StopsAtFirstRejectedKey(t *testing.T) {
	t.Parallel()

	eng := &audiotest.FakeEngine{}
	var set metadataSet

	err := set.assemble(eng, []Comment{{"A", "1"}, {"B=", "2"}, {"C", "3"}}, 10)

	var ice *InvalidCommentError
	require.ErrorAs(t, err, &ice)
	assert.Equal(t, "B=", ice.Key)

	// Only the comment block exists and it holds the pairs before the
	// rejected one.
	require.Len(t, set.blocks, 1)
	assert.Equal(t, []codec.Entry{{Name: "A", Value: "1"}}, set.blocks[0].Comments)

	set.release()
	set.release()
	assert.Equal(t, 1, eng.Releases())
}

func TestInvalidCommentError(t *testing.T) {
	t.Parallel()

	err := &InvalidCommentError{Key: "X"}
	assert.ErrorIs(t, err, ErrInvalidVorbisComment)
	assert.Equal(t, `invalid vorbis comment: key "X"`, err.Error())

	wrapped := &InvalidCommentError{Key: "", Err: codec.ErrInvalidEntryName}
	assert.ErrorIs(t, wrapped, codec.ErrInvalidEntryName)
	assert.Contains(t, wrapped.Error(), `key ""`)
}
