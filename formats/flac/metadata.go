// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"github.com/ik5/flacpbx/internal/codec"
)

// metadataSet owns the engine allocated blocks of one encode until release.
type metadataSet struct {
	blocks []*codec.Metadata
}

// release frees every block once. It is safe to call repeatedly.
func (s *metadataSet) release() {
	for _, m := range s.blocks {
		m.Release()
	}

	s.blocks = nil
}

// assemble builds the comment block, when there are comments, followed by
// the padding block. Blocks are added to s as soon as they exist so a
// failure part way still leaves them for release.
func (s *metadataSet) assemble(engine codec.Engine, comments []Comment, padding uint32) error {
	if len(comments) > 0 {
		vc, err := engine.NewMetadata(codec.MetadataVorbisComment)
		if err != nil {
			return kindError(ErrFailedToSetMetadata, err)
		}

		s.blocks = append(s.blocks, vc)

		for _, c := range comments {
			entry, err := codec.EntryFromNameValuePair(c.Key, c.Value)
			if err != nil {
				return &InvalidCommentError{Key: c.Key, Err: err}
			}

			if err := vc.AppendComment(entry); err != nil {
				return kindError(ErrFailedToSetMetadata, err)
			}
		}
	}

	pad, err := engine.NewMetadata(codec.MetadataPadding)
	if err != nil {
		return kindError(ErrFailedToSetMetadata, err)
	}

	pad.Length = int(padding)
	s.blocks = append(s.blocks, pad)

	return nil
}
