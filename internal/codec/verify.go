// SPDX-License-Identifier: EPL-2.0

package codec

import (
	"bytes"
	"crypto/md5"
	"errors"
	"fmt"
	"hash"
	"io"

	"github.com/mewkiz/flac"
)

// verifyOutput decodes the mirrored stream and compares the MD5 of the
// decoded samples with the MD5 of everything passed to ProcessInterleaved.
func (e *streamEncoder) verifyOutput() error {
	stream, err := flac.Parse(bytes.NewReader(e.mirror.Bytes()))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrVerifyFailed, err)
	}
	defer stream.Close()

	var (
		decoded uint64
		sum     = md5.New()
		buf     []int32
	)

	for {
		f, err := stream.ParseNext()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return fmt.Errorf("%w: frame after %d samples: %w", ErrVerifyFailed, decoded, err)
		}

		if len(f.Subframes) != e.channels {
			return fmt.Errorf("%w: %d channels decoded, %d encoded", ErrVerifyMismatch, len(f.Subframes), e.channels)
		}

		n := len(f.Subframes[0].Samples)
		buf = buf[:0]

		for i := range n {
			for _, sub := range f.Subframes {
				buf = append(buf, sub.Samples[i])
			}
		}

		writeSampleBytes(sum, buf, e.bps)
		decoded += uint64(n)
	}

	want := e.inputSum.Sum(nil)
	if got := sum.Sum(nil); !bytes.Equal(got, want) {
		return fmt.Errorf("%w: md5 %x, want %x (%d samples decoded)", ErrVerifyMismatch, got, want, decoded)
	}

	return nil
}

// writeSampleBytes feeds samples to h as little endian signed integers of
// (bps+7)/8 bytes each, the layout FLAC uses for its MD5 signature.
func writeSampleBytes(h hash.Hash, samples []int32, bps int) {
	width := (bps + 7) / 8
	scratch := make([]byte, 0, 4096)

	for _, s := range samples {
		for b := range width {
			scratch = append(scratch, byte(s>>(8*b)))
		}

		if len(scratch) >= 4096-4 {
			h.Write(scratch)
			scratch = scratch[:0]
		}
	}

	h.Write(scratch)
}
