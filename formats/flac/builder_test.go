// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ik5/flacpbx/audio"
	"github.com/ik5/flacpbx/internal/audiotest"
	"github.com/ik5/flacpbx/utils"
)

func TestBuilder_Defaults(t *testing.T) {
	t.Parallel()

	b := FromPlanar([][]float64{{0}}, 96000)

	assert.Equal(t, Depth16, b.bitDepth)
	assert.Equal(t, DefaultCompressionLevel, b.compressionLevel)
	assert.Equal(t, uint32(DefaultPadding), b.padding)
	assert.True(t, b.verify)
	assert.Equal(t, 96000, b.sampleRate)
	assert.Empty(t, b.comments)
	assert.Empty(t, b.outputPath)
	assert.NotNil(t, b.logger)
	assert.NotNil(t, b.engine)
}

func TestBuilder_BorrowsInput(t *testing.T) {
	t.Parallel()

	data := []float32{0, 0}
	b := FromInterleaved(data, 1, 8000)
	data[1] = 0.5

	s, ok := b.input.At(0, 1)
	require.True(t, ok)
	assert.Equal(t, float32(0.5), s)
}

func TestBuilder_CopiesDoNotShareComments(t *testing.T) {
	t.Parallel()

	base := FromPlanar([][]float32{{0}}, 8000).Comment("A", "1")
	x := base.Comment("B", "2")
	y := base.Comment("C", "3")

	assert.Equal(t, []Comment{{"A", "1"}}, base.comments)
	assert.Equal(t, []Comment{{"A", "1"}, {"B", "2"}}, x.comments)
	assert.Equal(t, []Comment{{"A", "1"}, {"C", "3"}}, y.comments)
}

func TestBuilder_Setters(t *testing.T) {
	t.Parallel()

	b := FromPlanar([][]float32{{0}}, 8000).
		CompressionLevel(0).
		BitDepth(Depth24).
		Padding(7).
		OutputPath("x.flac").
		Verify(false)

	assert.Equal(t, 0, b.compressionLevel)
	assert.Equal(t, Depth24, b.bitDepth)
	assert.Equal(t, uint32(7), b.padding)
	assert.Equal(t, "x.flac", b.outputPath)
	assert.False(t, b.verify)

	assert.Empty(t, b.OutputPath("").outputPath)
}

func TestBuilder_TagSetters(t *testing.T) {
	t.Parallel()

	b := FromPlanar([][]float32{{0}}, 8000).
		Artist("artist").
		Album("album").
		Title("title").
		TrackNumber(7).
		Year(1999).
		Comment("GENRE", "noise")

	assert.Equal(t, []Comment{
		{"ARTIST", "artist"},
		{"ALBUM", "album"},
		{"TITLE", "title"},
		{"TRACKNUMBER", "7"},
		{"YEAR", "1999"},
		{"GENRE", "noise"},
	}, b.comments)
}

func TestBuilder_Logger(t *testing.T) {
	t.Parallel()

	l := zap.NewExample()
	b := FromPlanar([][]float32{{0}}, 8000).Logger(l)
	assert.Same(t, l, b.logger)

	assert.NotNil(t, b.Logger(nil).logger)
}

func TestBitDepth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		d     BitDepth
		valid bool
		str   string
	}{
		{Depth16, true, "16-bit"},
		{Depth20, true, "20-bit"},
		{Depth24, true, "24-bit"},
		{BitDepth(8), false, "8-bit"},
		{BitDepth(32), false, "32-bit"},
		{BitDepth(0), false, "0-bit"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.valid, tt.d.Valid(), "%d", int(tt.d))
		assert.Equal(t, tt.str, tt.d.String())
	}
}

func TestFromFloat32Buffer(t *testing.T) {
	t.Parallel()

	buf := &goaudio.Float32Buffer{
		Format: &goaudio.Format{NumChannels: 2, SampleRate: 32000},
		Data:   []float32{0.5, -0.5, 1, -1},
	}

	b, err := FromFloat32Buffer(buf)
	require.NoError(t, err)
	assert.Equal(t, 32000, b.sampleRate)

	eng := &audiotest.FakeEngine{}
	_, err = b.withEngine(eng).Build()
	require.NoError(t, err)
	assert.Equal(t, []int32{16383, -16383, 32767, -32767}, eng.Encoder.Samples)

	_, err = FromFloat32Buffer(&goaudio.Float32Buffer{})
	require.ErrorIs(t, err, audio.ErrNoFormat)
}

func TestFromIntBuffer(t *testing.T) {
	t.Parallel()

	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: 16000},
		Data:           []int{100, -100, 32767},
		SourceBitDepth: 16,
	}

	b, err := FromIntBuffer(buf)
	require.NoError(t, err)

	eng := &audiotest.FakeEngine{}
	_, err = b.BitDepth(Depth24).withEngine(eng).Build()
	require.NoError(t, err)
	assert.Equal(t, []int32{100 << 8, -100 << 8, 32767 << 8}, eng.Encoder.Samples)
	assert.Equal(t, 16000, eng.Encoder.SampleRate)

	// An unset source depth is taken as 16 bits.
	buf.SourceBitDepth = 0
	b, err = FromIntBuffer(buf)
	require.NoError(t, err)
	assert.Equal(t, utils.IntQuantizer{SourceBitDepth: 16}, b.quantizer)

	_, err = FromIntBuffer(nil)
	require.ErrorIs(t, err, audio.ErrNoFormat)
}
