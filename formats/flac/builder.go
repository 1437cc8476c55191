// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"fmt"
	"slices"
	"strconv"

	goaudio "github.com/go-audio/audio"
	"go.uber.org/zap"

	"github.com/ik5/flacpbx/audio"
	"github.com/ik5/flacpbx/internal/codec"
	"github.com/ik5/flacpbx/utils"
)

// BitDepth is the size of one quantized sample.
type BitDepth int

const (
	Depth16 BitDepth = 16
	Depth20 BitDepth = 20
	Depth24 BitDepth = 24
)

// Valid reports whether d is one of the supported depths.
func (d BitDepth) Valid() bool {
	switch d {
	case Depth16, Depth20, Depth24:
		return true
	default:
		return false
	}
}

func (d BitDepth) String() string {
	return strconv.Itoa(int(d)) + "-bit"
}

// Defaults applied by every constructor.
const (
	DefaultBitDepth         = Depth16
	DefaultCompressionLevel = 5
	DefaultPadding          = 500
)

// Comment is one tag pair. Keys may repeat.
type Comment struct {
	Key   string `yaml:"key"`
	Value string `yaml:"value"`
}

// Builder configures one FLAC encode. Every setter returns an updated copy,
// so a Builder can be shared as a template. The input samples are borrowed,
// never copied, and must not change until the encode returns.
type Builder[S any] struct {
	input            audio.Input[S]
	quantizer        utils.Quantizer[S]
	sampleRate       int
	bitDepth         BitDepth
	compressionLevel int
	padding          uint32
	comments         []Comment
	outputPath       string
	verify           bool
	logger           *zap.Logger
	engine           codec.Engine
}

// New returns a Builder over any input layout with an explicit quantizer.
func New[S any](input audio.Input[S], sampleRate int, q utils.Quantizer[S]) Builder[S] {
	return Builder[S]{
		input:            input,
		quantizer:        q,
		sampleRate:       sampleRate,
		bitDepth:         DefaultBitDepth,
		compressionLevel: DefaultCompressionLevel,
		padding:          DefaultPadding,
		verify:           true,
		logger:           zap.NewNop(),
		engine:           codec.NewEngine(),
	}
}

// FromPlanar encodes one sample slice per channel.
func FromPlanar[F utils.Float](data [][]F, sampleRate int) Builder[F] {
	return New[F](audio.Planar[F](data), sampleRate, utils.FloatQuantizer[F]{})
}

// FromInterleaved encodes frames stored back to back (e.g. LRLRLR).
func FromInterleaved[F utils.Float](data []F, channels, sampleRate int) Builder[F] {
	return New[F](audio.Interleaved[F]{Data: data, NumChannels: channels}, sampleRate, utils.FloatQuantizer[F]{})
}

// FromPlanarWith is FromPlanar for any sample type q can quantize.
func FromPlanarWith[S any](data [][]S, sampleRate int, q utils.Quantizer[S]) Builder[S] {
	return New[S](audio.Planar[S](data), sampleRate, q)
}

// FromInterleavedWith is FromInterleaved for any sample type q can quantize.
func FromInterleavedWith[S any](data []S, channels, sampleRate int, q utils.Quantizer[S]) Builder[S] {
	return New[S](audio.Interleaved[S]{Data: data, NumChannels: channels}, sampleRate, q)
}

// FromFloat32Buffer encodes a go-audio float buffer at its own sample rate.
func FromFloat32Buffer(buf *goaudio.Float32Buffer) (Builder[float32], error) {
	in, err := audio.FromFloat32Buffer(buf)
	if err != nil {
		return Builder[float32]{}, fmt.Errorf("%w", err)
	}

	return New[float32](in, buf.Format.SampleRate, utils.FloatQuantizer[float32]{}), nil
}

// FromIntBuffer encodes a go-audio integer buffer. Samples are rescaled from
// buf.SourceBitDepth, or from 16 bits when it is unset.
func FromIntBuffer(buf *goaudio.IntBuffer) (Builder[int], error) {
	in, err := audio.FromIntBuffer(buf)
	if err != nil {
		return Builder[int]{}, fmt.Errorf("%w", err)
	}

	depth := buf.SourceBitDepth
	if depth == 0 {
		depth = 16
	}

	return New[int](in, buf.Format.SampleRate, utils.IntQuantizer{SourceBitDepth: depth}), nil
}

// CompressionLevel is passed to the codec as is; it accepts 0 to 8. The
// default engine stores level 0 verbatim in 1152 sample blocks, uses fixed
// prediction on 1152 sample blocks for levels 1 and 2, and on 4096 sample
// blocks for levels 3 to 8, which all produce the same output.
func (b Builder[S]) CompressionLevel(level int) Builder[S] {
	b.compressionLevel = level
	return b
}

func (b Builder[S]) BitDepth(d BitDepth) Builder[S] {
	b.bitDepth = d
	return b
}

// Padding sets the size in bytes of the padding block. 0 still writes an
// empty block.
func (b Builder[S]) Padding(bytes uint32) Builder[S] {
	b.padding = bytes
	return b
}

func (b Builder[S]) Artist(artist string) Builder[S] { return b.Comment("ARTIST", artist) }
func (b Builder[S]) Album(album string) Builder[S]   { return b.Comment("ALBUM", album) }
func (b Builder[S]) Title(title string) Builder[S]   { return b.Comment("TITLE", title) }

func (b Builder[S]) TrackNumber(n int) Builder[S] {
	return b.Comment("TRACKNUMBER", strconv.Itoa(n))
}

func (b Builder[S]) Year(year int) Builder[S] {
	return b.Comment("YEAR", strconv.Itoa(year))
}

// Comment appends a tag pair. Keys are validated when the encode starts.
func (b Builder[S]) Comment(key, value string) Builder[S] {
	b.comments = append(slices.Clip(b.comments), Comment{Key: key, Value: value})
	return b
}

// OutputPath makes Encode write to path instead of returning the bytes.
// An empty path restores buffer output.
func (b Builder[S]) OutputPath(path string) Builder[S] {
	b.outputPath = path
	return b
}

// Verify turns the codec's decode-and-compare check on or off.
func (b Builder[S]) Verify(verify bool) Builder[S] {
	b.verify = verify
	return b
}

// Logger sets the logger used for the encode. nil restores the no-op logger.
func (b Builder[S]) Logger(l *zap.Logger) Builder[S] {
	if l == nil {
		l = zap.NewNop()
	}

	b.logger = l

	return b
}

func (b Builder[S]) withEngine(e codec.Engine) Builder[S] {
	b.engine = e
	return b
}

// Build encodes into memory and returns the FLAC stream.
func (b Builder[S]) Build() ([]byte, error) {
	return b.run("")
}

// WriteFile encodes into the file at path, creating or truncating it.
func (b Builder[S]) WriteFile(path string) error {
	_, err := b.run(path)
	return err
}

// Encode writes to OutputPath when one is set and returns nil bytes, or
// builds into memory otherwise.
func (b Builder[S]) Encode() ([]byte, error) {
	if b.outputPath != "" {
		return nil, b.WriteFile(b.outputPath)
	}

	return b.Build()
}
