// SPDX-License-Identifier: EPL-2.0

package codec

import (
	"crypto/md5"
	"encoding/binary"
	"fmt"
	"hash"
	"io"
	"os"

	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"
	"github.com/mewkiz/flac/meta"

	"github.com/ik5/flacpbx/internal/iobuf"
)

// Vendor is written into every vorbis comment block.
const Vendor = "flacpbx"

// Limits accepted by the default engine.
const (
	MinCompressionLevel = 0
	MaxCompressionLevel = 8
	MaxChannels         = 8
	MaxSampleRate       = 1<<20 - 1
	MaxTotalSamples     = 1<<36 - 1
	MaxMetadataLength   = 1<<24 - 1
)

// blockSizeOffset is the position of the STREAMINFO minimum and maximum
// block size: after the signature and the metadata block header.
const blockSizeOffset = 8

type engine struct{}

// NewEngine returns the pure Go engine backed by github.com/mewkiz/flac.
func NewEngine() Engine { return engine{} }

func (engine) NewEncoder() (Encoder, error) {
	return &streamEncoder{
		level:    5,
		channels: 2,
		bps:      16,
		rate:     44100,
	}, nil
}

func (engine) NewMetadata(t MetadataType) (*Metadata, error) {
	switch t {
	case MetadataPadding:
		return NewMetadataObject(t, nil), nil
	case MetadataVorbisComment:
		m := NewMetadataObject(t, nil)
		m.Vendor = Vendor

		return m, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrMetadataType, t)
	}
}

type encoderState int

const (
	stateConfiguring encoderState = iota
	stateStreaming
	stateFinished
)

type streamEncoder struct {
	verify   bool
	level    int
	channels int
	bps      int
	rate     int
	estimate uint64
	metadata []*Metadata

	state     encoderState
	enc       *flac.Encoder
	out       io.WriteSeeker
	file      *os.File
	mirror    *iobuf.Buffer
	blockSize int
	pending   [][]int32
	frames    uint64
	inputSum  hash.Hash
}

func (e *streamEncoder) configurable() error {
	if e.state != stateConfiguring {
		return ErrAlreadyInitialized
	}

	return nil
}

func (e *streamEncoder) SetVerify(verify bool) error {
	if err := e.configurable(); err != nil {
		return err
	}

	e.verify = verify

	return nil
}

func (e *streamEncoder) SetCompressionLevel(level int) error {
	if err := e.configurable(); err != nil {
		return err
	}

	if level < MinCompressionLevel || level > MaxCompressionLevel {
		return fmt.Errorf("%w: %d", ErrCompressionLevel, level)
	}

	e.level = level

	return nil
}

func (e *streamEncoder) SetChannels(channels int) error {
	if err := e.configurable(); err != nil {
		return err
	}

	if channels < 1 || channels > MaxChannels {
		return fmt.Errorf("%w: %d", ErrChannels, channels)
	}

	e.channels = channels

	return nil
}

func (e *streamEncoder) SetBitsPerSample(bps int) error {
	if err := e.configurable(); err != nil {
		return err
	}

	switch bps {
	case 16, 20, 24:
		e.bps = bps
		return nil
	default:
		return fmt.Errorf("%w: %d", ErrBitsPerSample, bps)
	}
}

func (e *streamEncoder) SetSampleRate(rate int) error {
	if err := e.configurable(); err != nil {
		return err
	}

	if rate < 1 || rate > MaxSampleRate {
		return fmt.Errorf("%w: %d", ErrSampleRate, rate)
	}

	e.rate = rate

	return nil
}

func (e *streamEncoder) SetTotalSamplesEstimate(samples uint64) error {
	if err := e.configurable(); err != nil {
		return err
	}

	if samples > MaxTotalSamples {
		return fmt.Errorf("%w: %d", ErrTotalSamples, samples)
	}

	e.estimate = samples

	return nil
}

func (e *streamEncoder) SetMetadata(blocks []*Metadata) error {
	if err := e.configurable(); err != nil {
		return err
	}

	seen := make(map[MetadataType]bool, len(blocks))

	for _, m := range blocks {
		if m == nil || m.Released() {
			return ErrMetadataReleased
		}

		if m.Type == MetadataVorbisComment && seen[m.Type] {
			return fmt.Errorf("%w: %s", ErrDuplicateMetadata, m.Type)
		}

		if n := m.encodedLength(); n > MaxMetadataLength {
			return fmt.Errorf("%w: %s block of %d bytes", ErrMetadataTooLarge, m.Type, n)
		}

		seen[m.Type] = true
	}

	e.metadata = blocks

	return nil
}

func (e *streamEncoder) InitFile(path string) error {
	if err := e.configurable(); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	if err := e.start(fileWriter{f}); err != nil {
		f.Close()
		return err
	}

	e.file = f

	return nil
}

func (e *streamEncoder) InitStream(cb Callbacks) error {
	if err := e.configurable(); err != nil {
		return err
	}

	if cb.Write == nil || cb.Seek == nil || cb.Tell == nil {
		return ErrIncompleteCallback
	}

	return e.start(callbackWriter{cb: cb})
}

// blockSizeForLevel picks small blocks for the fast presets and 4096
// samples otherwise. Level 0 also turns prediction analysis off, so every
// subframe is stored verbatim; levels 3 to 8 encode identically.
func blockSizeForLevel(level int) int {
	if level <= 2 {
		return 1152
	}

	return 4096
}

func (e *streamEncoder) start(w io.WriteSeeker) error {
	e.blockSize = blockSizeForLevel(e.level)

	if e.verify {
		e.mirror = iobuf.New(0)
		e.inputSum = md5.New()
		w = &mirrorWriter{dst: w, mirror: e.mirror}
	}

	info := &meta.StreamInfo{
		BlockSizeMin:  uint16(e.blockSize),
		BlockSizeMax:  uint16(e.blockSize),
		SampleRate:    uint32(e.rate),
		NChannels:     uint8(e.channels),
		BitsPerSample: uint8(e.bps),
		NSamples:      e.estimate,
	}

	blocks := make([]*meta.Block, 0, len(e.metadata))
	for i, m := range e.metadata {
		blocks = append(blocks, m.block(i == len(e.metadata)-1))
	}

	enc, err := flac.NewEncoder(w, info, blocks...)
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	enc.EnablePredictionAnalysis(e.level > 0)

	e.enc = enc
	e.out = w
	e.pending = make([][]int32, e.channels)

	for ch := range e.pending {
		e.pending[ch] = make([]int32, 0, e.blockSize)
	}

	e.state = stateStreaming

	return nil
}

func (e *streamEncoder) ProcessInterleaved(samples []int32, frames int) error {
	switch e.state {
	case stateConfiguring:
		return ErrNotInitialized
	case stateFinished:
		return ErrFinished
	}

	if frames < 0 || frames*e.channels > len(samples) {
		return fmt.Errorf("%w: %d frames, %d samples", ErrFrameCount, frames, len(samples))
	}

	block := samples[:frames*e.channels]
	if e.inputSum != nil {
		writeSampleBytes(e.inputSum, block, e.bps)
	}

	for i := 0; i < frames; i++ {
		base := i * e.channels
		for ch := range e.channels {
			e.pending[ch] = append(e.pending[ch], block[base+ch])
		}

		if len(e.pending[0]) == e.blockSize {
			if err := e.writeFrame(); err != nil {
				return err
			}
		}
	}

	return nil
}

func (e *streamEncoder) Finish() error {
	switch e.state {
	case stateConfiguring:
		return ErrNotInitialized
	case stateFinished:
		return ErrFinished
	}

	e.state = stateFinished

	err := e.writeFrame()
	if err == nil {
		err = e.close()
	}

	if e.file != nil {
		if cerr := e.file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w", cerr)
		}
	}

	if err != nil {
		return err
	}

	if e.verify {
		return e.verifyOutput()
	}

	return nil
}

// close finalizes STREAMINFO and leaves the output cursor at the end of the
// stream.
func (e *streamEncoder) close() error {
	end, err := e.out.Seek(0, io.SeekCurrent)
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	if err := e.enc.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	// The encoder records the shortest frame as the minimum block size,
	// including the final one. FLAC excludes the final frame from that
	// range and decoders reject values below 16.
	var sizes [4]byte
	binary.BigEndian.PutUint16(sizes[0:], uint16(e.blockSize))
	binary.BigEndian.PutUint16(sizes[2:], uint16(e.blockSize))

	if _, err := e.out.Seek(blockSizeOffset, io.SeekStart); err != nil {
		return fmt.Errorf("%w", err)
	}

	if _, err := e.out.Write(sizes[:]); err != nil {
		return fmt.Errorf("%w", err)
	}

	if _, err := e.out.Seek(end, io.SeekStart); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

// headerSampleRate is the rate written to frame headers. Rates the header
// cannot express are stored as 0, which defers to STREAMINFO.
func headerSampleRate(rate int) uint32 {
	switch {
	case rate <= 65535,
		rate <= 255000 && rate%1000 == 0,
		rate <= 655350 && rate%10 == 0:
		return uint32(rate)
	default:
		return 0
	}
}

// writeFrame encodes whatever is pending as one frame.
func (e *streamEncoder) writeFrame() error {
	n := len(e.pending[0])
	if n == 0 {
		return nil
	}

	subframes := make([]*frame.Subframe, e.channels)
	for ch := range e.channels {
		samples := make([]int32, n)
		copy(samples, e.pending[ch])

		pred := frame.PredVerbatim
		if e.level > 0 && isConstant(samples) {
			pred = frame.PredConstant
		}

		subframes[ch] = &frame.Subframe{
			SubHeader: frame.SubHeader{Pred: pred},
			Samples:   samples,
			NSamples:  n,
		}

		e.pending[ch] = e.pending[ch][:0]
	}

	f := &frame.Frame{
		Header: frame.Header{
			HasFixedBlockSize: true,
			Num:               e.frames,
			BlockSize:         uint16(n),
			SampleRate:        headerSampleRate(e.rate),
			Channels:          frame.Channels(e.channels - 1),
			BitsPerSample:     uint8(e.bps),
		},
		Subframes: subframes,
	}

	if err := e.enc.WriteFrame(f); err != nil {
		return fmt.Errorf("writing frame %d: %w", e.frames, err)
	}

	e.frames++

	return nil
}

func isConstant(samples []int32) bool {
	for _, s := range samples[1:] {
		if s != samples[0] {
			return false
		}
	}

	return true
}

// block converts m into the container representation. last marks the final
// metadata block before the audio frames.
func (m *Metadata) block(last bool) *meta.Block {
	hdr := meta.Header{
		IsLast: last,
		Length: int64(m.encodedLength()),
	}

	if m.Type == MetadataPadding {
		hdr.Type = meta.TypePadding
		return &meta.Block{Header: hdr}
	}

	tags := make([][2]string, len(m.Comments))
	for i, c := range m.Comments {
		tags[i] = [2]string{c.Name, c.Value}
	}

	hdr.Type = meta.TypeVorbisComment

	return &meta.Block{
		Header: hdr,
		Body:   &meta.VorbisComment{Vendor: m.Vendor, Tags: tags},
	}
}
