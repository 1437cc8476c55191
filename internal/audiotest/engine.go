// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ik5/flacpbx/internal/codec"
)

// ErrInjected is returned by the step named in FakeEngine.FailOn.
var ErrInjected = errors.New("audiotest: injected failure")

// Step names recorded by FakeEngine and accepted by FailOn.
const (
	StepNewEncoder     = "NewEncoder"
	StepNewMetadata    = "NewMetadata"
	StepSetVerify      = "SetVerify"
	StepSetCompression = "SetCompressionLevel"
	StepSetChannels    = "SetChannels"
	StepSetBits        = "SetBitsPerSample"
	StepSetSampleRate  = "SetSampleRate"
	StepSetEstimate    = "SetTotalSamplesEstimate"
	StepSetMetadata    = "SetMetadata"
	StepInitFile       = "InitFile"
	StepInitStream     = "InitStream"
	StepProcess        = "ProcessInterleaved"
	StepFinish         = "Finish"

	// StepAppendComment makes NewMetadata hand out a padding typed block
	// when a comment block is requested, so appending to it fails.
	StepAppendComment = "AppendComment"
)

// FakeEngine is a scripted codec.Engine. It records every call, keeps every
// metadata object it hands out, and writes a small stand-in stream through
// the sink so output plumbing can be checked without a real encoder.
type FakeEngine struct {
	// FailOn names the step that returns ErrInjected.
	FailOn    string
	// FailAfter lets that many calls of FailOn succeed first.
	FailAfter int

	Calls    []string
	Metadata []*codec.Metadata
	Encoder  *FakeEncoder

	hits int
}

func (f *FakeEngine) step(name string) error {
	f.Calls = append(f.Calls, name)
	if name != f.FailOn {
		return nil
	}

	f.hits++
	if f.hits <= f.FailAfter {
		return nil
	}

	return fmt.Errorf("%w: %s", ErrInjected, name)
}

// Called reports whether step name was recorded.
func (f *FakeEngine) Called(name string) bool {
	for _, c := range f.Calls {
		if c == name {
			return true
		}
	}

	return false
}

// AllReleased reports whether every handed out metadata object was released.
func (f *FakeEngine) AllReleased() bool {
	for _, m := range f.Metadata {
		if !m.Released() {
			return false
		}
	}

	return true
}

// Releases counts Release calls that reached the engine.
func (f *FakeEngine) Releases() int {
	n := 0
	for _, m := range f.Metadata {
		if m.Released() {
			n++
		}
	}

	return n
}

func (f *FakeEngine) NewEncoder() (codec.Encoder, error) {
	if err := f.step(StepNewEncoder); err != nil {
		return nil, err
	}

	f.Encoder = &FakeEncoder{engine: f}

	return f.Encoder, nil
}

func (f *FakeEngine) NewMetadata(t codec.MetadataType) (*codec.Metadata, error) {
	if err := f.step(StepNewMetadata); err != nil {
		return nil, err
	}

	if t == codec.MetadataVorbisComment && f.FailOn == StepAppendComment {
		t = codec.MetadataPadding
	}

	m := codec.NewMetadataObject(t, nil)
	f.Metadata = append(f.Metadata, m)

	return m, nil
}

// FakeEncoder captures the configuration and samples it receives.
type FakeEncoder struct {
	engine *FakeEngine

	Verify           bool
	CompressionLevel int
	Channels         int
	BitsPerSample    int
	SampleRate       int
	Estimate         uint64
	Blocks           []*codec.Metadata
	Path             string

	// BlockFrames holds the frame count of each ProcessInterleaved call.
	BlockFrames []int
	Samples     []int32
	Finished    bool

	cb     codec.Callbacks
	file   *os.File
	frames uint32
}

func (e *FakeEncoder) SetVerify(v bool) error {
	e.Verify = v
	return e.engine.step(StepSetVerify)
}

func (e *FakeEncoder) SetCompressionLevel(level int) error {
	if err := e.engine.step(StepSetCompression); err != nil {
		return err
	}

	if level < codec.MinCompressionLevel || level > codec.MaxCompressionLevel {
		return fmt.Errorf("%w: %d", codec.ErrCompressionLevel, level)
	}

	e.CompressionLevel = level

	return nil
}

func (e *FakeEncoder) SetChannels(n int) error {
	e.Channels = n
	return e.engine.step(StepSetChannels)
}

func (e *FakeEncoder) SetBitsPerSample(bps int) error {
	e.BitsPerSample = bps
	return e.engine.step(StepSetBits)
}

func (e *FakeEncoder) SetSampleRate(rate int) error {
	e.SampleRate = rate
	return e.engine.step(StepSetSampleRate)
}

func (e *FakeEncoder) SetTotalSamplesEstimate(n uint64) error {
	e.Estimate = n
	return e.engine.step(StepSetEstimate)
}

func (e *FakeEncoder) SetMetadata(blocks []*codec.Metadata) error {
	e.Blocks = blocks
	return e.engine.step(StepSetMetadata)
}

func (e *FakeEncoder) InitFile(path string) error {
	e.Path = path
	if err := e.engine.step(StepInitFile); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	e.file = f
	e.cb = codec.Callbacks{
		Write: func(p []byte) error {
			_, err := f.Write(p)
			return err
		},
		Seek: func(off int64) error {
			_, err := f.Seek(off, io.SeekStart)
			return err
		},
		Tell: func() (int64, error) {
			return f.Seek(0, io.SeekCurrent)
		},
	}

	return e.writeHeader()
}

func (e *FakeEncoder) InitStream(cb codec.Callbacks) error {
	if err := e.engine.step(StepInitStream); err != nil {
		return err
	}

	e.cb = cb

	return e.writeHeader()
}

// writeHeader emits the signature and a zeroed frame counter that Finish
// backpatches.
func (e *FakeEncoder) writeHeader() error {
	return e.cb.Write([]byte{'f', 'L', 'a', 'C', 0, 0, 0, 0})
}

func (e *FakeEncoder) ProcessInterleaved(samples []int32, frames int) error {
	e.BlockFrames = append(e.BlockFrames, frames)
	if err := e.engine.step(StepProcess); err != nil {
		return err
	}

	block := samples[:frames*e.Channels]
	e.Samples = append(e.Samples, block...)
	e.frames += uint32(frames)

	buf := make([]byte, 4*len(block))
	for i, s := range block {
		binary.BigEndian.PutUint32(buf[4*i:], uint32(s))
	}

	return e.cb.Write(buf)
}

func (e *FakeEncoder) Finish() error {
	if err := e.engine.step(StepFinish); err != nil {
		e.closeFile()
		return err
	}

	end, err := e.cb.Tell()
	if err == nil {
		err = e.cb.Seek(4)
	}

	if err == nil {
		var n [4]byte
		binary.BigEndian.PutUint32(n[:], e.frames)
		err = e.cb.Write(n[:])
	}

	if err == nil {
		err = e.cb.Seek(end)
	}

	if cerr := e.closeFile(); err == nil {
		err = cerr
	}

	e.Finished = err == nil

	return err
}

func (e *FakeEncoder) closeFile() error {
	if e.file == nil {
		return nil
	}

	err := e.file.Close()
	e.file = nil

	return err
}
