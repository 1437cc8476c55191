// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"go.uber.org/zap"

	"github.com/ik5/flacpbx/internal/codec"
	"github.com/ik5/flacpbx/utils"
)

// BlockFrames is the number of frames per channel handed to the codec in
// one call. The last block holds whatever remains.
const BlockFrames = 1024

type phase int

const (
	phaseUnconfigured phase = iota
	phaseValidated
	phaseCodecConfigured
	phaseStreaming
	phaseFinished
	phaseFailed
)

func (p phase) String() string {
	switch p {
	case phaseUnconfigured:
		return "unconfigured"
	case phaseValidated:
		return "validated"
	case phaseCodecConfigured:
		return "codec_configured"
	case phaseStreaming:
		return "streaming"
	case phaseFinished:
		return "finished"
	case phaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// encodeRun is the state of one terminal call on a Builder.
type encodeRun[S any] struct {
	b      Builder[S]
	log    *zap.Logger
	phase  phase
	meta   metadataSet
	sink   sink
	enc    codec.Encoder
	blocks int
}

func (b Builder[S]) run(path string) (out []byte, err error) {
	r := &encodeRun[S]{b: b, log: b.logger}

	defer r.meta.release()
	defer func() {
		if err != nil {
			r.log.Warn("flac encode failed", zap.Stringer("phase", r.phase), zap.Error(err))
			r.enter(phaseFailed)
		}
	}()

	if err := r.validate(path); err != nil {
		return nil, err
	}

	if err := r.configure(); err != nil {
		return nil, err
	}

	if err := r.stream(); err != nil {
		return nil, err
	}

	if err := r.enc.Finish(); err != nil {
		return nil, kindError(ErrEncoding, err)
	}

	r.enter(phaseFinished)

	out = r.sink.bytes()
	r.log.Info("flac encode completed",
		zap.Stringer("output", r.sink),
		zap.Int("bytes", len(out)),
		zap.Int("frames", r.b.input.SamplesPerChannel()),
		zap.Int("channels", r.b.input.Channels()),
		zap.Stringer("bit_depth", r.b.bitDepth),
		zap.Int("blocks", r.blocks),
	)

	return out, nil
}

func (r *encodeRun[S]) enter(p phase) {
	r.log.Debug("flac encode phase", zap.Stringer("from", r.phase), zap.Stringer("to", p))
	r.phase = p
}

// validate checks the input and the output target. Nothing here touches
// the engine.
func (r *encodeRun[S]) validate(path string) error {
	in := r.b.input
	if in == nil {
		return ErrNoData
	}

	if !in.ChannelSizesMatch() {
		return ErrMismatchedSampleCountPerChannels
	}

	if in.SamplesPerChannel() == 0 {
		return ErrNoData
	}

	if !r.b.bitDepth.Valid() {
		return ErrInvalidBitDepth
	}

	if r.b.quantizer == nil {
		return ErrInvalidSampleType
	}

	s, err := newSink(path)
	if err != nil {
		return err
	}

	r.sink = s
	r.enter(phaseValidated)

	return nil
}

// configure allocates the encoder, applies every stream parameter and the
// metadata blocks, then initializes the encoder on the sink.
func (r *encodeRun[S]) configure() error {
	enc, err := r.b.engine.NewEncoder()
	if err != nil {
		return kindError(ErrInitialization, err)
	}

	r.enc = enc
	in := r.b.input

	steps := []struct {
		kind error
		set  func() error
	}{
		{ErrVerification, func() error { return enc.SetVerify(r.b.verify) }},
		{ErrInvalidCompressionLevel, func() error { return enc.SetCompressionLevel(r.b.compressionLevel) }},
		{ErrInvalidChannelCount, func() error { return enc.SetChannels(in.Channels()) }},
		{ErrInvalidSampleType, func() error { return enc.SetBitsPerSample(int(r.b.bitDepth)) }},
		{ErrInvalidSampleRate, func() error { return enc.SetSampleRate(r.b.sampleRate) }},
		{ErrTooManyOrTooFewSamples, func() error {
			return enc.SetTotalSamplesEstimate(uint64(in.SamplesPerChannel()))
		}},
	}

	for _, step := range steps {
		if err := step.set(); err != nil {
			return kindError(step.kind, err)
		}
	}

	if err := r.meta.assemble(r.b.engine, r.b.comments, r.b.padding); err != nil {
		return err
	}

	if err := enc.SetMetadata(r.meta.blocks); err != nil {
		return kindError(ErrFailedToSetMetadata, err)
	}

	if err := r.sink.init(enc); err != nil {
		return kindError(ErrFailedToInitializeEncoder, err)
	}

	r.enter(phaseCodecConfigured)

	return nil
}

// stream quantizes and submits the input in blocks of BlockFrames frames,
// frame major, reading only frames that exist.
func (r *encodeRun[S]) stream() error {
	r.enter(phaseStreaming)

	in := r.b.input
	channels := in.Channels()
	frames := in.SamplesPerChannel()
	bits := int(r.b.bitDepth)
	buf := make([]int32, min(BlockFrames, frames)*channels)

	for cursor := 0; cursor < frames; cursor += BlockFrames {
		n := min(BlockFrames, frames-cursor)

		for i := range n {
			base := i * channels
			for ch := range channels {
				s, _ := in.At(ch, cursor+i)
				buf[base+ch] = utils.Quantize(r.b.quantizer, s, bits)
			}
		}

		if err := r.enc.ProcessInterleaved(buf[:n*channels], n); err != nil {
			// Finish still closes an output file; the stream is invalid
			// either way.
			_ = r.enc.Finish()

			return kindError(ErrEncoding, err)
		}

		r.blocks++
	}

	r.log.Debug("flac encode streamed", zap.Int("blocks", r.blocks), zap.Int("frames", frames))

	return nil
}
