// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"testing"

	goaudio "github.com/go-audio/audio"
)

func TestFromFloat32Buffer(t *testing.T) {
	t.Parallel()

	buf := &goaudio.Float32Buffer{
		Format: &goaudio.Format{NumChannels: 2, SampleRate: 44100},
		Data:   []float32{0.1, -0.1, 0.2, -0.2},
	}

	v, err := FromFloat32Buffer(buf)
	if err != nil {
		t.Fatalf("FromFloat32Buffer() error = %v", err)
	}

	if v.Channels() != 2 || v.SamplesPerChannel() != 2 {
		t.Errorf("shape = %d ch x %d frames, want 2 x 2", v.Channels(), v.SamplesPerChannel())
	}

	// The view shares the buffer's backing array.
	buf.Data[3] = 0.9
	if s, _ := v.At(1, 1); s != 0.9 {
		t.Errorf("At(1, 1) = %v, want 0.9", s)
	}
}

func TestFromIntBuffer(t *testing.T) {
	t.Parallel()

	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: 8000},
		Data:           []int{1, 2, 3},
		SourceBitDepth: 16,
	}

	v, err := FromIntBuffer(buf)
	if err != nil {
		t.Fatalf("FromIntBuffer() error = %v", err)
	}

	if s, ok := v.At(0, 2); !ok || s != 3 {
		t.Errorf("At(0, 2) = %d, %v, want 3, true", s, ok)
	}
}

func TestGoAudio_NoFormat(t *testing.T) {
	t.Parallel()

	if _, err := FromFloat32Buffer(nil); !errors.Is(err, ErrNoFormat) {
		t.Errorf("FromFloat32Buffer(nil) error = %v, want ErrNoFormat", err)
	}

	if _, err := FromFloat32Buffer(&goaudio.Float32Buffer{Data: []float32{0}}); !errors.Is(err, ErrNoFormat) {
		t.Errorf("FromFloat32Buffer(no format) error = %v, want ErrNoFormat", err)
	}

	if _, err := FromIntBuffer(&goaudio.IntBuffer{}); !errors.Is(err, ErrNoFormat) {
		t.Errorf("FromIntBuffer(no format) error = %v, want ErrNoFormat", err)
	}
}
