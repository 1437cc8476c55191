// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"
	"testing"
)

func TestCubicInterpolate_Endpoints(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		y0, y1, y2, y3 float64
	}{
		{"flat", 0.5, 0.5, 0.5, 0.5},
		{"ramp", -1, -0.5, 0, 0.5},
		{"peak", 0, 1, 0, -1},
		{"mixed", 0.3, -0.7, 0.9, -0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := CubicInterpolate(tt.y0, tt.y1, tt.y2, tt.y3, 0); got != tt.y1 {
				t.Errorf("t=0: got %v, want %v", got, tt.y1)
			}

			if got := CubicInterpolate(tt.y0, tt.y1, tt.y2, tt.y3, 1); math.Abs(got-tt.y2) > 1e-12 {
				t.Errorf("t=1: got %v, want %v", got, tt.y2)
			}
		})
	}
}

func TestCubicInterpolate_Linear(t *testing.T) {
	t.Parallel()

	// A straight line stays straight.
	for _, x := range []float32{0, 0.25, 0.5, 0.75} {
		got := CubicInterpolate[float32](0, 1, 2, 3, x)
		if want := 1 + x; math.Abs(float64(got-want)) > 1e-6 {
			t.Errorf("t=%v: got %v, want %v", x, got, want)
		}
	}
}

func TestCubicInterpolate_Midpoint(t *testing.T) {
	t.Parallel()

	got := CubicInterpolate(0.0, 1.0, 1.0, 0.0, 0.5)
	if want := 1.125; math.Abs(got-want) > 1e-12 {
		t.Errorf("got %v, want %v", got, want)
	}
}

func BenchmarkCubicInterpolate(b *testing.B) {
	var sink float32
	for i := 0; i < b.N; i++ {
		sink += CubicInterpolate[float32](0.1, 0.2, 0.3, 0.4, 0.5)
	}

	_ = sink
}
