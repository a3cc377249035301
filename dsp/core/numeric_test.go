package core

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	// Knob ranges used by the drive processor.
	cases := map[string][4]float64{
		"drive inside": {12.5, 0, 24, 12.5},
		"drive below":  {-3, 0, 24, 0},
		"level above":  {1.7, 0, 1, 1},
		"tone swapped": {5, 2, 0, 2},
		"bypass exact": {1, 0, 1, 1},
	}

	for name, c := range cases {
		if got := Clamp(c[0], c[1], c[2]); got != c[3] {
			t.Errorf("%s: Clamp(%v, %v, %v) = %v, want %v", name, c[0], c[1], c[2], got, c[3])
		}
	}
}

func TestDBConversions(t *testing.T) {
	// Pre-gain at full drive.
	pre := 1.06383*24 + 11.851
	if db := LinearToDB(DBToLinear(pre)); math.Abs(db-pre) > 1e-10 {
		t.Fatalf("round trip of %v dB = %v", pre, db)
	}
	if g := DBToLinear(-6.0206); math.Abs(g-0.5) > 1e-4 {
		t.Fatalf("DBToLinear(-6.02) = %v, want 0.5", g)
	}
	if !math.IsInf(LinearToDB(0), -1) {
		t.Fatal("expected -Inf for zero")
	}
	if !math.IsNaN(LinearToDB(-1)) {
		t.Fatal("expected NaN for negative amplitude")
	}
}

func TestBelowNyquist(t *testing.T) {
	tests := []struct {
		freq, rate float64
		want       bool
	}{
		{freq: 1000, rate: 48000, want: true},
		{freq: 24000, rate: 48000, want: false},
		{freq: 2223.431, rate: 4000, want: false},
		{freq: 0, rate: 48000, want: false},
		{freq: 100, rate: math.NaN(), want: false},
		{freq: math.Inf(1), rate: 48000, want: false},
	}

	for _, tt := range tests {
		if got := BelowNyquist(tt.freq, tt.rate); got != tt.want {
			t.Errorf("BelowNyquist(%v, %v) = %v, want %v", tt.freq, tt.rate, got, tt.want)
		}
	}
}

func TestFlushDenormals(t *testing.T) {
	for _, x := range []float64{5e-324, -1.5e-323, math.SmallestNonzeroFloat64 * 1e6, 1e-31, -9e-31} {
		if got := FlushDenormals(x); got != 0 {
			t.Errorf("FlushDenormals(%g) = %g, want 0", x, got)
		}
	}

	for _, x := range []float64{1e-30, -1e-29, 0.25, -1.4} {
		if got := FlushDenormals(x); got != x {
			t.Errorf("FlushDenormals(%g) = %g, want unchanged", x, got)
		}
	}
}
