package stage

import (
	"math"
	"testing"
)

func TestGain(t *testing.T) {
	g := NewGain()
	if g.GainLinear() != 1 {
		t.Fatalf("default gain = %v", g.GainLinear())
	}

	g.SetGainDecibels(20)
	if math.Abs(g.GainLinear()-10) > 1e-12 {
		t.Fatalf("20 dB = %v linear, want 10", g.GainLinear())
	}
	if math.Abs(g.GainDecibels()-20) > 1e-12 {
		t.Fatalf("GainDecibels = %v, want 20", g.GainDecibels())
	}

	g.SetGainLinear(0.5)

	block := [][]float64{{1, -2, 4}, {0.25}}
	g.Process(block)

	if block[0][0] != 0.5 || block[0][1] != -1 || block[0][2] != 2 || block[1][0] != 0.125 {
		t.Fatalf("scaled block = %v", block)
	}
}

func TestUnityGainIsBitExact(t *testing.T) {
	g := NewGain()
	buf := []float64{0.1, -0.3, 1e-300}
	g.ProcessChannel(buf)

	if buf[0] != 0.1 || buf[1] != -0.3 || buf[2] != 1e-300 {
		t.Fatalf("unity gain changed samples: %v", buf)
	}
}
