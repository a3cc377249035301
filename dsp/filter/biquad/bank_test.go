package biquad

import "testing"

func TestBankChannelsAreIndependent(t *testing.T) {
	c := Coefficients{B0: 0.5, B1: 0.5, A1: -0.5}
	b := NewBank(2, c)

	left := []float64{1, 0, 0, 0}
	right := []float64{0, 0, 0, 0}

	b.ProcessBlock(0, left)
	b.ProcessBlock(1, right)

	for i, v := range right {
		if v != 0 {
			t.Fatalf("right[%d] = %v, want 0 (state leaked across channels)", i, v)
		}
	}

	ref := NewSection(c)
	for i, v := range []float64{1, 0, 0, 0} {
		if want := ref.ProcessSample(v); left[i] != want {
			t.Fatalf("left[%d] = %v, want %v", i, left[i], want)
		}
	}
}

func TestBankSetCoefficientsKeepsState(t *testing.T) {
	b := NewBank(1, Coefficients{B0: 1, B1: 1})
	b.ProcessBlock(0, []float64{1})
	before := b.Section(0).State()

	b.SetCoefficients(Coefficients{B0: 0.5})
	if b.Section(0).State() != before {
		t.Fatal("SetCoefficients cleared state")
	}
	if b.Coefficients().B0 != 0.5 {
		t.Fatalf("coefficients not applied: %+v", b.Coefficients())
	}
}

func TestBankResize(t *testing.T) {
	b := NewBank(1, Identity())
	b.ProcessBlock(0, []float64{1})

	b.Resize(1)
	if b.Channels() != 1 {
		t.Fatalf("Channels() = %d, want 1", b.Channels())
	}

	b.Resize(3)
	if b.Channels() != 3 {
		t.Fatalf("Channels() = %d, want 3", b.Channels())
	}
	if b.Section(2).Coefficients != Identity() {
		t.Fatal("new channel did not inherit coefficients")
	}

	// out-of-range channels are ignored
	b.ProcessBlock(5, []float64{1})
}
