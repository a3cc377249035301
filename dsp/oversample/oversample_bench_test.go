package oversample

import (
	"testing"

	"github.com/cwbudde/algo-drive/internal/testutil"
)

func BenchmarkRoundTrip(b *testing.B) {
	for _, f := range []Filter{FilterHalfBandPolyphaseIIR, FilterHalfBandFIR} {
		b.Run(f.String(), func(b *testing.B) {
			o, err := New(1, 2, WithFilter(f))
			if err != nil {
				b.Fatal(err)
			}

			if err := o.Prepare(512); err != nil {
				b.Fatal(err)
			}

			in := testutil.DeterministicNoise(1, 1, 512)
			out := make([]float64, 512)

			b.SetBytes(int64(len(in) * 8))
			b.ResetTimer()

			for b.Loop() {
				o.ProcessUp(0, in)
				o.ProcessDown(0, out)
			}
		})
	}
}
