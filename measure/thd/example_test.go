package thd_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-drive/measure/thd"
)

func ExampleAnalyzeSignal() {
	const (
		fs = 48000.0
		f0 = 1031.25
	)

	signal := make([]float64, 8192)
	for i := range signal {
		x := 2 * math.Pi * f0 * float64(i) / fs
		signal[i] = math.Sin(x) + 0.01*math.Sin(3*x)
	}

	res, err := thd.AnalyzeSignal(signal, thd.Config{SampleRate: fs, FundamentalFreq: f0})
	if err != nil {
		panic(err)
	}

	fmt.Printf("level=%.3f thd=%.1f dB\n", res.FundamentalLevel, res.THDdB)
	// Output: level=1.000 thd=-40.0 dB
}
