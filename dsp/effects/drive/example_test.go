package drive_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-drive/dsp/effects/drive"
)

func ExampleProcessor() {
	p, err := drive.NewProcessor(drive.WithLayout(drive.Mono))
	if err != nil {
		panic(err)
	}

	if err := p.Prepare(48000, 512); err != nil {
		panic(err)
	}

	if err := p.Params().Set(drive.ParamDrive, 18); err != nil {
		panic(err)
	}

	block := [][]float64{make([]float64, 512)}
	for i := range block[0] {
		block[0][i] = 0.5 * math.Sin(2*math.Pi*220*float64(i)/48000)
	}

	p.Process(block)

	fmt.Printf("factor=%d pre-gain=%.3f dB\n", p.OversamplingFactor(), drive.PreGainDB(p.Params().Get(drive.ParamDrive)))
	// Output: factor=4 pre-gain=31.000 dB
}

func ExamplePreGainDB() {
	for _, d := range []float64{0, 12, 24} {
		fmt.Printf("%.2f\n", drive.PreGainDB(d))
	}
	// Output:
	// 11.85
	// 24.62
	// 37.38
}
