package core_test

import (
	"fmt"

	"github.com/cwbudde/algo-drive/dsp/core"
)

func ExampleNewPlanar() {
	block := core.NewPlanar(2, 3)
	core.CopyInto(block[0], []float64{1, 2, 3})
	core.Zero(block[0][:1])

	fmt.Println(block, core.Frames(block))

	// Output:
	// [[0 2 3] [0 0 0]] 3
}
