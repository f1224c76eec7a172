package svf_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-synthfilter/dsp/core"
	"github.com/cwbudde/algo-synthfilter/dsp/filter/svf"
)

func ExampleCompute() {
	c := svf.Compute(1000, 1, 0, 48000)
	fmt.Printf("f=%.4f q=%.4f qsqrt=%.4f\n", c.F, c.Q, c.QSqrt)
	// Output:
	// f=0.0833 q=0.5000 qsqrt=0.7071
}

func ExampleFilter_Process() {
	env := core.NewEngine(core.WithSampleRate(48000))
	f := svf.New(env, svf.TypeHighpass, 1000, 1, 0)

	dc := make([]float64, 4800)
	for i := range dc {
		dc[i] = 1
	}
	f.Process(dc)

	fmt.Printf("%v output after 100 ms of DC: %.4f\n", f.Type(), math.Abs(dc[len(dc)-1]))
	// Output:
	// high output after 100 ms of DC: 0.0000
}
