package synth_test

import (
	"fmt"

	"github.com/cwbudde/algo-synthfilter/dsp/core"
	"github.com/cwbudde/algo-synthfilter/dsp/filter/params"
	"github.com/cwbudde/algo-synthfilter/dsp/filter/synth"
)

func ExampleFilter() {
	env := core.NewEngine(core.WithSampleRate(44100), core.WithBlockSize(64), core.WithSeed(7))
	p := params.New(2, 64, 64, core.RandomFunc(env.RandomUint32))

	f := synth.New(env, p)

	// one octave above the base frequency
	pitch := f.BasePitch(440) + 1
	f.SetFrequency(f.RealFrequency(pitch))

	buf := make([]float64, env.BlockSize())
	buf[0] = 1
	f.Process(buf)

	fmt.Printf("%v filter at %.0f Hz\n", f.Category(), f.RealFrequency(pitch))
	// Output:
	// analog filter at 2000 Hz
}
