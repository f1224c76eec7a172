package formant_test

import (
	"fmt"

	"github.com/cwbudde/algo-synthfilter/dsp/core"
	"github.com/cwbudde/algo-synthfilter/dsp/filter/formant"
	"github.com/cwbudde/algo-synthfilter/dsp/filter/params"
)

func ExampleFilter_SetPosition() {
	env := core.NewEngine(core.WithSeed(1))
	p := params.New(4, 64, 64, core.RandomFunc(env.RandomUint32))
	p.Update(func(p *params.Params) {
		p.NumFormants = 1
		p.FormantSlowness = 0
		p.SequenceSize = 2
		p.SequenceStretch = 32
		p.Vowels[0].Formants[0] = params.Formant{Freq: 32, Amp: 127, Q: 64}
		p.Vowels[1].Formants[0] = params.Formant{Freq: 96, Amp: 127, Q: 64}
	})

	f := formant.New(env, p)
	for _, pos := range []float64{0, 0.25, 0.5, 0.75} {
		f.SetPosition(pos)
		fmt.Printf("pos %.2f: %.0f Hz\n", pos, f.Formants()[0].Freq)
	}
	// Output:
	// pos 0.00: 2602 Hz
	// pos 0.25: 1506 Hz
	// pos 0.50: 410 Hz
	// pos 0.75: 1506 Hz
}
