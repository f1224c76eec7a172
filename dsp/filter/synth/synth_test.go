package synth

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/cwbudde/algo-synthfilter/dsp/core"
	"github.com/cwbudde/algo-synthfilter/dsp/filter/analog"
	"github.com/cwbudde/algo-synthfilter/dsp/filter/formant"
	"github.com/cwbudde/algo-synthfilter/dsp/filter/params"
	"github.com/cwbudde/algo-synthfilter/dsp/filter/svf"
	"github.com/cwbudde/algo-synthfilter/internal/testutil"
)

func newEnv() core.Env {
	return core.NewEngine(core.WithSampleRate(48000), core.WithBlockSize(256))
}

func newParams(category params.Category, typ, gain uint8) *params.Params {
	p := params.New(typ, 64, 64, rand.New(rand.NewPCG(3, 4)))
	p.Update(func(p *params.Params) {
		p.Category = category
		p.Gain = gain
	})

	return p
}

func TestCategoryDispatch(t *testing.T) {
	env := newEnv()

	if _, ok := New(env, newParams(params.CategoryAnalog, 2, 64)).Engine().(*analog.Filter); !ok {
		t.Fatal("analog category must build an analog engine")
	}
	if _, ok := New(env, newParams(params.CategoryFormant, 0, 64)).Engine().(*formant.Filter); !ok {
		t.Fatal("formant category must build a formant engine")
	}
	if _, ok := New(env, newParams(params.CategoryStateVariable, 1, 64)).Engine().(*svf.Filter); !ok {
		t.Fatal("state-variable category must build an svf engine")
	}

	f := New(env, newParams(params.Category(7), 2, 64))
	if _, ok := f.Engine().(*analog.Filter); !ok || f.Category() != params.CategoryAnalog {
		t.Fatalf("unknown category: engine %T, category %v", f.Engine(), f.Category())
	}
}

func TestEngineConfiguredFromParams(t *testing.T) {
	p := newParams(params.CategoryAnalog, 3, 64)
	p.Update(func(p *params.Params) {
		p.Q = 100
		p.Stages = 2
	})

	e := New(newEnv(), p).Engine().(*analog.Filter)
	if e.Type() != analog.TypeHighpass2 {
		t.Fatalf("type = %v, want %v", e.Type(), analog.TypeHighpass2)
	}
	if e.Stages() != 2 {
		t.Fatalf("stages = %d, want 2", e.Stages())
	}
	if e.Q() != p.ResonanceQ() {
		t.Fatalf("Q = %v, want %v", e.Q(), p.ResonanceQ())
	}
	if e.Frequency() != initialFreq {
		t.Fatalf("frequency = %v, want %v", e.Frequency(), initialFreq)
	}
}

func TestGainRouting(t *testing.T) {
	env := newEnv()

	t.Run("analog output gain", func(t *testing.T) {
		p := newParams(params.CategoryAnalog, 2, 96)
		e := New(env, p).Engine().(*analog.Filter)

		if got, want := e.OutputGain(), core.DBToLinear(p.GainDB()); got != want {
			t.Fatalf("output gain = %v, want %v", got, want)
		}
		if got := e.Gain(); got != 0 {
			t.Fatalf("response gain = %v dB, want 0", got)
		}
	})

	for _, typ := range []uint8{6, 7, 8} {
		t.Run("analog response gain "+analog.Type(typ).String(), func(t *testing.T) {
			p := newParams(params.CategoryAnalog, typ, 96)
			e := New(env, p).Engine().(*analog.Filter)

			if e.OutputGain() != 1 {
				t.Fatalf("output gain = %v, want 1", e.OutputGain())
			}
			if got := e.Gain(); math.Abs(got-p.GainDB()) > 1e-12 {
				t.Fatalf("response gain = %v dB, want %v", got, p.GainDB())
			}
		})
	}

	t.Run("svf boost is square-rooted", func(t *testing.T) {
		p := newParams(params.CategoryStateVariable, 0, 96)
		e := New(env, p).Engine()

		if got, want := e.OutputGain(), math.Sqrt(core.DBToLinear(p.GainDB())); got != want {
			t.Fatalf("output gain = %v, want %v", got, want)
		}
	})

	t.Run("svf cut is linear", func(t *testing.T) {
		p := newParams(params.CategoryStateVariable, 0, 32)
		e := New(env, p).Engine()

		if got, want := e.OutputGain(), core.DBToLinear(p.GainDB()); got != want {
			t.Fatalf("output gain = %v, want %v", got, want)
		}
	})

	t.Run("formant handles gain itself", func(t *testing.T) {
		p := newParams(params.CategoryFormant, 0, 96)
		e := New(env, p).Engine()

		if got, want := e.OutputGain(), core.DBToLinear(p.GainDB()); got != want {
			t.Fatalf("output gain = %v, want %v", got, want)
		}
	})
}

func TestResyncOnParameterChange(t *testing.T) {
	p := newParams(params.CategoryAnalog, 2, 64)
	f := New(newEnv(), p)

	p.Update(func(p *params.Params) { p.Gain = 32 })
	if f.Engine().OutputGain() != 1 {
		t.Fatal("gain must not change before the next block")
	}

	f.Process(make([]float64, 16))
	if got, want := f.Engine().OutputGain(), core.DBToLinear(p.GainDB()); got != want {
		t.Fatalf("output gain after Process = %v, want %v", got, want)
	}

	f.Engine().SetOutputGain(3)
	f.Process(make([]float64, 16))
	if f.Engine().OutputGain() != 3 {
		t.Fatal("gain must only be re-synced when the parameters changed")
	}
}

func TestRealFrequency(t *testing.T) {
	env := newEnv()
	a := New(env, newParams(params.CategoryAnalog, 2, 64))
	s := New(env, newParams(params.CategoryStateVariable, 0, 64))
	fm := New(env, newParams(params.CategoryFormant, 0, 64))

	for _, f := range []*Filter{a, s} {
		if got := f.RealFrequency(0); math.Abs(got-1000) > 0.01 {
			t.Fatalf("%v: RealFrequency(0) = %v, want 1000", f.Category(), got)
		}
		if got, want := f.RealFrequency(1), 2*f.RealFrequency(0); math.Abs(got-want) > 1e-9 {
			t.Fatalf("%v: RealFrequency(1) = %v, want %v", f.Category(), got, want)
		}
	}

	if got := fm.RealFrequency(0.37); got != 0.37 {
		t.Fatalf("formant RealFrequency = %v, want pass-through", got)
	}
}

func TestBasePitch(t *testing.T) {
	p := newParams(params.CategoryAnalog, 2, 64)
	p.Update(func(p *params.Params) {
		p.Freq = 64
		p.FreqTrack = 128
	})
	f := New(newEnv(), p)

	if got := f.BasePitch(440); got != 0 {
		t.Fatalf("BasePitch(440) = %v, want 0", got)
	}
	if got := f.BasePitch(1760); math.Abs(got-2) > 1e-12 {
		t.Fatalf("BasePitch(1760) = %v, want 2", got)
	}
}

func TestDelegation(t *testing.T) {
	f := New(newEnv(), newParams(params.CategoryStateVariable, 2, 64))
	e := f.Engine().(*svf.Filter)

	f.SetFrequency(f.RealFrequency(-1))
	if math.Abs(e.Frequency()-500) > 0.01 {
		t.Fatalf("engine frequency = %v, want 500", e.Frequency())
	}

	f.SetQ(4)
	if e.Q() != 4 {
		t.Fatalf("engine Q = %v, want 4", e.Q())
	}

	f.SetFrequencyAndQ(2000, 0.5)
	if e.Frequency() != 2000 || e.Q() != 0.5 {
		t.Fatalf("engine freq/Q = %v/%v, want 2000/0.5", e.Frequency(), e.Q())
	}
}

func TestCloneIndependent(t *testing.T) {
	for _, category := range []params.Category{params.CategoryAnalog, params.CategoryFormant, params.CategoryStateVariable} {
		t.Run(category.String(), func(t *testing.T) {
			f := New(newEnv(), newParams(category, 2, 64))
			f.SetFrequency(f.RealFrequency(0.5))
			f.Process(testutil.DeterministicNoise(1, 1, 256))

			c := f.Clone()
			if c.Engine() == f.Engine() {
				t.Fatal("clone must own its engine")
			}

			in := testutil.DeterministicNoise(2, 1, 256)
			a := append([]float64(nil), in...)
			b := append([]float64(nil), in...)
			f.Process(a)
			c.Process(b)
			testutil.RequireSliceNearlyEqual(t, b, a, 0)

			f.Cleanup()
			b2 := append([]float64(nil), in...)
			a2 := append([]float64(nil), in...)
			c.Process(b2)
			f.Process(a2)

			diff, err := testutil.MaxAbsDiff(a2, b2)
			if err != nil {
				t.Fatal(err)
			}
			if diff == 0 {
				t.Fatal("Cleanup on the original must not reset the clone")
			}
		})
	}
}
