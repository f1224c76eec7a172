package synth

import (
	"math"

	"github.com/cwbudde/algo-synthfilter/dsp/core"
	"github.com/cwbudde/algo-synthfilter/dsp/filter"
	"github.com/cwbudde/algo-synthfilter/dsp/filter/analog"
	"github.com/cwbudde/algo-synthfilter/dsp/filter/formant"
	"github.com/cwbudde/algo-synthfilter/dsp/filter/params"
	"github.com/cwbudde/algo-synthfilter/dsp/filter/svf"
)

const (
	// referenceOctaves is log2(1000): pitch 0 maps to 1 kHz.
	referenceOctaves = 9.96578428

	initialFreq = 1000.0
)

// Filter owns exactly one engine.
type Filter struct {
	category params.Category
	typ      uint8
	engine   filter.Engine
	params   *params.Params
	tracker  params.Tracker
}

// New selects the engine from p.Category and applies the initial gain
// routing. Unknown categories select the analog engine. The type and stage
// count are fixed for the lifetime of the filter; gain follows later
// parameter updates.
func New(env core.Env, p *params.Params) *Filter {
	if p == nil {
		panic("synth: nil params")
	}

	f := &Filter{
		category: p.Category,
		typ:      p.Type,
		params:   p,
		tracker:  params.NewTracker(p),
	}

	switch p.Category {
	case params.CategoryFormant:
		f.engine = formant.New(env, p)
	case params.CategoryStateVariable:
		f.engine = svf.New(env, svf.Type(p.Type), initialFreq, p.ResonanceQ(), int(p.Stages))
	default:
		f.category = params.CategoryAnalog
		f.engine = analog.New(env, analog.Type(p.Type), initialFreq, p.ResonanceQ(), int(p.Stages))
	}

	f.syncGain()

	return f
}

// syncGain routes the parameter gain to the engine. The formant engine reads
// it from the parameters itself.
func (f *Filter) syncGain() {
	gainDB := f.params.GainDB()

	switch f.category {
	case params.CategoryFormant:
	case params.CategoryStateVariable:
		g := core.DBToLinear(gainDB)
		if g > 1 {
			g = math.Sqrt(g)
		}

		f.engine.SetOutputGain(g)
	default:
		if analog.Type(f.typ).UsesGain() {
			f.engine.SetGain(gainDB)
		} else {
			f.engine.SetOutputGain(core.DBToLinear(gainDB))
		}
	}
}

// Process filters buf in place, first re-syncing the gain if the parameters
// changed since the previous block.
func (f *Filter) Process(buf []float64) {
	if f.tracker.CheckUpdated() {
		f.syncGain()
	}

	f.engine.Process(buf)
}

// SetFrequency sets the engine frequency in Hz, or the sequence position
// for the formant engine. See RealFrequency.
func (f *Filter) SetFrequency(freq float64) { f.engine.SetFrequency(freq) }

func (f *Filter) SetFrequencyAndQ(freq, q float64) { f.engine.SetFrequencyAndQ(freq, q) }

func (f *Filter) SetQ(q float64) { f.engine.SetQ(q) }

// RealFrequency converts a pitch in octaves relative to 1 kHz to Hz. For the
// formant engine the pitch is returned unchanged.
func (f *Filter) RealFrequency(pitch float64) float64 {
	if f.category == params.CategoryFormant {
		return pitch
	}

	return math.Pow(2, pitch+referenceOctaves)
}

// BasePitch returns the parameter base frequency plus key tracking for a
// note of noteHz, in octaves relative to 1 kHz. Modulation is added by the
// caller before RealFrequency.
func (f *Filter) BasePitch(noteHz float64) float64 {
	return f.params.BaseFreqOctaves() + f.params.TrackingOctaves(noteHz)
}

func (f *Filter) Category() params.Category { return f.category }

// Engine exposes the backing engine for diagnostics.
func (f *Filter) Engine() filter.Engine { return f.engine }

// Cleanup clears the engine memory.
func (f *Filter) Cleanup() { f.engine.Cleanup() }

// Clone returns an independent deep copy of the filter and its engine. Both
// keep following the same parameters.
func (f *Filter) Clone() *Filter {
	c := *f
	c.engine = f.engine.CloneEngine()

	return &c
}
