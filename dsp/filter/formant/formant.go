package formant

import (
	"math"

	"github.com/cwbudde/algo-synthfilter/dsp/core"
	"github.com/cwbudde/algo-synthfilter/dsp/filter"
	"github.com/cwbudde/algo-synthfilter/dsp/filter/analog"
	"github.com/cwbudde/algo-synthfilter/dsp/filter/params"
)

const (
	// changeThreshold is the input, slew and Q delta below which SetPosition
	// leaves the formant slots untouched.
	changeThreshold = 0.001

	slotFreq = 1000.0
	slotQ    = 10.0
)

// Formant is one blended resonance in physical units.
type Formant struct {
	Freq float64 // Hz
	Amp  float64 // linear
	Q    float64
}

func lerp(a, b Formant, w float64) Formant {
	return Formant{
		Freq: a.Freq*(1-w) + b.Freq*w,
		Amp:  a.Amp*(1-w) + b.Amp*w,
		Q:    a.Q*(1-w) + b.Q*w,
	}
}

// Filter is the formant engine. The number of formant slots and the cascade
// depth of each slot are fixed at construction; every other control is
// re-read from the shared parameters whenever they change.
type Filter struct {
	params  *params.Params
	tracker params.Tracker

	slots   []*analog.Filter
	current []Formant
	oldAmp  []float64

	vowels      [params.MaxVowels][params.MaxFormants]Formant
	sequence    [params.MaxSequence]int
	sequenceLen int

	firstTime  bool
	oldInput   float64
	slowInput  float64
	qFactor    float64
	oldQFactor float64
	slowness   float64
	clearness  float64
	stretch    float64
	outGain    float64

	input []float64
	tmp   []float64
}

var _ filter.Engine = (*Filter)(nil)

// New builds the formant bank described by p. The filter keeps a reference to
// p and picks up later changes made through p.Update.
func New(env core.Env, p *params.Params) *Filter {
	if env == nil {
		panic("formant: nil env")
	}
	if p == nil {
		panic("formant: nil params")
	}

	n := p.FormantCount()
	f := &Filter{
		params:    p,
		tracker:   params.NewTracker(p),
		slots:     make([]*analog.Filter, n),
		current:   make([]Formant, n),
		oldAmp:    make([]float64, n),
		firstTime: true,
		oldInput:  -1,
		input:     make([]float64, env.BlockSize()),
		tmp:       make([]float64, env.BlockSize()),
	}

	for i := range f.slots {
		f.slots[i] = analog.New(env, analog.TypeBandpass2, slotFreq, slotQ, p.StageCount())
		f.current[i] = Formant{Freq: 1000, Amp: 1, Q: 2}
		f.oldAmp[i] = 1
	}

	f.updateParameters()
	f.oldQFactor = f.qFactor

	return f
}

func (f *Filter) updateParameters() {
	p := f.params

	for v := range f.vowels {
		for i := range f.slots {
			raw := p.Vowels[v].Formants[i]
			f.vowels[v][i] = Formant{
				Freq: p.FormantFreqHz(raw.Freq),
				Amp:  p.FormantAmp(raw.Amp),
				Q:    p.FormantQ(raw.Q),
			}
		}
	}

	f.sequenceLen = p.SequenceLen()
	for k := range f.sequenceLen {
		f.sequence[k] = p.SequenceVowel(k)
	}

	f.slowness = math.Pow(1-float64(p.FormantSlowness)/128, 3)
	f.clearness = math.Pow(10, (float64(p.VowelClearness)-32)/48)

	f.stretch = math.Pow(0.1, (float64(p.SequenceStretch)-32)/48)
	if p.SequenceReversed {
		f.stretch = -f.stretch
	}

	f.outGain = core.DBToLinear(p.GainDB())
	f.qFactor = p.ResonanceQ()
}

// SetPosition moves along the vowel sequence. One unit of input times the
// sequence stretch covers the whole sequence once; the input wraps.
func (f *Filter) SetPosition(input float64) {
	updated := f.tracker.CheckUpdated()
	if updated {
		f.updateParameters()
	}

	if f.firstTime {
		f.slowInput = input
	} else {
		f.slowInput = f.slowInput*(1-f.slowness) + input*f.slowness
	}

	if !f.firstTime && !updated &&
		math.Abs(f.oldInput-input) < changeThreshold &&
		math.Abs(f.slowInput-input) < changeThreshold &&
		math.Abs(f.qFactor-f.oldQFactor) < changeThreshold {
		return
	}

	f.oldInput = input

	n := f.sequenceLen
	pos := input * f.stretch
	pos -= math.Floor(pos)

	p2 := min(int(pos*float64(n)), n-1)
	p1 := p2 - 1
	if p1 < 0 {
		p1 += n
	}

	pos *= float64(n)
	pos -= math.Floor(pos)
	pos = (math.Atan((pos*2-1)*f.clearness)/math.Atan(f.clearness) + 1) * 0.5

	from, to := &f.vowels[f.sequence[p1]], &f.vowels[f.sequence[p2]]

	for i, slot := range f.slots {
		target := lerp(from[i], to[i], pos)

		if f.firstTime {
			f.current[i] = target
			f.oldAmp[i] = target.Amp
		} else {
			f.current[i] = lerp(f.current[i], target, f.slowness)
		}

		slot.SetFrequencyAndQ(f.current[i].Freq, f.current[i].Q*f.qFactor)
	}

	f.firstTime = false
	f.oldQFactor = f.qFactor
}

// SetFrequency is SetPosition: the formant engine is positioned, not tuned.
func (f *Filter) SetFrequency(input float64) { f.SetPosition(input) }

// SetFrequencyAndQ sets the global Q factor and the sequence position.
func (f *Filter) SetFrequencyAndQ(input, q float64) {
	f.qFactor = q
	f.SetPosition(input)
}

// SetQ sets the global Q factor that scales every formant resonance.
func (f *Filter) SetQ(q float64) {
	f.qFactor = q
	for i, slot := range f.slots {
		slot.SetQ(q * f.current[i].Q)
	}
}

// SetGain is a no-op; the formant gain comes from the parameters.
func (f *Filter) SetGain(float64) {}

func (f *Filter) OutputGain() float64 { return f.outGain }

// SetOutputGain overrides the gain until the parameters change again.
func (f *Filter) SetOutputGain(gain float64) { f.outGain = gain }

// Process replaces buf with the sum of all formant bands. Each band is
// weighted by its amplitude, ramped across the block when it changed.
func (f *Filter) Process(buf []float64) {
	n := len(buf)
	if n == 0 {
		return
	}

	f.input = core.EnsureLen(f.input, n)
	f.tmp = core.EnsureLen(f.tmp, n)
	in, tmp := f.input[:n], f.tmp[:n]

	copy(in, buf)
	core.Zero(buf)

	for j, slot := range f.slots {
		copy(tmp, in)
		core.Scale(tmp, f.outGain)
		slot.Process(tmp)

		amp := f.current[j].Amp
		if core.AmplitudeChanged(f.oldAmp[j], amp) {
			core.AccumulateRamp(buf, tmp, f.oldAmp[j], amp)
		} else {
			core.Accumulate(buf, tmp, amp)
		}

		f.oldAmp[j] = amp
	}
}

// Cleanup clears the history of every formant slot.
func (f *Filter) Cleanup() {
	for _, slot := range f.slots {
		slot.Cleanup()
	}
}

// Formants returns a copy of the current blended formant values.
func (f *Filter) Formants() []Formant {
	return append([]Formant(nil), f.current...)
}

// QFactor returns the global resonance multiplier.
func (f *Filter) QFactor() float64 { return f.qFactor }

// Clone returns an independent copy sharing the same parameters.
func (f *Filter) Clone() *Filter {
	c := *f
	c.slots = make([]*analog.Filter, len(f.slots))
	for i, slot := range f.slots {
		c.slots[i] = slot.Clone()
	}

	c.current = append([]Formant(nil), f.current...)
	c.oldAmp = append([]float64(nil), f.oldAmp...)
	c.input = make([]float64, len(f.input))
	c.tmp = make([]float64, len(f.tmp))

	return &c
}

// CloneEngine implements filter.Engine.
func (f *Filter) CloneEngine() filter.Engine { return f.Clone() }
