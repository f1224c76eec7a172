package svf

import (
	"math"

	"github.com/cwbudde/algo-synthfilter/dsp/core"
	"github.com/cwbudde/algo-synthfilter/dsp/filter"
)

// maxF keeps the integrator gain below the point where the network diverges.
const maxF = 0.99999

// Type selects which of the four state-variable outputs is used.
type Type int

const (
	TypeLowpass Type = iota
	TypeHighpass
	TypeBandpass
	TypeNotch
)

func (t Type) String() string {
	switch t {
	case TypeLowpass:
		return "low"
	case TypeHighpass:
		return "high"
	case TypeBandpass:
		return "band"
	case TypeNotch:
		return "notch"
	default:
		return "unknown"
	}
}

// Valid reports whether t is a known output.
func (t Type) Valid() bool {
	return t >= TypeLowpass && t <= TypeNotch
}

// Coefficients of one state-variable stage.
type Coefficients struct {
	F     float64 // integrator gain
	Q     float64 // damping
	QSqrt float64 // input scaling
}

// Compute maps a frequency in Hz and a resonance to stage coefficients. The
// damping is spread over stages+1 stages.
func Compute(freqHz, q float64, stages int, sampleRate float64) Coefficients {
	var c Coefficients

	c.F = min(freqHz/sampleRate*4, maxF)
	c.Q = 1 - math.Atan(math.Sqrt(max(q, 0)))*2/math.Pi
	c.Q = math.Pow(c.Q, 1/float64(stages+1))
	c.QSqrt = math.Sqrt(c.Q)

	return c
}

type state struct {
	low, high, band, notch float64
}

func (s *state) output(typ Type) *float64 {
	switch typ {
	case TypeHighpass:
		return &s.high
	case TypeBandpass:
		return &s.band
	case TypeNotch:
		return &s.notch
	default:
		return &s.low
	}
}

// run filters buf in place through one stage.
func (c *Coefficients) run(buf []float64, s *state, typ Type) {
	out := s.output(typ)
	for i, x := range buf {
		s.low += c.F * s.band
		s.high = c.QSqrt*x - s.low - c.Q*s.band
		s.band = c.F*s.high + s.band
		s.notch = s.high + s.low
		buf[i] = *out
	}
}

// Filter is a cascade of up to filter.MaxStages+1 state-variable stages.
type Filter struct {
	env core.Env

	typ    Type
	freq   float64
	q      float64
	stages int

	par    Coefficients
	oldPar Coefficients
	st     [filter.MaxStages + 1]state

	needsInterpolation bool
	firstTime          bool
	aboveNyquist       bool
	oldAboveNyquist    bool

	outGain float64
	scratch []float64
	xfade   core.Crossfader
}

var _ filter.Engine = (*Filter)(nil)

// New returns a filter with cleared state. Unknown types select the lowpass
// output and stages is clamped to [0, filter.MaxStages].
func New(env core.Env, typ Type, freqHz, q float64, stages int) *Filter {
	if env == nil {
		panic("svf: nil env")
	}

	if !typ.Valid() {
		typ = TypeLowpass
	}

	f := &Filter{
		env:     env,
		typ:     typ,
		freq:    freqHz,
		q:       max(q, 0),
		stages:  core.ClampInt(stages, 0, filter.MaxStages),
		outGain: 1,
		scratch: make([]float64, env.BlockSize()),
	}
	f.xfade.Reserve(env.BlockSize())

	f.Cleanup()
	f.firstTime = true
	f.SetFrequencyAndQ(freqHz, q)
	f.firstTime = true

	return f
}

func (f *Filter) SetFrequency(hz float64) {
	if hz < filter.MinFrequency {
		hz = filter.MinFrequency
	}

	ratio := core.FrequencyRatio(f.freq, hz)

	f.oldAboveNyquist = f.aboveNyquist
	f.aboveNyquist = hz > filter.FrequencyCeiling(f.env.SampleRate())
	crossed := f.aboveNyquist != f.oldAboveNyquist

	if !f.firstTime && (ratio > filter.InterpolationRatio || crossed) && !f.needsInterpolation {
		f.oldPar = f.par
		f.needsInterpolation = true
	}

	f.freq = hz
	f.recompute()
	f.firstTime = false
}

func (f *Filter) SetFrequencyAndQ(hz, q float64) {
	f.q = max(q, 0)
	f.SetFrequency(hz)
}

// SetQ changes the resonance. Negative values are treated as 0.
func (f *Filter) SetQ(q float64) {
	f.q = max(q, 0)
	f.recompute()
}

// SetType selects the output. Unknown types select the lowpass output.
func (f *Filter) SetType(typ Type) {
	if !typ.Valid() {
		typ = TypeLowpass
	}

	f.typ = typ
	f.recompute()
}

// SetGain is a no-op: the state-variable response has no gain parameter.
// Level is controlled through SetOutputGain.
func (f *Filter) SetGain(float64) {}

// SetStages changes the cascade depth, clamping values at or above
// filter.MaxStages to filter.MaxStages-1, and clears the filter memory.
func (f *Filter) SetStages(stages int) {
	if stages >= filter.MaxStages {
		stages = filter.MaxStages - 1
	}

	f.stages = max(stages, 0)
	f.Cleanup()
	f.recompute()
}

// Cleanup zeroes the stage state, forgets which side of the frequency
// ceiling the filter was on and cancels a pending crossfade.
func (f *Filter) Cleanup() {
	clear(f.st[:])
	f.aboveNyquist = false
	f.oldAboveNyquist = false
	f.needsInterpolation = false
}

func (f *Filter) recompute() {
	f.par = Compute(f.freq, f.q, f.stages, f.env.SampleRate())
}

// Process filters buf in place and applies the output gain. A pending
// crossfade renders the block a second time with the previous coefficients,
// starting from the same stage state.
func (f *Filter) Process(buf []float64) {
	if len(buf) == 0 {
		return
	}

	if f.needsInterpolation {
		f.scratch = core.EnsureLen(f.scratch, len(buf))
		old := f.scratch[:len(buf)]
		copy(old, buf)

		replay := f.st
		for i := 0; i <= f.stages; i++ {
			f.oldPar.run(old, &replay[i], f.typ)
		}

		for i := 0; i <= f.stages; i++ {
			f.par.run(buf, &f.st[i], f.typ)
		}

		f.xfade.Apply(buf, old)
		f.needsInterpolation = false
	} else {
		for i := 0; i <= f.stages; i++ {
			f.par.run(buf, &f.st[i], f.typ)
		}
	}

	core.Scale(buf, f.outGain)
}

func (f *Filter) Type() Type { return f.typ }

// Frequency returns the last requested frequency in Hz.
func (f *Filter) Frequency() float64 { return f.freq }

func (f *Filter) Q() float64 { return f.q }

func (f *Filter) Stages() int { return f.stages }

func (f *Filter) OutputGain() float64 { return f.outGain }

func (f *Filter) SetOutputGain(gain float64) { f.outGain = gain }

// Interpolating reports whether the next Process call will crossfade.
func (f *Filter) Interpolating() bool { return f.needsInterpolation }

// Coefficients returns the active stage coefficients.
func (f *Filter) Coefficients() Coefficients { return f.par }

// Clone returns an independent copy including the filter memory.
func (f *Filter) Clone() *Filter {
	c := *f
	c.scratch = make([]float64, len(f.scratch))
	c.xfade = f.xfade.Clone()

	return &c
}

// CloneEngine implements filter.Engine.
func (f *Filter) CloneEngine() filter.Engine { return f.Clone() }
