package analog

import (
	"github.com/cwbudde/algo-synthfilter/dsp/core"
	"github.com/cwbudde/algo-synthfilter/dsp/filter"
)

type history struct {
	x1, x2 float64
	y1, y2 float64
}

// Filter is a cascade of up to filter.MaxStages+1 identical first- or
// second-order sections. Large parameter jumps are smoothed by rendering the
// following block with both the old and the new coefficients and
// crossfading between them.
type Filter struct {
	env core.Env

	typ    Type
	freq   float64
	q      float64
	gain   float64 // linear
	stages int

	coeffs    Coefficients
	oldCoeffs Coefficients
	hist      [filter.MaxStages + 1]history
	oldHist   [filter.MaxStages + 1]history

	needsInterpolation bool
	firstTime          bool
	aboveNyquist       bool
	oldAboveNyquist    bool

	outGain float64
	scratch []float64
	xfade   core.Crossfader
}

var _ filter.Engine = (*Filter)(nil)

// New returns a filter with cleared state. stages is clamped to
// [0, filter.MaxStages]. The first parameter change after construction is
// never interpolated.
func New(env core.Env, typ Type, freqHz, q float64, stages int) *Filter {
	if env == nil {
		panic("analog: nil env")
	}

	f := &Filter{
		env:     env,
		typ:     typ,
		freq:    freqHz,
		q:       max(q, 0),
		gain:    1,
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

// SetFrequency changes the cutoff/center frequency in Hz. Values below
// filter.MinFrequency are raised to it.
func (f *Filter) SetFrequency(hz float64) {
	f.setFrequency(hz)
	f.recompute()
}

// SetFrequencyAndQ changes both frequency and resonance with one coefficient
// update.
func (f *Filter) SetFrequencyAndQ(hz, q float64) {
	f.q = max(q, 0)
	f.setFrequency(hz)
	f.recompute()
}

func (f *Filter) setFrequency(hz float64) {
	if hz < filter.MinFrequency {
		hz = filter.MinFrequency
	}

	ratio := core.FrequencyRatio(f.freq, hz)

	f.oldAboveNyquist = f.aboveNyquist
	f.aboveNyquist = hz > filter.FrequencyCeiling(f.env.SampleRate())
	crossed := f.aboveNyquist != f.oldAboveNyquist

	if !f.firstTime && (ratio > filter.InterpolationRatio || crossed) {
		f.interpolateNextBlock()
	}

	f.freq = hz
	f.firstTime = false
}

// SetQ changes the resonance. Negative values are treated as 0.
func (f *Filter) SetQ(q float64) {
	f.q = max(q, 0)
	f.recompute()
}

// SetType switches the response. Unknown types fall back to TypeLowpass1.
func (f *Filter) SetType(typ Type) {
	f.typ = typ
	f.recompute()
}

// SetGain sets the peak/shelf gain in dB.
func (f *Filter) SetGain(dB float64) {
	f.gain = core.DBToLinear(dB)
	f.recompute()
}

// SetStages changes the cascade depth. Values at or above filter.MaxStages
// are clamped to filter.MaxStages-1. The filter memory is cleared.
func (f *Filter) SetStages(stages int) {
	if stages >= filter.MaxStages {
		stages = filter.MaxStages - 1
	}

	f.stages = max(stages, 0)
	f.Cleanup()
	f.recompute()
}

// Cleanup zeroes all section history and cancels a pending crossfade.
func (f *Filter) Cleanup() {
	clear(f.hist[:])
	clear(f.oldHist[:])
	f.needsInterpolation = false
}

func (f *Filter) recompute() {
	f.coeffs, f.typ = Compute(Design{
		Type:   f.typ,
		Freq:   f.freq,
		Q:      f.q,
		Gain:   f.gain,
		Stages: f.stages,
	}, f.env.SampleRate())
}

// interpolateNextBlock snapshots the current coefficients and history so that
// the next Process call can fade from them. A crossfade already pending keeps
// its original snapshot.
func (f *Filter) interpolateNextBlock() {
	if f.needsInterpolation {
		return
	}

	f.oldCoeffs = f.coeffs
	f.oldHist = f.hist
	f.needsInterpolation = true
}

// Process filters buf in place and applies the output gain.
func (f *Filter) Process(buf []float64) {
	if len(buf) == 0 {
		return
	}

	if f.needsInterpolation {
		f.scratch = core.EnsureLen(f.scratch, len(buf))
		old := f.scratch[:len(buf)]
		copy(old, buf)

		for i := 0; i <= f.stages; i++ {
			f.oldCoeffs.run(old, &f.oldHist[i])
		}

		for i := 0; i <= f.stages; i++ {
			f.coeffs.run(buf, &f.hist[i])
		}

		f.xfade.Apply(buf, old)
		f.needsInterpolation = false
	} else {
		for i := 0; i <= f.stages; i++ {
			f.coeffs.run(buf, &f.hist[i])
		}
	}

	core.Scale(buf, f.outGain)
}

// run filters buf in place through one section, carrying h across calls.
func (c *Coefficients) run(buf []float64, h *history) {
	if c.Order == 1 {
		x1, y1 := h.x1, h.y1
		for i, x := range buf {
			y := (x+core.DenormalBias)*c.C[0] + x1*c.C[1] + y1*c.D[1]
			x1, y1 = x, y
			buf[i] = y
		}

		h.x1, h.y1 = x1, y1

		return
	}

	x1, x2, y1, y2 := h.x1, h.x2, h.y1, h.y2
	for i, x := range buf {
		y := (x+core.DenormalBias)*c.C[0] + x1*c.C[1] + x2*c.C[2] + y1*c.D[1] + y2*c.D[2]
		x2, x1 = x1, x
		y2, y1 = y1, y
		buf[i] = y
	}

	h.x1, h.x2, h.y1, h.y2 = x1, x2, y1, y2
}

// FrequencyResponse returns the linear magnitude of the full cascade at
// freqHz for the current coefficients.
func (f *Filter) FrequencyResponse(freqHz float64) float64 {
	return f.coeffs.Magnitude(freqHz, f.env.SampleRate(), f.stages)
}

// Type returns the active response type.
func (f *Filter) Type() Type { return f.typ }

// Frequency returns the last requested frequency in Hz.
func (f *Filter) Frequency() float64 { return f.freq }

// EffectiveFrequency returns the frequency the coefficients are designed
// for, limited to filter.FrequencyCeiling.
func (f *Filter) EffectiveFrequency() float64 {
	return min(f.freq, filter.FrequencyCeiling(f.env.SampleRate()))
}

func (f *Filter) Q() float64 { return f.q }

// Gain returns the peak/shelf gain in dB.
func (f *Filter) Gain() float64 { return core.LinearToDB(f.gain) }

func (f *Filter) Stages() int { return f.stages }

func (f *Filter) OutputGain() float64 { return f.outGain }

func (f *Filter) SetOutputGain(gain float64) { f.outGain = gain }

// Interpolating reports whether the next Process call will crossfade.
func (f *Filter) Interpolating() bool { return f.needsInterpolation }

// Coefficients returns a copy of the active section coefficients.
func (f *Filter) Coefficients() Coefficients { return f.coeffs }

// Clone returns an independent copy including the filter memory.
func (f *Filter) Clone() *Filter {
	c := *f
	c.scratch = make([]float64, len(f.scratch))
	c.xfade = f.xfade.Clone()

	return &c
}

// CloneEngine implements filter.Engine.
func (f *Filter) CloneEngine() filter.Engine { return f.Clone() }
