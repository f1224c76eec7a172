// Package filter defines the capability set shared by the synthesizer filter
// engines in its sub-packages (analog, svf, formant) and consumed by the
// polymorphic facade in dsp/filter/synth.
package filter

const (
	// MaxStages is the highest stage index an engine accepts; engines run up
	// to MaxStages+1 cascaded copies of their response.
	MaxStages = 5

	// MinFrequency is the lowest accepted cutoff in Hz.
	MinFrequency = 0.1
	// NyquistMargin is kept between the cutoff ceiling and Nyquist.
	NyquistMargin = 500.0

	// InterpolationRatio is the frequency jump (in either direction) above
	// which the next block is crossfaded from the previous coefficients.
	InterpolationRatio = 3.0
)

// FrequencyCeiling returns the highest usable cutoff for sampleRate.
// Frequencies above it switch engines to their degenerate coefficient sets.
func FrequencyCeiling(sampleRate float64) float64 {
	return sampleRate/2 - NyquistMargin
}

// Engine is implemented by every filter engine. All methods are expected to
// run on the audio thread (or be serialized with it by the caller).
type Engine interface {
	// Process filters buf in place.
	Process(buf []float64)
	SetFrequency(hz float64)
	SetFrequencyAndQ(hz, q float64)
	SetQ(q float64)
	// SetGain sets the response gain in dB. Engines without a gain-dependent
	// response ignore it.
	SetGain(dB float64)
	OutputGain() float64
	SetOutputGain(gain float64)
	// Cleanup clears the filter memory.
	Cleanup()
	// CloneEngine returns an independent deep copy.
	CloneEngine() Engine
}
