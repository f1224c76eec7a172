package response

import (
	"fmt"
	"math"
)

// goertzel evaluates a single DFT bin over the samples fed to it.
type goertzel struct {
	coeff  float64
	s0, s1 float64
}

func newGoertzel(freqHz, sampleRate float64) goertzel {
	return goertzel{coeff: 2 * math.Cos(2*math.Pi*freqHz/sampleRate)}
}

func (g *goertzel) processBlock(input []float64) {
	s0, s1 := g.s0, g.s1

	coeff := g.coeff
	for _, x := range input {
		s := x + coeff*s0 - s1
		s1 = s0
		s0 = s
	}

	g.s0, g.s1 = s0, s1
}

func (g *goertzel) magnitude() float64 {
	p := g.s0*g.s0 + g.s1*g.s1 - g.coeff*g.s0*g.s1
	if p <= 0 {
		return 0
	}

	return math.Sqrt(p)
}

// ToneGain drives p with a unit sine at freqHz for FFTSize samples and
// returns the linear gain measured over the second half, after the filter
// has settled. freqHz must lie in (0, sampleRate/2).
func ToneGain(p Processor, freqHz, sampleRate float64, opts ...Option) (float64, error) {
	if p == nil {
		return 0, ErrNilProcessor
	}

	if !validSampleRate(sampleRate) {
		return 0, ErrInvalidSampleRate
	}

	if !(freqHz > 0 && freqHz < sampleRate/2) {
		return 0, fmt.Errorf("response: tone frequency must be between 0 and sampleRate/2: %v", freqHz)
	}

	cfg, err := newConfig(opts)
	if err != nil {
		return 0, err
	}

	sig := make([]float64, cfg.fftSize)
	step := 2 * math.Pi * freqHz / sampleRate

	for i := range sig {
		sig[i] = math.Sin(step * float64(i))
	}

	half := cfg.fftSize / 2

	ref := newGoertzel(freqHz, sampleRate)
	ref.processBlock(sig[half:])

	drive(p, sig, cfg.blockSize)

	det := newGoertzel(freqHz, sampleRate)
	det.processBlock(sig[half:])

	in := ref.magnitude()
	if in == 0 {
		return 0, fmt.Errorf("response: no reference energy at %v Hz", freqHz)
	}

	return det.magnitude() / in, nil
}
