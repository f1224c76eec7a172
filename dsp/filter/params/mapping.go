package params

import (
	"math"

	"github.com/cwbudde/algo-synthfilter/dsp/core"
	"github.com/cwbudde/algo-synthfilter/dsp/filter/analog"
)

const (
	silenceDB = -90.0

	// formantMargin is the distance from Nyquist above which a formant is
	// left out of FormantResponse.
	formantMargin = 100.0
)

// ResonanceQ maps the Q control to a resonance in [0.1, 999.1].
func (p *Params) ResonanceQ() float64 {
	x := float64(p.Q) / 127
	return math.Exp(x*x*math.Log(1000)) - 0.9
}

// GainDB maps the gain control to [-30, 29.5] dB.
func (p *Params) GainDB() float64 {
	return (float64(p.Gain)/64 - 1) * 30
}

// BaseFreqOctaves maps the frequency control to octaves relative to the
// facade reference frequency, [-5, 4.9].
func (p *Params) BaseFreqOctaves() float64 {
	return (float64(p.Freq)/64 - 1) * 5
}

// TrackingOctaves returns how many octaves the cutoff moves for a note of
// noteHz.
func (p *Params) TrackingOctaves(noteHz float64) float64 {
	return math.Log(noteHz/440) * (float64(p.FreqTrack) - 64) / (64 * math.Ln2)
}

// CenterFreqHz is the middle of the formant frequency axis, 100 Hz to 10 kHz.
func (p *Params) CenterFreqHz() float64 {
	return 10000 * math.Pow(10, -(1-float64(p.CenterFreq)/127)*2)
}

// OctavesFreqSpan is the width of the formant frequency axis in octaves.
func (p *Params) OctavesFreqSpan() float64 {
	return 0.25 + 10*float64(p.OctavesFreq)/127
}

// FreqX maps x in [0, 1] onto the formant frequency axis. x above 1 is
// treated as 1.
func (p *Params) FreqX(x float64) float64 {
	x = min(x, 1)
	oct := math.Pow(2, p.OctavesFreqSpan())

	return p.CenterFreqHz() / math.Sqrt(oct) * math.Pow(oct, x)
}

// FreqPos is the inverse of FreqX.
func (p *Params) FreqPos(hz float64) float64 {
	return (math.Log(hz) - math.Log(p.FreqX(0))) / math.Ln2 / p.OctavesFreqSpan()
}

func (p *Params) FormantFreqHz(v uint8) float64 {
	return p.FreqX(float64(v) / 127)
}

// FormantAmp maps an amplitude control to linear gain, -80 dB at 0.
func (p *Params) FormantAmp(v uint8) float64 {
	return math.Pow(0.1, (1-float64(v)/127)*4)
}

func (p *Params) FormantQ(v uint8) float64 {
	return math.Pow(25, (float64(v)-32)/64)
}

// FormantResponse fills out with the magnitude in dB of vowel's formant bank
// sampled along the formant frequency axis, out[i] at FreqX(i/len(out)).
// Points above Nyquist report silence, and formants closer than 100 Hz to
// Nyquist are left out.
func (p *Params) FormantResponse(vowel int, out []float64, sampleRate float64) {
	core.Zero(out)
	if len(out) == 0 {
		return
	}

	v := &p.Vowels[core.ClampInt(vowel, 0, MaxVowels-1)]
	stages := p.StageCount()

	ceiling := sampleRate/2 - formantMargin

	for n := range p.FormantCount() {
		f := v.Formants[n]

		freq := p.FormantFreqHz(f.Freq)
		if freq > ceiling {
			continue
		}

		c, _ := analog.Compute(analog.Design{
			Type:    analog.TypeBandpass2,
			Freq:    freq,
			Q:       p.FormantQ(f.Q) * p.ResonanceQ(),
			Gain:    1,
			Stages:  stages,
			Ceiling: ceiling,
		}, sampleRate)
		amp := p.FormantAmp(f.Amp)

		for i := range out {
			hz := p.FreqX(float64(i) / float64(len(out)))
			if hz > sampleRate/2 {
				break
			}

			out[i] += c.Magnitude(hz, sampleRate, stages) * amp
		}
	}

	gain := p.GainDB()
	for i, h := range out {
		if h > 1e-9 {
			out[i] = core.LinearToDB(h) + gain
		} else {
			out[i] = silenceDB
		}
	}
}
