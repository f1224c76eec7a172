package analog

import (
	"math"

	"github.com/cwbudde/algo-synthfilter/dsp/filter"
	"github.com/cwbudde/algo-synthfilter/dsp/filter/biquad"
)

// minAlphaQ keeps alpha = sin(w)/(2Q) finite for Q = 0.
const minAlphaQ = 1e-4

// Type selects the analog filter response.
type Type int

const (
	TypeLowpass1 Type = iota
	TypeHighpass1
	TypeLowpass2
	TypeHighpass2
	TypeBandpass2
	TypeNotch
	TypePeak
	TypeLowShelf
	TypeHighShelf
)

func (t Type) String() string {
	switch t {
	case TypeLowpass1:
		return "lpf1"
	case TypeHighpass1:
		return "hpf1"
	case TypeLowpass2:
		return "lpf2"
	case TypeHighpass2:
		return "hpf2"
	case TypeBandpass2:
		return "bpf2"
	case TypeNotch:
		return "notch"
	case TypePeak:
		return "peak"
	case TypeLowShelf:
		return "lowshelf"
	case TypeHighShelf:
		return "highshelf"
	default:
		return "unknown"
	}
}

// Valid reports whether t is a known response.
func (t Type) Valid() bool {
	return t >= TypeLowpass1 && t <= TypeHighShelf
}

// UsesGain reports whether the response shape depends on the gain parameter.
func (t Type) UsesGain() bool {
	return t == TypePeak || t == TypeLowShelf || t == TypeHighShelf
}

// Design is the input of the coefficient model.
type Design struct {
	Type   Type
	Freq   float64 // cutoff or center in Hz
	Q      float64
	Gain   float64 // linear, only used by peak and shelf types
	Stages int     // 0-based: Stages+1 identical sections are cascaded
	// Ceiling overrides filter.FrequencyCeiling when positive.
	Ceiling float64
}

// Coefficients of one section of the difference equation
//
//	y[n] = c0 x[n] + c1 x[n-1] + c2 x[n-2] + d1 y[n-1] + d2 y[n-2]
//
// d[0] is unused. Order is 1 or 2.
type Coefficients struct {
	C     [3]float64
	D     [3]float64
	Order int
}

// Biquad converts to normalized transfer-function form.
func (c *Coefficients) Biquad() biquad.Coefficients {
	return biquad.FromDirectForm(c.C, c.D)
}

// Magnitude returns the linear magnitude of Stages+1 cascaded sections at freqHz.
func (c *Coefficients) Magnitude(freqHz, sampleRate float64, stages int) float64 {
	b := c.Biquad()
	return b.CascadeMagnitude(freqHz, sampleRate, stages+1)
}

// Compute derives section coefficients for d at sampleRate. It is a pure
// function. Frequencies above filter.FrequencyCeiling (or d.Ceiling) collapse
// to a pass-through or silent section depending on the type; unknown types fall back to
// TypeLowpass1, which is reported as the second return value.
//
// Most responses follow the RBJ audio-EQ cookbook; feedback coefficients are
// stored with the sign they are added with in the difference equation.
func Compute(d Design, sampleRate float64) (Coefficients, Type) {
	if !d.Type.Valid() {
		d.Type = TypeLowpass1
	}

	freq := d.Freq
	zero := false

	ceiling := filter.FrequencyCeiling(sampleRate)
	if d.Ceiling > 0 {
		ceiling = d.Ceiling
	}

	if freq > ceiling {
		freq = ceiling
		zero = true
	}

	if freq < filter.MinFrequency {
		freq = filter.MinFrequency
	}

	q := max(d.Q, 0)
	gain := d.Gain

	if d.Stages > 0 {
		root := 1 / float64(d.Stages+1)
		if q > 1 {
			q = math.Pow(q, root)
		}

		gain = math.Pow(gain, root)
	}

	var c Coefficients

	switch d.Type {
	case TypeLowpass1:
		tmp := 0.0
		if !zero {
			tmp = math.Exp(-2 * math.Pi * freq / sampleRate)
		}

		c.C = [3]float64{1 - tmp, 0, 0}
		c.D = [3]float64{0, tmp, 0}
		c.Order = 1

	case TypeHighpass1:
		tmp := 0.0
		if !zero {
			tmp = math.Exp(-2 * math.Pi * freq / sampleRate)
		}

		c.C = [3]float64{(1 + tmp) / 2, -(1 + tmp) / 2, 0}
		c.D = [3]float64{0, tmp, 0}
		c.Order = 1

	case TypeLowpass2:
		c.Order = 2
		if zero {
			c.C[0] = 1
			break
		}

		sn, cs := sinCos(freq, sampleRate)
		alpha := sn / (2 * max(q, minAlphaQ))
		tmp := 1 + alpha
		c.C[1] = (1 - cs) / tmp
		c.C[0] = c.C[1] / 2
		c.C[2] = c.C[1] / 2
		c.D = poles(cs, alpha, tmp)

	case TypeHighpass2:
		c.Order = 2
		if zero {
			break
		}

		sn, cs := sinCos(freq, sampleRate)
		alpha := sn / (2 * max(q, minAlphaQ))
		tmp := 1 + alpha
		c.C = [3]float64{(1 + cs) / 2 / tmp, -(1 + cs) / tmp, (1 + cs) / 2 / tmp}
		c.D = poles(cs, alpha, tmp)

	case TypeBandpass2:
		c.Order = 2
		if zero {
			break
		}

		sn, cs := sinCos(freq, sampleRate)
		alpha := sn / (2 * max(q, minAlphaQ))
		tmp := 1 + alpha
		norm := math.Sqrt(q + 1)
		c.C = [3]float64{alpha / tmp * norm, 0, -alpha / tmp * norm}
		c.D = poles(cs, alpha, tmp)

	case TypeNotch:
		c.Order = 2
		if zero {
			c.C[0] = 1
			break
		}

		sn, cs := sinCos(freq, sampleRate)
		alpha := sn / (2 * math.Sqrt(max(q, minAlphaQ)))
		tmp := 1 + alpha
		c.C = [3]float64{1 / tmp, -2 * cs / tmp, 1 / tmp}
		c.D = poles(cs, alpha, tmp)

	case TypePeak:
		c.Order = 2
		if zero {
			c.C[0] = 1
			break
		}

		sn, cs := sinCos(freq, sampleRate)
		alpha := sn / (2 * max(q*3, minAlphaQ))
		tmp := 1 + alpha/gain
		c.C = [3]float64{(1 + alpha*gain) / tmp, -2 * cs / tmp, (1 - alpha*gain) / tmp}
		c.D = [3]float64{0, 2 * cs / tmp, -(1 - alpha/gain) / tmp}

	case TypeLowShelf:
		c.Order = 2
		if zero {
			c.C[0] = gain
			break
		}

		sn, cs := sinCos(freq, sampleRate)
		sq := math.Sqrt(max(q, minAlphaQ))
		beta := math.Sqrt(gain) / sq
		tmp := (gain + 1) + (gain-1)*cs + beta*sn
		c.C = [3]float64{
			gain * ((gain + 1) - (gain-1)*cs + beta*sn) / tmp,
			2 * gain * ((gain - 1) - (gain+1)*cs) / tmp,
			gain * ((gain + 1) - (gain-1)*cs - beta*sn) / tmp,
		}
		c.D = [3]float64{
			0,
			2 * ((gain - 1) + (gain+1)*cs) / tmp,
			-((gain + 1) + (gain-1)*cs - beta*sn) / tmp,
		}

	case TypeHighShelf:
		c.Order = 2
		if zero {
			c.C[0] = 1
			break
		}

		sn, cs := sinCos(freq, sampleRate)
		sq := math.Sqrt(max(q, minAlphaQ))
		beta := math.Sqrt(gain) / sq
		tmp := (gain + 1) - (gain-1)*cs + beta*sn
		c.C = [3]float64{
			gain * ((gain + 1) + (gain-1)*cs + beta*sn) / tmp,
			-2 * gain * ((gain - 1) + (gain+1)*cs) / tmp,
			gain * ((gain + 1) + (gain-1)*cs - beta*sn) / tmp,
		}
		c.D = [3]float64{
			0,
			-2 * ((gain - 1) - (gain+1)*cs) / tmp,
			-((gain + 1) - (gain-1)*cs - beta*sn) / tmp,
		}
	}

	return c, d.Type
}

func sinCos(freq, sampleRate float64) (float64, float64) {
	return math.Sincos(2 * math.Pi * freq / sampleRate)
}

// poles returns the feedback terms shared by the 2-pole lowpass, highpass,
// bandpass and notch responses.
func poles(cs, alpha, tmp float64) [3]float64 {
	return [3]float64{0, 2 * cs / tmp, -(1 - alpha) / tmp}
}
