package biquad

// Coefficients holds the transfer function coefficients for a single
// second-order section (biquad). a0 is normalized to 1 and not stored.
type Coefficients struct {
	B0, B1, B2 float64 // feedforward (numerator)
	A1, A2     float64 // feedback (denominator)
}

// FromDirectForm converts feedforward c and added-feedback d coefficients of
// the difference equation
//
//	y[n] = c0 x[n] + c1 x[n-1] + c2 x[n-2] + d1 y[n-1] + d2 y[n-2]
//
// into normalized transfer-function form. d[0] is ignored.
func FromDirectForm(c, d [3]float64) Coefficients {
	return Coefficients{
		B0: c[0],
		B1: c[1],
		B2: c[2],
		A1: -d[1],
		A2: -d[2],
	}
}

// DirectForm is the inverse of FromDirectForm.
func (c *Coefficients) DirectForm() (ff, fb [3]float64) {
	return [3]float64{c.B0, c.B1, c.B2}, [3]float64{0, -c.A1, -c.A2}
}
