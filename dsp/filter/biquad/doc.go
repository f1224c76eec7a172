// Package biquad provides transfer-function math for second-order IIR
// sections: complex and magnitude response, cascade magnitude, and
// pole/zero placement.
//
// [Coefficients] uses the normalized convention
//
//	H(z) = (B0 + B1 z^-1 + B2 z^-2) / (1 + A1 z^-1 + A2 z^-2)
//
// Synth filter engines that keep their feedback terms with the opposite
// sign convert with [FromDirectForm] before querying the response.
package biquad
