// Package formant implements the vowel filter engine: a bank of parallel
// band-pass analog filters whose frequencies, amplitudes and resonances are
// blended along a user-defined sequence of vowels.
//
// The engine has no direct frequency control. Its "frequency" input is a
// position along the vowel sequence, usually driven by an LFO or envelope;
// SetFrequency and SetPosition are equivalent. Formant parameters follow the
// position with a configurable slew so vowel changes glide instead of jump.
package formant
