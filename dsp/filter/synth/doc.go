// Package synth provides the filter a synthesizer voice owns: one engine,
// chosen by the parameter category at construction, kept in sync with the
// shared parameter set.
//
// Frequencies reach the facade as pitches in octaves relative to 1 kHz (the
// sum of base frequency, key tracking and modulation); RealFrequency converts
// them to Hz for the analog and state-variable engines and passes them
// through unchanged as a sequence position for the formant engine.
package synth
