package core

import "math/rand/v2"

const (
	defaultSampleRate = 48000
	defaultBlockSize  = 256
	bytesPerSample    = 8
)

// RandomSource yields uniformly distributed 32-bit integers.
// *rand.Rand from math/rand/v2 satisfies it.
type RandomSource interface {
	Uint32() uint32
}

// RandomFunc adapts a plain function, such as Env.RandomUint32, to
// RandomSource.
type RandomFunc func() uint32

// Uint32 calls f.
func (f RandomFunc) Uint32() uint32 { return f() }

// Env is the engine-wide context the filter engines read from: sample rate,
// the processing block length and a random number capability.
type Env interface {
	SampleRate() float64
	// HalfSampleRate is the Nyquist frequency.
	HalfSampleRate() float64
	BlockSize() int
	// BlockBytes is the byte size of one block of float64 samples.
	BlockBytes() int
	RandomUint32() uint32
}

// Engine is the default Env implementation. It is immutable after
// construction except for the state of its random source.
type Engine struct {
	sampleRate float64
	blockSize  int
	rng        RandomSource
}

// EngineOption mutates an Engine under construction.
type EngineOption func(*Engine)

// WithSampleRate sets the processing sample rate.
func WithSampleRate(sampleRate float64) EngineOption {
	return func(e *Engine) {
		if sampleRate > 0 {
			e.sampleRate = sampleRate
		}
	}
}

// WithBlockSize sets the processing block size.
func WithBlockSize(blockSize int) EngineOption {
	return func(e *Engine) {
		if blockSize > 0 {
			e.blockSize = blockSize
		}
	}
}

// WithRandom injects the random source used for formant defaults.
// Pass a seeded generator for reproducible parameter sets.
func WithRandom(src RandomSource) EngineOption {
	return func(e *Engine) {
		if src != nil {
			e.rng = src
		}
	}
}

// WithSeed is shorthand for WithRandom with a PCG generator seeded by seed.
func WithSeed(seed uint64) EngineOption {
	return WithRandom(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// NewEngine applies zero or more options to the defaults
// (48 kHz, 256-sample blocks, process-wide random source).
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		sampleRate: defaultSampleRate,
		blockSize:  defaultBlockSize,
		rng:        globalRandom{},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}

	return e
}

// SampleRate returns the sample rate in Hz.
func (e *Engine) SampleRate() float64 { return e.sampleRate }

// HalfSampleRate returns the Nyquist frequency in Hz.
func (e *Engine) HalfSampleRate() float64 { return e.sampleRate / 2 }

// BlockSize returns the nominal block length in samples.
func (e *Engine) BlockSize() int { return e.blockSize }

// BlockBytes returns the nominal block length in bytes.
func (e *Engine) BlockBytes() int { return e.blockSize * bytesPerSample }

// RandomUint32 draws one value from the configured random source.
func (e *Engine) RandomUint32() uint32 { return e.rng.Uint32() }

type globalRandom struct{}

func (globalRandom) Uint32() uint32 { return rand.Uint32() }
