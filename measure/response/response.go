package response

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-synthfilter/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

const (
	defaultFFTSize   = 8192
	defaultBlockSize = 256
	minFFTSize       = 16
)

// Errors returned by Measure and ToneGain.
var (
	ErrNilProcessor      = errors.New("response: nil processor")
	ErrInvalidSampleRate = errors.New("response: sample rate must be positive")
)

// Processor filters a block in place. Every filter engine satisfies it.
type Processor interface {
	Process(buf []float64)
}

type config struct {
	fftSize   int
	blockSize int
}

// Option configures Measure and ToneGain.
type Option func(*config)

// WithFFTSize sets the analysis length in samples. It must be a power of two
// of at least 16; other values make Measure and ToneGain fail.
func WithFFTSize(n int) Option {
	return func(c *config) {
		c.fftSize = n
	}
}

// WithBlockSize sets the block length the processor is driven with.
// Non-positive values are ignored.
func WithBlockSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.blockSize = n
		}
	}
}

func newConfig(opts []Option) (config, error) {
	cfg := config{fftSize: defaultFFTSize, blockSize: defaultBlockSize}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.fftSize < minFFTSize || cfg.fftSize&(cfg.fftSize-1) != 0 {
		return cfg, fmt.Errorf("response: fft size must be a power of two >= %d: %d", minFFTSize, cfg.fftSize)
	}

	return cfg, nil
}

func validSampleRate(sampleRate float64) bool {
	return sampleRate > 0 && !math.IsNaN(sampleRate) && !math.IsInf(sampleRate, 0)
}

// Curve is a measured magnitude response on the FFT bin grid.
type Curve struct {
	SampleRate float64
	FFTSize    int
	// Magnitude holds the linear magnitude of bins 0..FFTSize/2.
	Magnitude []float64
}

// BinHz returns the bin spacing in Hz.
func (c *Curve) BinHz() float64 {
	return c.SampleRate / float64(c.FFTSize)
}

// At returns the linear magnitude at freqHz, interpolated between the
// neighbouring bins. Frequencies outside [0, Nyquist] are clamped.
func (c *Curve) At(freqHz float64) float64 {
	if len(c.Magnitude) == 0 {
		return 0
	}

	last := len(c.Magnitude) - 1
	pos := core.Clamp(freqHz/c.BinHz(), 0, float64(last))

	i := int(pos)
	if i >= last {
		return c.Magnitude[last]
	}

	frac := pos - float64(i)

	return c.Magnitude[i] + (c.Magnitude[i+1]-c.Magnitude[i])*frac
}

// AtDB returns At(freqHz) in dB.
func (c *Curve) AtDB(freqHz float64) float64 {
	return core.LinearToDB(c.At(freqHz))
}

// Measure drives p with a unit impulse followed by silence, FFTSize samples
// in total, and returns the magnitude spectrum of the output. The impulse
// response must have decayed within the analysis length for the result to
// be meaningful.
func Measure(p Processor, sampleRate float64, opts ...Option) (Curve, error) {
	if p == nil {
		return Curve{}, ErrNilProcessor
	}

	if !validSampleRate(sampleRate) {
		return Curve{}, ErrInvalidSampleRate
	}

	cfg, err := newConfig(opts)
	if err != nil {
		return Curve{}, err
	}

	ir := make([]float64, cfg.fftSize)
	ir[0] = 1
	drive(p, ir, cfg.blockSize)

	in := make([]complex128, cfg.fftSize)
	for i, v := range ir {
		in[i] = complex(v, 0)
	}

	plan, err := algofft.NewPlan64(cfg.fftSize)
	if err != nil {
		return Curve{}, fmt.Errorf("response: fft plan: %w", err)
	}

	out := make([]complex128, cfg.fftSize)
	if err := plan.Forward(out, in); err != nil {
		return Curve{}, fmt.Errorf("response: fft: %w", err)
	}

	bins := cfg.fftSize/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)

	for k := range bins {
		re[k] = real(out[k])
		im[k] = imag(out[k])
	}

	mag := make([]float64, bins)
	vecmath.Magnitude(mag, re, im)

	return Curve{
		SampleRate: sampleRate,
		FFTSize:    cfg.fftSize,
		Magnitude:  mag,
	}, nil
}

// drive runs p over sig in consecutive blocks of at most blockSize samples.
func drive(p Processor, sig []float64, blockSize int) {
	for start := 0; start < len(sig); start += blockSize {
		p.Process(sig[start:min(start+blockSize, len(sig))])
	}
}
