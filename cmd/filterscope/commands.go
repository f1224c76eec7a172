package main

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strconv"

	"github.com/cwbudde/algo-synthfilter/dsp/core"
	"github.com/cwbudde/algo-synthfilter/dsp/filter/analog"
	"github.com/cwbudde/algo-synthfilter/dsp/filter/params"
	"github.com/cwbudde/algo-synthfilter/dsp/filter/svf"
	"github.com/cwbudde/algo-synthfilter/dsp/filter/synth"
	"github.com/cwbudde/algo-synthfilter/measure/response"
)

const (
	plotFloorDB = -60.0
	plotTopDB   = 24.0
)

type responseCmd struct {
	Engine string  `enum:"analog,svf" default:"analog" help:"Filter engine (analog or svf)."`
	Type   string  `short:"t" default:"lpf2" help:"Response: lpf1, hpf1, lpf2, hpf2, bpf2, notch, peak, lowshelf, highshelf (analog); low, high, band, notch (svf)."`
	Freq   float64 `short:"f" default:"1000" help:"Cutoff or center frequency in Hz."`
	Q      float64 `short:"q" default:"0.707" help:"Resonance."`
	Stages int     `short:"s" default:"0" help:"Additional cascaded stages (0-5)."`
	Gain   float64 `short:"g" default:"0" help:"Peak and shelf gain in dB."`
	Points int     `short:"n" default:"24" help:"Number of log-spaced frequencies."`
	Min    float64 `default:"20" help:"Lowest plotted frequency in Hz."`
	FFT    int     `name:"fft" default:"16384" help:"FFT size of the measured response."`
}

func (c *responseCmd) Run(g *Globals) error {
	env := g.env()

	var (
		proc     response.Processor
		analytic func(hz float64) float64
		title    string
		radius   string
	)

	switch c.Engine {
	case "svf":
		typ, err := parseSVFType(c.Type)
		if err != nil {
			return err
		}

		proc = svf.New(env, typ, c.Freq, c.Q, c.Stages)
		title = "state-variable " + typ.String()

	default:
		typ, err := parseAnalogType(c.Type)
		if err != nil {
			return err
		}

		f := analog.New(env, typ, c.Freq, c.Q, c.Stages)
		f.SetGain(c.Gain)

		proc = f.Clone()
		analytic = f.FrequencyResponse
		title = "analog " + typ.String()

		coeffs := f.Coefficients()
		b := coeffs.Biquad()
		radius = fmt.Sprintf("%.6f", b.PoleRadius())
	}

	curve, err := response.Measure(proc, env.SampleRate(),
		response.WithFFTSize(c.FFT),
		response.WithBlockSize(env.BlockSize()),
	)
	if err != nil {
		return err
	}

	printTitle(title)
	printKV("Frequency", fmt.Sprintf("%.1f Hz", c.Freq))
	printKV("Q", c.Q)
	printKV("Stages", c.Stages+1)
	printKV("Sample rate", fmt.Sprintf("%.0f Hz", env.SampleRate()))
	if radius != "" {
		printKV("Pole radius", radius)
	}

	headers := []string{"Hz", "measured dB", "analytic dB", ""}
	width := barWidth()

	var rows [][]string
	for _, hz := range logGrid(c.Min, env.SampleRate()/2, c.Points) {
		measured := curve.AtDB(hz)

		ref := "-"
		if analytic != nil {
			ref = formatDB(core.LinearToDB(analytic(hz)))
		}

		rows = append(rows, []string{
			formatHz(hz),
			formatDB(measured),
			ref,
			bar(measured, plotFloorDB, plotTopDB, width),
		})
	}

	printTable(headers, rows)

	return nil
}

type formantCmd struct {
	Vowel    int   `short:"v" default:"0" help:"Vowel index (0-5)."`
	Formants uint8 `default:"3" help:"Number of formants (1-12)."`
	Q        uint8 `short:"q" default:"64" help:"Resonance control (0-127)."`
	Points   int   `short:"n" default:"32" help:"Number of points along the formant axis."`
}

func (c *formantCmd) Run(g *Globals) error {
	if c.Vowel < 0 || c.Vowel >= params.MaxVowels {
		return fmt.Errorf("vowel must be between 0 and %d: %d", params.MaxVowels-1, c.Vowel)
	}

	if c.Points <= 0 {
		return fmt.Errorf("points must be positive: %d", c.Points)
	}

	env := g.env()
	p := params.New(0, 64, c.Q, core.RandomFunc(env.RandomUint32))
	p.Update(func(p *params.Params) {
		p.Category = params.CategoryFormant
		p.NumFormants = c.Formants
	})

	printTitle(fmt.Sprintf("vowel %d", c.Vowel))

	var formants [][]string
	for i := range p.FormantCount() {
		f := p.Vowels[c.Vowel].Formants[i]
		formants = append(formants, []string{
			strconv.Itoa(i),
			formatHz(p.FormantFreqHz(f.Freq)),
			fmt.Sprintf("%.3f", p.FormantAmp(f.Amp)),
			fmt.Sprintf("%.2f", p.FormantQ(f.Q)),
		})
	}

	printTable([]string{"#", "Hz", "amp", "Q"}, formants)

	curve := make([]float64, c.Points)
	p.FormantResponse(c.Vowel, curve, env.SampleRate())

	width := barWidth()

	var rows [][]string
	for i, db := range curve {
		rows = append(rows, []string{
			formatHz(p.FreqX(float64(i) / float64(len(curve)))),
			formatDB(db),
			bar(db, plotFloorDB, plotTopDB, width),
		})
	}

	printTable([]string{"Hz", "dB", ""}, rows)

	return nil
}

type sweepCmd struct {
	Category string  `enum:"analog,formant,svf" default:"analog" help:"Engine category (analog, formant or svf)."`
	Type     uint8   `short:"t" default:"2" help:"Raw type control of the engine."`
	Q        uint8   `short:"q" default:"64" help:"Resonance control (0-127)."`
	From     float64 `default:"-3" help:"Start pitch in octaves relative to 1 kHz, or sequence position for formant."`
	To       float64 `default:"3" help:"End pitch."`
	Blocks   int     `default:"24" help:"Number of blocks in the sweep."`
}

var categories = map[string]params.Category{
	"analog":  params.CategoryAnalog,
	"formant": params.CategoryFormant,
	"svf":     params.CategoryStateVariable,
}

func (c *sweepCmd) Run(g *Globals) error {
	if c.Blocks < 2 {
		return fmt.Errorf("blocks must be at least 2: %d", c.Blocks)
	}

	env := g.env()
	p := params.New(c.Type, 64, c.Q, core.RandomFunc(env.RandomUint32))
	p.Update(func(p *params.Params) {
		p.Category = categories[c.Category]
	})

	f := synth.New(env, p)
	rng := rand.New(rand.NewPCG(g.Seed, g.Seed+1))
	buf := make([]float64, env.BlockSize())
	width := barWidth()

	printTitle("sweep " + f.Category().String())

	var rows [][]string
	for i := range c.Blocks {
		pitch := c.From + (c.To-c.From)*float64(i)/float64(c.Blocks-1)
		f.SetFrequency(f.RealFrequency(pitch))

		for j := range buf {
			buf[j] = rng.Float64()*2 - 1
		}

		in := rms(buf)
		f.Process(buf)
		level := core.LinearToDB(rms(buf) / in)

		rows = append(rows, []string{
			fmt.Sprintf("%+.2f", pitch),
			formatHz(f.RealFrequency(pitch)),
			formatDB(level),
			bar(level, plotFloorDB, plotTopDB, width),
		})
	}

	printTable([]string{"pitch", "Hz", "level dB", ""}, rows)

	return nil
}

func parseAnalogType(name string) (analog.Type, error) {
	for t := analog.TypeLowpass1; t.Valid(); t++ {
		if t.String() == name {
			return t, nil
		}
	}

	return 0, fmt.Errorf("unknown analog type %q", name)
}

func parseSVFType(name string) (svf.Type, error) {
	for t := svf.TypeLowpass; t.Valid(); t++ {
		if t.String() == name {
			return t, nil
		}
	}

	return 0, fmt.Errorf("unknown svf type %q", name)
}

func formatHz(hz float64) string {
	if hz >= 1000 {
		return fmt.Sprintf("%.2fk", hz/1000)
	}

	return fmt.Sprintf("%.1f", hz)
}

func formatDB(db float64) string {
	if math.IsInf(db, -1) {
		return "-inf"
	}

	return fmt.Sprintf("%.2f", db)
}

func rms(buf []float64) float64 {
	if len(buf) == 0 {
		return 0
	}

	var sum float64
	for _, v := range buf {
		sum += v * v
	}

	return math.Sqrt(sum / float64(len(buf)))
}
