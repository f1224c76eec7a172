// Command filterscope inspects the synthesizer filter engines from the
// terminal.
//
// Usage:
//
//	filterscope [flags] <command> [command-flags]
//
// Examples:
//
//	filterscope response --type lpf2 --freq 1000 --q 2
//	filterscope response --engine svf --type band --stages 2
//	filterscope formant --vowel 1 --formants 5
//	filterscope sweep --category formant --from 0 --to 1
package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/cwbudde/algo-synthfilter/dsp/core"
)

// Globals carries the flags shared by every sub-command.
type Globals struct {
	SampleRate float64
	BlockSize  int
	Seed       uint64
}

func (g *Globals) env() *core.Engine {
	return core.NewEngine(
		core.WithSampleRate(g.SampleRate),
		core.WithBlockSize(g.BlockSize),
		core.WithSeed(g.Seed),
	)
}

// CLI defines the command-line interface.
type CLI struct {
	SampleRate float64 `short:"r" default:"48000" help:"Sample rate in Hz."`
	BlockSize  int     `short:"b" default:"256" help:"Processing block size in samples."`
	Seed       uint64  `default:"1" help:"Seed for the randomized formant baselines."`

	Response responseCmd `cmd:"" help:"Print the magnitude response of an analog or state-variable filter."`
	Formant  formantCmd  `cmd:"" help:"Print the response curve of one formant vowel."`
	Sweep    sweepCmd    `cmd:"" help:"Sweep the cutoff over noise and print the output level per block."`
}

func main() {
	var cli CLI

	ctx := kong.Parse(&cli,
		kong.Name("filterscope"),
		kong.Description("Inspect synthesizer filter engines"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
	)

	err := ctx.Run(&Globals{
		SampleRate: cli.SampleRate,
		BlockSize:  cli.BlockSize,
		Seed:       cli.Seed,
	})
	if err != nil {
		printError(err.Error())
		os.Exit(1)
	}
}
