package main

import (
	"math"
	"os"
	"strings"

	"golang.org/x/term"
)

const (
	defaultWidth = 80
	// tableOverhead is the horizontal space taken by the numeric columns.
	tableOverhead = 48
	minBarWidth   = 10
)

// terminalWidth returns the width of stdout, or defaultWidth when stdout is
// not a terminal.
func terminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return defaultWidth
	}

	return w
}

func barWidth() int {
	return max(terminalWidth()-tableOverhead, minBarWidth)
}

// logGrid returns n frequencies spaced logarithmically from lo to hi
// inclusive.
func logGrid(lo, hi float64, n int) []float64 {
	if n <= 0 || lo <= 0 || hi <= 0 {
		return nil
	}

	if n == 1 {
		return []float64{lo}
	}

	out := make([]float64, n)
	ratio := math.Log(hi / lo)

	for i := range out {
		out[i] = lo * math.Exp(ratio*float64(i)/float64(n-1))
	}

	return out
}

// bar draws v on a scale from lo to hi as a run of block characters at most
// width cells long.
func bar(v, lo, hi float64, width int) string {
	if width <= 0 || hi <= lo || math.IsNaN(v) {
		return ""
	}

	frac := (min(max(v, lo), hi) - lo) / (hi - lo)

	return barStyle.Render(strings.Repeat("█", int(math.Round(frac*float64(width)))))
}
