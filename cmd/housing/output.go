package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/JonMunkholm/housing/internal/core"
	"golang.org/x/term"
)

// ANSI styles used when color is enabled.
const (
	ansiReset = "\033[0m"
	ansiBold  = "\033[1m"
	ansiDim   = "\033[2m"
	ansiCyan  = "\033[36m"
)

var categoryColors = map[core.Category]string{
	core.LowRise:  "\033[32m", // green
	core.MidRise:  "\033[33m", // yellow
	core.HighRise: "\033[31m", // red
}

type textOptions struct {
	List  bool // include the per-house table
	Color bool
}

// colorEnabled reports whether w is a terminal and NO_COLOR is unset.
func colorEnabled(w io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// writeText prints the category counts in band order, then the
// minimum-ratio address, then optionally every house.
func writeText(w io.Writer, r *core.Report, opts textOptions) error {
	style := func(code, s string) string {
		if !opts.Color || code == "" {
			return s
		}
		return code + s + ansiReset
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "%s\n", style(ansiBold, "Houses by height"))
	fmt.Fprintf(tw, "%s\n", style(ansiDim, fmt.Sprintf("source %s, %d houses", r.Source, len(r.Houses))))
	for _, cc := range r.OrderedCounts() {
		fmt.Fprintf(tw, "  %s\t%d\n", style(categoryColors[cc.Category], cc.Category.String()), cc.Count)
	}

	fmt.Fprintf(tw, "\n%s %s (%s per resident)\n",
		style(ansiBold, "Smallest area per resident:"),
		style(ansiCyan, r.MinArea.Address),
		strconv.FormatFloat(r.MinArea.Ratio, 'f', 2, 64),
	)

	if opts.List {
		fmt.Fprintf(tw, "\n%s\n", style(ansiBold, "Houses"))
		for _, h := range r.Houses {
			fmt.Fprintf(tw, "  %s\t%d floors\t%s\n",
				h.Address, h.FloorCount, style(categoryColors[h.Category], h.Category.String()))
		}
	}

	return tw.Flush()
}
