// Package main provides fixturesplit, which splits packed COMB_* stanzas of
// a flash test fixture read from stdin and writes the result to stdout.
package main

import (
	"flag"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/sarchlab/flashfix/fixture"
)

var verbose = flag.Bool("v", false, "Print statistics to stderr")

func main() {
	flag.Parse()

	if flag.NArg() != 0 {
		fmt.Fprintf(os.Stderr, "Usage: fixturesplit [options] < in > out\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintf(os.Stderr, "Reading fixture from terminal, end input with Ctrl-D\n")
	}

	rewriter := fixture.NewRewriter(os.Stdout)
	if err := rewriter.Rewrite(os.Stdin); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *verbose {
		stats := rewriter.Stats()
		fmt.Fprintf(os.Stderr, "Lines read: %d\n", stats.Lines)
		fmt.Fprintf(os.Stderr, "Stanzas: %d (split: %d)\n", stats.Stanzas, stats.SplitStanzas)
		fmt.Fprintf(os.Stderr, "Stanzas written: %d\n", stats.EmittedStanzas)
	}
}
