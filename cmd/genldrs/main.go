// Package main provides genldrs, which prints random ldr.n instructions for
// flash cache stress tests.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/sarchlab/flashfix/ldrgen"
)

var (
	count = flag.Int("n", 50, "Number of instructions")
	seed  = flag.Int64("seed", 0, "Random seed (0 picks one from the clock)")
)

func main() {
	flag.Parse()

	s := *seed
	if s == 0 {
		s = time.Now().UnixNano()
	}

	config := ldrgen.DefaultConfig()
	config.Count = *count

	if err := ldrgen.New(config, s).Write(os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
