// Package main provides splitregs, which halves every registerValues record
// of an instruction test definition read from stdin.
package main

import (
	"fmt"
	"os"

	"github.com/sarchlab/flashfix/regsplit"
)

func main() {
	if err := regsplit.Rewrite(os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
