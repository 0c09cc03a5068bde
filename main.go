// Package main provides the entry point for flashfix.
// flashfix generates and normalizes fixtures for the flash cache timing tests.
//
// The tools live under cmd/.
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("flashfix - flash cache test fixture tools")
	fmt.Println("")
	fmt.Println("Tools:")
	fmt.Println("  fixturesplit  Split packed COMB_* stanzas (stdin -> stdout)")
	fmt.Println("  shifts        Build the RNG shift table from recorded results")
	fmt.Println("  genldrs       Print random ldr.n instructions")
	fmt.Println("  splitregs     Halve registerValues records (stdin -> stdout)")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/<tool> -h' for options.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/<tool>' instead.")
	}
}
