// Package main provides shifts, which turns recorded RNG windows of the
// flash cache timing tests into the RNG shift table.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sarchlab/flashfix/timing/shift"
)

var (
	configPath  = flag.String("config", "", "Path to shift configuration JSON file")
	resultsPath = flag.String("results", "", "Path to recorded results JSON file")
	plan        = flag.Bool("plan", false, "Print the second-load address plan and exit")
	verbose     = flag.Bool("v", false, "Verbose output")
)

func main() {
	flag.Parse()

	config := shift.DefaultConfig()
	if *configPath != "" {
		var err error
		config, err = shift.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading shift config: %v\n", err)
			os.Exit(1)
		}
	}
	if err := config.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid shift config: %v\n", err)
		os.Exit(1)
	}

	if *plan {
		printPlan(os.Stdout, config)
		return
	}

	if flag.NArg() != 1 || *resultsPath == "" {
		fmt.Fprintf(os.Stderr, "Usage: shifts [options] -results <results.json> <out_file>\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	data, err := shift.LoadData(*resultsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading results: %v\n", err)
		os.Exit(1)
	}

	rows, err := shift.NewBuilder(config).Build(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	outPath := flag.Arg(0)
	if err := writeTable(outPath, rows); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *verbose {
		fmt.Printf("Experiments: %d\n", len(shift.Experiments()))
		fmt.Printf("Rows written: %d\n", len(rows))
		fmt.Printf("Output: %s\n", outPath)
	}
}

func writeTable(path string, rows []shift.Row) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := shift.WriteCSV(f, rows); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func printPlan(w io.Writer, config *shift.Config) {
	fmt.Fprintf(w, "Cache: %dB lines, %d sets, %d ways\n",
		config.Cache.LineSize, config.Cache.Sets, config.Cache.Ways)
	for _, p := range shift.NewPlan(config.Cache, config.BaseAddress) {
		fmt.Fprintf(w, "  %-22s first=%#06x second=%#06x set %3d -> %3d tag=%#x evicts_first=%t\n",
			p.Variant, p.FirstAddr, p.SecondAddr, p.FirstSet, p.SecondSet, p.SecondTag, p.FirstEvicts)
	}
}
