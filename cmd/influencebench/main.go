package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	gm "chess-influence/goosemg"
	"chess-influence/influence"
)

func main() {
	fen := flag.String("fen", gm.FENStartPos, "FEN string (defaults to initial position)")
	depth := flag.Int("depth", 0, "Propagation depth (required)")
	repeat := flag.Int("repeat", 1, "Repeat the computation N times and report aggregate (for steadier timings)")
	label := flag.String("label", "", "Optional label prefix for one-line output")
	cpuProf := flag.String("cpuprofile", "", "Write CPU profile to file during run")
	memProf := flag.String("memprofile", "", "Write heap profile to file after run")
	flag.Parse()

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		os.Exit(2)
	}
	if *repeat <= 0 {
		*repeat = 1
	}

	board, err := gm.ParseFEN(*fen)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ParseFEN error: %v\n", err)
		os.Exit(2)
	}

	// The default table stops at depth 3; deeper runs reuse its last weight.
	weights := influence.DefaultWeights()
	if *depth > weights.MaxDepth() {
		entries := weights.Entries()
		last := entries[len(entries)-1].Weight
		for d := len(entries) + 1; d <= *depth; d++ {
			entries = append(entries, influence.DepthWeight{Depth: d, Weight: last})
		}
		if weights, err = influence.NewWeights(entries...); err != nil {
			fmt.Fprintf(os.Stderr, "weights: %v\n", err)
			os.Exit(2)
		}
	}
	calc := influence.NewCalculator(weights)

	if *cpuProf != "" {
		f, err := os.Create(*cpuProf)
		if err != nil {
			fmt.Fprintf(os.Stderr, "creating cpuprofile: %v\n", err)
			os.Exit(2)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "start cpu profile: %v\n", err)
			os.Exit(2)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	var grid *influence.Grid
	start := time.Now()
	for i := 0; i < *repeat; i++ {
		if grid, err = calc.ComputeBoard(board, *depth); err != nil {
			fmt.Fprintf(os.Stderr, "compute: %v\n", err)
			os.Exit(1)
		}
	}
	elapsed := time.Since(start)
	perCall := elapsed / time.Duration(*repeat)

	// Single line: Label Depth First Second Time PerCall
	fmt.Printf("%s \t%d \t%.2f \t%.2f \t%s \t%s\n", *label, *depth,
		grid.Total(influence.First), grid.Total(influence.Second), elapsed, perCall)

	if *memProf != "" {
		f, err := os.Create(*memProf)
		if err != nil {
			fmt.Fprintf(os.Stderr, "creating memprofile: %v\n", err)
			os.Exit(2)
		}
		if err := pprof.WriteHeapProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "write heap profile: %v\n", err)
			os.Exit(2)
		}
		_ = f.Close()
	}
}
