package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/perft"
)

func main() {
	fen := flag.String("fen", board.StartFEN, "position (defaults to the initial position)")
	depth := flag.Int("depth", 0, "Perft depth (required)")
	divide := flag.Bool("divide", false, "Print per-move node counts at root")
	workers := flag.Int("workers", 0, "Root subtrees counted in parallel (0 = GOMAXPROCS, 1 = sequential)")
	verify := flag.Bool("verify", false, "Compare the per-move counts against an independent move generator")
	cpuProf := flag.String("cpuprofile", "", "Write CPU profile to file during run")
	flag.Parse()

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		os.Exit(2)
	}

	pos, err := board.ParseFEN(*fen)
	if err == nil {
		err = pos.Validate()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "ParseFEN error: %v\n", err)
		os.Exit(2)
	}

	if *verify {
		mismatches, err := perft.CrossCheck(pos, *depth)
		if err != nil {
			fmt.Fprintf(os.Stderr, "verify: %v\n", err)
			os.Exit(2)
		}
		for _, m := range mismatches {
			fmt.Println(m)
		}
		if len(mismatches) > 0 {
			os.Exit(1)
		}
		fmt.Println("OK")
		return
	}

	start := time.Now()
	var entries []perft.Entry
	err = profile(*cpuProf, func() error {
		if *workers == 1 {
			entries = perft.Divide(pos, *depth)
			return nil
		}
		var err error
		entries, err = perft.ParallelDivide(context.Background(), pos, *depth, *workers, nil)
		return err
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "perft: %v\n", err)
		os.Exit(1)
	}
	elapsed := time.Since(start)
	total := perft.Total(entries)

	if *divide {
		for _, e := range entries {
			fmt.Printf("%s: %d\n", e.Move.UCI(), e.Nodes)
		}
		fmt.Printf("Total: %d\n", total)
		return
	}

	// Single line: Depth Nodes Time NPS
	fmt.Printf("%d \t\t%d \t\t%s \t%.0f\n", *depth, total, elapsed, float64(total)/elapsed.Seconds())
}

// profile runs fn, writing a CPU profile of it to path unless path is empty.
// The profile is stopped and flushed before profile returns, whatever fn
// returned.
func profile(path string, fn func() error) error {
	if path == "" {
		return fn()
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating cpuprofile: %w", err)
	}
	defer f.Close()
	if err := pprof.StartCPUProfile(f); err != nil {
		return fmt.Errorf("start cpu profile: %w", err)
	}
	defer pprof.StopCPUProfile()
	return fn()
}
