package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/hailam/chessrules/internal/replay"
)

func main() {
	pgnPath := flag.String("pgn", "", "PGN file to replay (default: stdin)")
	verbose := flag.Bool("v", false, "print every move")
	flag.Parse()

	var in io.Reader = os.Stdin
	if *pgnPath != "" {
		f, err := os.Open(*pgnPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open: %v\n", err)
			os.Exit(2)
		}
		defer f.Close()
		in = f
	}

	res, err := replay.Game(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "replay: %v\n", err)
		os.Exit(1)
	}

	if *verbose {
		for i, m := range res.Moves {
			fmt.Printf("%3d. %s\n", i+1, m.LongString())
		}
	}
	fmt.Printf("Plies:   %d\n", res.Plies)
	fmt.Printf("Result:  %s\n", res.Outcome)
	fmt.Printf("Status:  %s\n", res.Status)
	fmt.Printf("Fen:     %s\n", res.FEN)
}
