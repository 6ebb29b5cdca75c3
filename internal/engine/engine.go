// Package engine is a small material-only search harness built on the
// rules in package board.
package engine

import (
	"context"
	"strconv"
	"time"

	"github.com/hailam/chessrules/internal/board"
)

// SearchInfo contains information about one completed iteration.
type SearchInfo struct {
	Depth int
	Score int
	Nodes uint64
	Time  time.Duration
	PV    []board.Move
}

// SearchLimits specifies constraints on the search.
type SearchLimits struct {
	Depth int    // Maximum depth (0 = DefaultDepth)
	Nodes uint64 // Stop deepening once this many nodes are searched (0 = no limit)
}

// DefaultDepth is used when SearchLimits.Depth is zero.
const DefaultDepth = 3

// Engine runs iterative deepening over a Searcher.
type Engine struct {
	searcher *Searcher

	// Callbacks
	OnInfo func(SearchInfo)
}

// NewEngine creates an engine that searches with the given number of
// root workers.
func NewEngine(workers int) *Engine {
	return &Engine{searcher: NewSearcher(workers)}
}

// Search finds the best move for the given position. It returns
// board.NoMove when the side to move has no legal move.
func (e *Engine) Search(ctx context.Context, pos *board.Position, limits SearchLimits) board.Move {
	e.searcher.Reset()

	startTime := time.Now()
	bestMove := board.NoMove

	maxDepth := limits.Depth
	if maxDepth <= 0 {
		maxDepth = DefaultDepth
	}

	for depth := 1; depth <= maxDepth; depth++ {
		res, err := e.searcher.Search(ctx, pos, depth)
		if err != nil {
			// Keep the last completed iteration.
			break
		}
		bestMove = res.Move

		if e.OnInfo != nil {
			e.OnInfo(SearchInfo{
				Depth: depth,
				Score: res.Score,
				Nodes: res.Nodes,
				Time:  time.Since(startTime),
				PV:    res.PV,
			})
		}

		if res.Move == board.NoMove || IsMateScore(res.Score) {
			break
		}
		if limits.Nodes > 0 && e.searcher.Nodes() >= limits.Nodes {
			break
		}
	}

	return bestMove
}

// SetWorkers sets how many root moves are searched at once. It must not be
// called during a search.
func (e *Engine) SetWorkers(n int) {
	e.searcher.Workers = n
}

// Stop stops the current search.
func (e *Engine) Stop() {
	e.searcher.Stop()
}

// Nodes returns the node count of the current or last search.
func (e *Engine) Nodes() uint64 {
	return e.searcher.Nodes()
}

// IsMateScore reports whether score encodes a forced mate.
func IsMateScore(score int) bool {
	return score >= MateScore || score <= -MateScore
}

// ScoreToString converts a score to a human-readable string.
func ScoreToString(score int) string {
	switch {
	case score >= MateScore:
		return "Mate"
	case score <= -MateScore:
		return "Mated"
	}
	return strconv.Itoa(score)
}
