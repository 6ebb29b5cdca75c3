// Package perft counts the leaves of the legal move tree, the standard
// correctness check for a move generator.
package perft

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/hailam/chessrules/internal/board"
)

// Entry is the node count below one root move.
type Entry struct {
	Move  board.Move
	Nodes uint64
}

// Count returns the number of leaf nodes depth plies below pos. Depth 0
// counts the position itself. pos is not modified.
func Count(pos *board.Position, depth int) uint64 {
	if depth <= 0 {
		return 1
	}

	moves := pos.GenerateLegalMoves()
	if depth == 1 {
		return uint64(moves.Len())
	}

	var nodes uint64
	for _, m := range moves.Slice() {
		child := *pos
		child.ApplyMove(m)
		nodes += Count(&child, depth-1)
	}
	return nodes
}

// Divide returns the node count below each legal root move, in canonical
// move order.
func Divide(pos *board.Position, depth int) []Entry {
	if depth <= 0 {
		return nil
	}
	moves := pos.GenerateLegalMoves()
	moves.Sort()

	entries := make([]Entry, 0, moves.Len())
	for _, m := range moves.Slice() {
		entries = append(entries, Entry{Move: m, Nodes: Count(pos.MakeMove(m), depth-1)})
	}
	return entries
}

// Total sums the node counts of a divide.
func Total(entries []Entry) uint64 {
	var sum uint64
	for _, e := range entries {
		sum += e.Nodes
	}
	return sum
}

// ParallelDivide is Divide with each root subtree counted on its own
// goroutine and position copy. At most workers subtrees run at once; zero
// means GOMAXPROCS. onResult, if non-nil, is called once per root move as it
// completes, never concurrently. The returned entries are in canonical order.
func ParallelDivide(ctx context.Context, pos *board.Position, depth, workers int, onResult func(Entry)) ([]Entry, error) {
	if depth <= 0 {
		return nil, nil
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	moves := pos.GenerateLegalMoves()
	moves.Sort()
	entries := make([]Entry, moves.Len())

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, m := range moves.Slice() {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			nodes, err := countContext(ctx, pos.MakeMove(m), depth-1)
			if err != nil {
				return err
			}
			entries[i] = Entry{Move: m, Nodes: nodes}
			if onResult != nil {
				mu.Lock()
				onResult(entries[i])
				mu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return entries, nil
}

// countContext is Count with cancellation checked at every interior node.
func countContext(ctx context.Context, pos *board.Position, depth int) (uint64, error) {
	if depth <= 1 {
		return Count(pos, depth), nil
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	var nodes uint64
	for _, m := range pos.GenerateLegalMoves().Slice() {
		child := *pos
		child.ApplyMove(m)
		n, err := countContext(ctx, &child, depth-1)
		if err != nil {
			return 0, err
		}
		nodes += n
	}
	return nodes, nil
}
