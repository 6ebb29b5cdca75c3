package engine

import (
	"context"
	"errors"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/hailam/chessrules/internal/board"
)

// Search constants
const (
	Infinity  = 1 << 30
	MateScore = 100000
	MaxPly    = 64
)

// ErrStopped is returned when a search is aborted by Stop or its context.
var ErrStopped = errors.New("search stopped")

// Result is the outcome of a fixed-depth search.
type Result struct {
	Move  board.Move
	Score int
	Nodes uint64
	PV    []board.Move
}

// Searcher runs fixed-depth negamax over the legal move tree. Root moves
// can be searched concurrently, each on its own copy of the position.
type Searcher struct {
	// Workers bounds the number of root moves searched at once. Zero means
	// GOMAXPROCS; one searches sequentially.
	Workers int

	nodes    atomic.Uint64
	stopFlag atomic.Bool
}

// NewSearcher creates a new searcher.
func NewSearcher(workers int) *Searcher {
	return &Searcher{Workers: workers}
}

// Stop signals the search to stop.
func (s *Searcher) Stop() {
	s.stopFlag.Store(true)
}

// Reset clears the stop flag and node counter.
func (s *Searcher) Reset() {
	s.stopFlag.Store(false)
	s.nodes.Store(0)
}

// Nodes returns the number of nodes searched.
func (s *Searcher) Nodes() uint64 {
	return s.nodes.Load()
}

// IsStopped returns true if the search has been stopped.
func (s *Searcher) IsStopped() bool {
	return s.stopFlag.Load()
}

// Search returns the best move for the side to move at the given depth.
// A position without legal moves yields board.NoMove and the terminal
// score. Ties go to the first move in canonical order.
func (s *Searcher) Search(ctx context.Context, pos *board.Position, depth int) (Result, error) {
	if depth < 1 {
		depth = 1
	}
	if depth > MaxPly {
		depth = MaxPly
	}

	moves := pos.GenerateLegalMoves()
	moves.Sort()
	if moves.Len() == 0 {
		s.nodes.Add(1)
		return Result{Move: board.NoMove, Score: terminalScore(pos, depth), Nodes: s.Nodes()}, nil
	}

	type rootResult struct {
		score int
		pv    []board.Move
	}
	results := make([]rootResult, moves.Len())

	workers := s.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, m := range moves.Slice() {
		g.Go(func() error {
			pv := make([]board.Move, 0, depth)
			score, err := s.negamax(ctx, pos.MakeMove(m), depth-1, -Infinity, Infinity, &pv)
			if err != nil {
				return err
			}
			results[i] = rootResult{score: -score, pv: append([]board.Move{m}, pv...)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	best := 0
	for i := range results {
		if results[i].score > results[best].score {
			best = i
		}
	}
	return Result{
		Move:  moves.Get(best),
		Score: results[best].score,
		Nodes: s.Nodes(),
		PV:    results[best].pv,
	}, nil
}

// negamax returns the score of pos for its side to move and fills pv with
// the best line found below it.
func (s *Searcher) negamax(ctx context.Context, pos *board.Position, depth, alpha, beta int, pv *[]board.Move) (int, error) {
	s.nodes.Add(1)
	*pv = (*pv)[:0]

	if s.stopFlag.Load() {
		return 0, ErrStopped
	}
	if depth <= 0 {
		return Evaluate(pos), nil
	}
	if depth >= 2 {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
	}

	moves := pos.GenerateLegalMoves()
	if moves.Len() == 0 {
		return terminalScore(pos, depth), nil
	}
	moves.Sort()

	child := make([]board.Move, 0, depth)
	best := -Infinity
	for _, m := range moves.Slice() {
		score, err := s.negamax(ctx, pos.MakeMove(m), depth-1, -beta, -alpha, &child)
		if err != nil {
			return 0, err
		}
		score = -score
		if score > best {
			best = score
			*pv = append(append((*pv)[:0], m), child...)
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			break
		}
	}
	return best, nil
}

// terminalScore scores a node with no legal moves. Being mated with more
// depth left, which means sooner, scores lower.
func terminalScore(pos *board.Position, depth int) int {
	if pos.InCheck() {
		return -MateScore - depth
	}
	return 0
}
