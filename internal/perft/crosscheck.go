package perft

import (
	"fmt"
	"slices"
	"strings"

	"github.com/dylhunn/dragontoothmg"

	"github.com/hailam/chessrules/internal/board"
)

// Mismatch is a root move on which this generator and the reference
// generator disagree. A count of zero on one side means that side did not
// generate the move at all.
type Mismatch struct {
	Move      string // coordinate form, e.g. "e7e8q"
	Nodes     uint64
	Reference uint64
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s: %d, reference %d", m.Move, m.Nodes, m.Reference)
}

// CrossCheck divides pos at depth with both this generator and dragontoothmg
// and returns the root moves whose counts differ, sorted by move.
func CrossCheck(pos *board.Position, depth int) ([]Mismatch, error) {
	if depth <= 0 {
		return nil, fmt.Errorf("crosscheck depth must be positive, got %d", depth)
	}

	ours := make(map[string]uint64)
	for _, e := range Divide(pos, depth) {
		ours[e.Move.UCI()] = e.Nodes
	}
	theirs := referenceDivide(pos.ToFEN(), depth)

	var out []Mismatch
	for mv, n := range ours {
		if ref := theirs[mv]; ref != n {
			out = append(out, Mismatch{Move: mv, Nodes: n, Reference: ref})
		}
	}
	for mv, ref := range theirs {
		if _, ok := ours[mv]; !ok {
			out = append(out, Mismatch{Move: mv, Reference: ref})
		}
	}
	slices.SortFunc(out, func(a, b Mismatch) int { return strings.Compare(a.Move, b.Move) })
	return out, nil
}

func referenceDivide(fen string, depth int) map[string]uint64 {
	// The reference parser wants the move counters.
	if len(strings.Fields(fen)) == 4 {
		fen += " 0 1"
	}
	b := dragontoothmg.ParseFen(fen)

	out := make(map[string]uint64)
	for _, m := range b.GenerateLegalMoves() {
		unapply := b.Apply(m)
		out[m.String()] = referenceCount(&b, depth-1)
		unapply()
	}
	return out
}

func referenceCount(b *dragontoothmg.Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := b.GenerateLegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		unapply := b.Apply(m)
		nodes += referenceCount(b, depth-1)
		unapply()
	}
	return nodes
}
