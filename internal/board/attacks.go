package board

// direction is a single-step file/rank delta.
type direction struct {
	df, dr int
}

// The first four are diagonals, the last four laterals. blockedMask bits
// are indexed the same way.
var rayDirections = [8]direction{
	{1, 1}, {-1, 1}, {1, -1}, {-1, -1},
	{0, 1}, {0, -1}, {1, 0}, {-1, 0},
}

var knightOffsets = [8]direction{
	{1, 2}, {2, 1}, {2, -1}, {1, -2},
	{-1, -2}, {-2, -1}, {-2, 1}, {-1, 2},
}

func isDiagonal(dir int) bool {
	return dir < 4
}

// slides reports whether a piece of type pt moves any distance along the
// given direction.
func slides(pt PieceType, dir int) bool {
	if pt == Queen {
		return true
	}
	if isDiagonal(dir) {
		return pt == Bishop
	}
	return pt == Rook
}

// IsSquareAttacked reports whether any piece of color by attacks sq.
// Squares off the board are never attacked. The result depends only on
// piece placement; side to move, castling rights and en passant state are
// ignored, and pins on the attacker do not matter.
func (p *Position) IsSquareAttacked(sq Square, by Color) bool {
	if sq >= NoSquare {
		return false
	}

	// Adjacent squares first. Any occupied neighbor, friend or foe, blocks
	// the ray through it for the sliding pass.
	var blocked uint8
	for i, d := range rayDirections {
		n, ok := sq.Offset(d.df, d.dr)
		if !ok {
			blocked |= 1 << i
			continue
		}
		pc := p.Board[n]
		if pc == NoPiece {
			continue
		}
		blocked |= 1 << i
		if pc.Color() != by {
			continue
		}
		pt := pc.Type()
		if pt == King || slides(pt, i) {
			return true
		}
		// A pawn attacks diagonally forward, so it must stand one rank
		// behind sq from its own point of view.
		if pt == Pawn && isDiagonal(i) && d.dr == -by.forward() {
			return true
		}
	}

	for _, d := range knightOffsets {
		if n, ok := sq.Offset(d.df, d.dr); ok && p.Board[n] == NewPiece(Knight, by) {
			return true
		}
	}

	for i, d := range rayDirections {
		if blocked&(1<<i) != 0 {
			continue
		}
		for dist := 2; ; dist++ {
			n, ok := sq.Offset(d.df*dist, d.dr*dist)
			if !ok {
				break
			}
			pc := p.Board[n]
			if pc == NoPiece {
				continue
			}
			if pc.Color() == by && slides(pc.Type(), i) {
				return true
			}
			break
		}
	}

	return false
}

// InCheck returns true if the side to move's king is attacked.
func (p *Position) InCheck() bool {
	ksq := p.KingSquare[p.SideToMove]
	if ksq == NoSquare {
		return false
	}
	return p.IsSquareAttacked(ksq, p.SideToMove.Other())
}
