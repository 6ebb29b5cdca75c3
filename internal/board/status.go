package board

// Status is the outcome state of a position for the side to move.
type Status uint8

const (
	Ongoing Status = iota
	Checkmate
	Stalemate
)

// String returns the lowercase status name.
func (s Status) String() string {
	switch s {
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	default:
		return "ongoing"
	}
}

// Status classifies the position for the side to move.
func (p *Position) Status() Status {
	switch {
	case p.IsCheckmate():
		return Checkmate
	case p.IsStalemate():
		return Stalemate
	}
	return Ongoing
}

// IsCheckmate returns true if the side to move is in check and has no legal
// move.
func (p *Position) IsCheckmate() bool {
	return p.InCheck() && !p.HasLegalMoves()
}

// IsStalemate returns true if the side to move is not in check and either
// has no legal move or neither side has mating material.
func (p *Position) IsStalemate() bool {
	if p.InCheck() {
		return false
	}
	return p.IsInsufficientMaterial() || !p.HasLegalMoves()
}

// IsInsufficientMaterial reports whether the material left cannot deliver
// mate: king against king, king and one minor piece against king, or king
// and bishop against king and bishop with both bishops on same-colored
// squares.
func (p *Position) IsInsufficientMaterial() bool {
	var minors [2]int
	var bishops []Square
	for sq, pc := range p.Board {
		switch pc.Type() {
		case NoPieceType, King:
		case Knight:
			minors[pc.Color()]++
		case Bishop:
			minors[pc.Color()]++
			bishops = append(bishops, Square(sq))
		default:
			return false
		}
	}

	switch total := minors[White] + minors[Black]; total {
	case 0, 1:
		return true
	case 2:
		return minors[White] == 1 && len(bishops) == 2 &&
			bishops[0].IsLight() == bishops[1].IsLight()
	}
	return false
}
