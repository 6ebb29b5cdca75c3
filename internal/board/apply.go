package board

// rookHome maps each castling right to the corner its rook starts on.
var rookHome = map[CastlingRights]Square{
	WhiteKingSideCastle:  H1,
	WhiteQueenSideCastle: A1,
	BlackKingSideCastle:  H8,
	BlackQueenSideCastle: A8,
}

// rightForCorner returns the castling right tied to a rook corner, or
// NoCastling for any other square.
func rightForCorner(sq Square) CastlingRights {
	switch sq {
	case H1:
		return WhiteKingSideCastle
	case A1:
		return WhiteQueenSideCastle
	case H8:
		return BlackKingSideCastle
	case A8:
		return BlackQueenSideCastle
	}
	return NoCastling
}

// castleRookMove returns the rook's origin and destination for a castle.
func castleRookMove(kind CastlingRights) (from, to Square) {
	switch kind {
	case WhiteKingSideCastle:
		return H1, F1
	case WhiteQueenSideCastle:
		return A1, D1
	case BlackKingSideCastle:
		return H8, F8
	case BlackQueenSideCastle:
		return A8, D8
	}
	return NoSquare, NoSquare
}

// ApplyMove plays m on the position in place. m must be a move generated
// for this position; anything else leaves the position in an unspecified
// state. Legality is not checked.
func (p *Position) ApplyMove(m Move) {
	if m.IsCapture() {
		p.SetPiece(NoPiece, m.CaptureSquare)
		// Taking a rook on its corner removes the castle it could make.
		if m.Captured.Is(Rook) {
			p.CastlingRights &^= rightForCorner(m.CaptureSquare)
		}
	}

	p.SetPiece(NoPiece, m.From)
	p.SetPiece(m.Placed, m.To)

	if m.IsCastle() {
		rf, rt := castleRookMove(m.CastleKind())
		p.SetPiece(p.Board[rf], rt)
		p.SetPiece(NoPiece, rf)
	}

	mover := m.Piece.Color()
	own := castleRight(mover, true) | castleRight(mover, false)
	switch m.Piece.Type() {
	case King:
		p.CastlingRights &^= own
	case Rook:
		p.CastlingRights &^= rightForCorner(m.From) & own
	}

	p.EnPassant = NoSquare
	if m.Piece.Type() == Pawn {
		if d := m.To.Rank() - m.From.Rank(); d == 2 || d == -2 {
			p.EnPassant = NewSquare(m.From.File(), (m.From.Rank()+m.To.Rank())/2)
		}
	}

	p.SideToMove = p.SideToMove.Other()
}

// MakeMove returns a copy of the position with m applied, leaving p untouched.
func (p *Position) MakeMove(m Move) *Position {
	next := *p
	next.ApplyMove(m)
	return &next
}
