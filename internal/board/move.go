package board

import (
	"cmp"
	"slices"
)

// Move describes one ply completely enough to apply it without consulting
// the position: the moving piece before and after (they differ only on
// promotion), and the captured piece with the square it was taken on (which
// differs from To only for en passant).
//
// Classification is always derived from these fields, never stored.
type Move struct {
	From          Square
	To            Square
	CaptureSquare Square // NoSquare for non-captures
	Piece         Piece  // moving piece before the move
	Placed        Piece  // piece standing on To after the move
	Captured      Piece  // NoPiece for non-captures
}

// NoMove represents an invalid or null move.
var NoMove = Move{
	From:          NoSquare,
	To:            NoSquare,
	CaptureSquare: NoSquare,
	Piece:         NoPiece,
	Placed:        NoPiece,
	Captured:      NoPiece,
}

// NewMove creates a quiet move of pc from one square to another.
func NewMove(pc Piece, from, to Square) Move {
	return Move{From: from, To: to, CaptureSquare: NoSquare, Piece: pc, Placed: pc, Captured: NoPiece}
}

// NewCapture creates a move of pc that takes captured on the target square.
func NewCapture(pc Piece, from, to Square, captured Piece) Move {
	return Move{From: from, To: to, CaptureSquare: to, Piece: pc, Placed: pc, Captured: captured}
}

// NewEnPassant creates a pawn capture whose victim stands on capSq.
func NewEnPassant(pc Piece, from, to, capSq Square, captured Piece) Move {
	return Move{From: from, To: to, CaptureSquare: capSq, Piece: pc, Placed: pc, Captured: captured}
}

// NewPromotion creates a pawn move to the last rank that becomes promoted.
// captured is NoPiece for a straight push.
func NewPromotion(pc Piece, from, to Square, promoted, captured Piece) Move {
	m := Move{From: from, To: to, CaptureSquare: NoSquare, Piece: pc, Placed: promoted, Captured: captured}
	if captured != NoPiece {
		m.CaptureSquare = to
	}
	return m
}

// IsCapture returns true if this move captures a piece.
func (m Move) IsCapture() bool {
	return m.Captured != NoPiece
}

// IsEnPassant returns true if this is an en passant capture.
func (m Move) IsEnPassant() bool {
	return m.IsCapture() && m.To != m.CaptureSquare
}

// IsPromotion returns true if the moving piece changes on arrival.
func (m Move) IsPromotion() bool {
	return m.Piece != m.Placed
}

// CastleKind returns the single castling right this move exercises, or
// NoCastling. A castle is a king moving from its home square two files
// toward one of its rooks.
func (m Move) CastleKind() CastlingRights {
	switch {
	case m.Piece == WhiteKing && m.From == E1 && m.To == G1:
		return WhiteKingSideCastle
	case m.Piece == WhiteKing && m.From == E1 && m.To == C1:
		return WhiteQueenSideCastle
	case m.Piece == BlackKing && m.From == E8 && m.To == G8:
		return BlackKingSideCastle
	case m.Piece == BlackKing && m.From == E8 && m.To == C8:
		return BlackQueenSideCastle
	}
	return NoCastling
}

// IsCastle returns true if this is a castling move.
func (m Move) IsCastle() bool {
	return m.CastleKind() != NoCastling
}

// Compare orders moves by moving piece, origin, placed piece, target,
// captured piece and capture square, in that order of precedence.
func (m Move) Compare(o Move) int {
	return cmp.Or(
		cmp.Compare(m.Piece, o.Piece),
		cmp.Compare(m.From, o.From),
		cmp.Compare(m.Placed, o.Placed),
		cmp.Compare(m.To, o.To),
		cmp.Compare(m.Captured, o.Captured),
		cmp.Compare(m.CaptureSquare, o.CaptureSquare),
	)
}

// MoveList is a growable list of moves.
type MoveList struct {
	moves []Move
}

// NewMoveList creates an empty move list.
func NewMoveList() *MoveList {
	return &MoveList{moves: make([]Move, 0, 64)}
}

// Add appends a move to the list.
func (ml *MoveList) Add(m Move) {
	ml.moves = append(ml.moves, m)
}

// Len returns the number of moves in the list.
func (ml *MoveList) Len() int {
	return len(ml.moves)
}

// Get returns the move at index i.
func (ml *MoveList) Get(i int) Move {
	return ml.moves[i]
}

// Contains returns true if the list contains the given move.
func (ml *MoveList) Contains(m Move) bool {
	return slices.Contains(ml.moves, m)
}

// Sort puts the list in canonical move order.
func (ml *MoveList) Sort() {
	slices.SortFunc(ml.moves, Move.Compare)
}

// Slice returns the moves as a slice. The slice aliases the list.
func (ml *MoveList) Slice() []Move {
	return ml.moves
}

// Strings returns the short form of every move, in list order.
func (ml *MoveList) Strings() []string {
	out := make([]string, len(ml.moves))
	for i, m := range ml.moves {
		out[i] = m.String()
	}
	return out
}
