package board

import (
	"fmt"
	"strings"
)

// CastlingRights represents the available castling options.
type CastlingRights uint8

const (
	WhiteKingSideCastle  CastlingRights = 1 << iota // K
	WhiteQueenSideCastle                            // Q
	BlackKingSideCastle                             // k
	BlackQueenSideCastle                            // q
	NoCastling           CastlingRights = 0
)

// String returns the castling field of the position text, "-" when empty.
func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	var sb strings.Builder
	for i, c := range "KQkq" {
		if cr&(1<<i) != 0 {
			sb.WriteRune(c)
		}
	}
	return sb.String()
}

// CanCastle returns true if the given side can castle in the given direction.
func (cr CastlingRights) CanCastle(c Color, kingSide bool) bool {
	return cr&castleRight(c, kingSide) != 0
}

func castleRight(c Color, kingSide bool) CastlingRights {
	right := WhiteQueenSideCastle
	if kingSide {
		right = WhiteKingSideCastle
	}
	if c == Black {
		right <<= 2
	}
	return right
}

// Position is a complete chess position. It is a plain value: assigning it
// or calling Copy yields an independent board.
type Position struct {
	Board [64]Piece

	SideToMove     Color
	CastlingRights CastlingRights
	EnPassant      Square // square skipped by the last double pawn push, NoSquare if none

	// King positions, cached for check detection. NoSquare when absent.
	KingSquare [2]Square
}

// NewPosition creates the starting position.
func NewPosition() *Position {
	pos, err := ParseFEN(StartFEN)
	if err != nil {
		panic(err)
	}
	return pos
}

// EmptyPosition returns a position with no pieces, white to move.
func EmptyPosition() *Position {
	p := &Position{EnPassant: NoSquare}
	for sq := range p.Board {
		p.Board[sq] = NoPiece
	}
	p.KingSquare = [2]Square{NoSquare, NoSquare}
	return p
}

// Copy creates an independent copy of the position.
func (p *Position) Copy() *Position {
	newPos := *p
	return &newPos
}

// PieceAt returns the piece at the given square, or NoPiece if empty.
func (p *Position) PieceAt(sq Square) Piece {
	if !sq.IsValid() {
		return NoPiece
	}
	return p.Board[sq]
}

// IsEmpty returns true if the square is empty.
func (p *Position) IsEmpty(sq Square) bool {
	return p.Board[sq] == NoPiece
}

// SetPiece places a piece on a square, replacing whatever was there.
// Placing NoPiece clears the square.
func (p *Position) SetPiece(piece Piece, sq Square) {
	if old := p.Board[sq]; old.Is(King) && p.KingSquare[old.Color()] == sq {
		p.KingSquare[old.Color()] = NoSquare
	}
	p.Board[sq] = piece
	if piece.Is(King) {
		p.KingSquare[piece.Color()] = sq
	}
}

// Validate checks that each side has exactly one king and that no pawn sits
// on the first or last rank.
func (p *Position) Validate() error {
	var kings [2]int
	for sq, pc := range p.Board {
		switch {
		case pc.Is(King):
			kings[pc.Color()]++
		case pc.Is(Pawn):
			if r := Square(sq).Rank(); r == 0 || r == 7 {
				return fmt.Errorf("pawn on back rank at %s", Square(sq))
			}
		}
	}
	if kings[White] != 1 || kings[Black] != 1 {
		return fmt.Errorf("need one king per side, got %d white and %d black", kings[White], kings[Black])
	}
	return nil
}

// String renders the position as a diagram with rank and file labels.
func (p *Position) String() string {
	var sb strings.Builder
	sb.WriteString("    a b c d e f g h\n\n")
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d  ", rank+1)
		for file := 0; file < 8; file++ {
			sb.WriteByte(' ')
			sb.WriteString(p.Board[NewSquare(file, rank)].String())
		}
		fmt.Fprintf(&sb, "   %d\n", rank+1)
	}
	sb.WriteString("\n    a b c d e f g h")
	return sb.String()
}
