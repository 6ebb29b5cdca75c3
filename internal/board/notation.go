package board

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidMove is wrapped by errors from move parsing.
var ErrInvalidMove = errors.New("invalid move")

// String returns the short form of the move: origin, an "x" for captures,
// target, "e.p." for en passant and the promoted piece letter. Castles are
// written 0-0 and 0-0-0.
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	switch m.CastleKind() {
	case WhiteKingSideCastle, BlackKingSideCastle:
		return "0-0"
	case WhiteQueenSideCastle, BlackQueenSideCastle:
		return "0-0-0"
	}
	return m.format(false)
}

// LongString returns the fully qualified form, naming the moving and the
// captured piece, e.g. "Pe5xpd6e.p." or "pc2xRb1q". Castles are written as
// plain king moves ("Ke1g1").
func (m Move) LongString() string {
	if m == NoMove {
		return "0000"
	}
	return m.format(true)
}

func (m Move) format(long bool) string {
	var sb strings.Builder
	if long {
		sb.WriteString(m.Piece.String())
	}
	sb.WriteString(m.From.String())
	if m.IsCapture() {
		sb.WriteByte('x')
		if long {
			sb.WriteString(m.Captured.String())
		}
	}
	sb.WriteString(m.To.String())
	if m.IsEnPassant() {
		sb.WriteString("e.p.")
	}
	if m.IsPromotion() {
		sb.WriteString(m.Placed.String())
	}
	return sb.String()
}

// UCI returns the coordinate form used by engine protocols, e.g. "e7e8q".
func (m Move) UCI() string {
	if m == NoMove {
		return "0000"
	}
	s := m.From.String() + m.To.String()
	if m.IsPromotion() {
		s += strings.ToLower(m.Placed.String())
	}
	return s
}

// ParseLongMove parses the fully qualified move form without a position.
// The victim of an en passant capture is placed beside the origin on the
// target's file.
func ParseLongMove(s string) (Move, error) {
	rest := s
	fail := func(reason string) (Move, error) {
		return NoMove, fmt.Errorf("%w: %q: %s", ErrInvalidMove, s, reason)
	}

	if len(rest) < 5 {
		return fail("too short")
	}
	pc := PieceFromChar(rest[0])
	if pc == NoPiece {
		return fail("unknown piece letter")
	}
	from, err := ParseSquare(rest[1:3])
	if err != nil {
		return fail(err.Error())
	}
	rest = rest[3:]

	captured := NoPiece
	if strings.HasPrefix(rest, "x") {
		if len(rest) < 2 {
			return fail("missing captured piece")
		}
		captured = PieceFromChar(rest[1])
		if captured == NoPiece || captured.Color() == pc.Color() {
			return fail("bad captured piece")
		}
		rest = rest[2:]
	}

	if len(rest) < 2 {
		return fail("missing target square")
	}
	to, err := ParseSquare(rest[:2])
	if err != nil {
		return fail(err.Error())
	}
	rest = rest[2:]

	m := NewMove(pc, from, to)
	if captured != NoPiece {
		m.Captured = captured
		m.CaptureSquare = to
	}

	if strings.HasPrefix(rest, "e.p.") {
		if captured == NoPiece || !pc.Is(Pawn) {
			return fail("en passant without pawn capture")
		}
		m.CaptureSquare = NewSquare(to.File(), from.Rank())
		rest = rest[4:]
	}

	if len(rest) == 1 {
		promo := PieceFromChar(rest[0])
		if !pc.Is(Pawn) || promo == NoPiece || promo.Color() != pc.Color() ||
			promo.Is(Pawn) || promo.Is(King) {
			return fail("bad promotion piece")
		}
		m.Placed = promo
		rest = rest[1:]
	}

	if rest != "" {
		return fail("trailing characters")
	}
	return m, nil
}

// ParseMove resolves a move written in short form, fully qualified form,
// coordinate form (e2e4, e7e8q) or as a castle token (0-0, O-O-O) against
// the legal moves of the position.
func (p *Position) ParseMove(s string) (Move, error) {
	token := strings.TrimSpace(s)
	token = strings.ReplaceAll(token, "O", "0")
	for _, m := range p.GenerateLegalMoves().Slice() {
		if token == m.String() || token == m.LongString() || strings.EqualFold(token, m.UCI()) {
			return m, nil
		}
	}
	return NoMove, fmt.Errorf("%w: %q is not legal in %s", ErrInvalidMove, s, p.ToFEN())
}
