package board

import (
	"slices"
	"strings"
	"testing"
)

func longStrings(ml *MoveList) []string {
	out := make([]string, 0, ml.Len())
	for _, m := range ml.Slice() {
		out = append(out, m.LongString())
	}
	slices.Sort(out)
	return out
}

func TestGenerateLegalMovesFixtures(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		moves string
	}{
		{
			name:  "start",
			fen:   StartFEN,
			moves: "Pa2a3 Pa2a4 Pb2b3 Pb2b4 Pc2c3 Pc2c4 Pd2d3 Pd2d4 Pe2e3 Pe2e4 Pf2f3 Pf2f4 Pg2g3 Pg2g4 Ph2h3 Ph2h4 Nb1c3 Nb1a3 Ng1h3 Ng1f3",
		},
		{
			name:  "mated",
			fen:   "1n1Rkb1r/p4ppp/4q3/4p1B1/4P3/8/PPP2PPP/2K5 b k -",
			moves: "",
		},
		{
			name:  "blocks against bishop check",
			fen:   "2rq1rk1/pb3ppN/4p3/1p2n3/3b1PB1/P1N5/1PQ3PP/R1B2RK1 w - -",
			moves: "Kg1h1 Qc2f2 Bc1e3 Rf1f2",
		},
		{
			name:  "en passant for black",
			fen:   "8/8/P7/8/4Pp2/8/k4b2/3K4 b - e3",
			moves: "bf2e1 bf2g1 bf2g3 bf2h4 bf2e3 bf2d4 bf2c5 bf2b6 bf2a7 pf4f3 pf4xPe3e.p. ka2b2 ka2a1 ka2b1 ka2a3 ka2b3",
		},
		{
			name:  "no castling out of check",
			fen:   "4k3/8/8/8/8/4r3/8/R3K2R w KQ -",
			moves: "Ke1f1 Ke1d1 Ke1d2 Ke1f2",
		},
		{
			name:  "capture promotions",
			fen:   "1k6/8/8/8/8/8/2p5/1R2K3 b - -",
			moves: "kb8c8 kb8a8 kb8a7 kb8c7 pc2xRb1q pc2xRb1n pc2xRb1r pc2xRb1b",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos := MustParseFEN(tc.fen)
			got := longStrings(pos.GenerateLegalMoves())
			want := strings.Fields(tc.moves)
			slices.Sort(want)
			if !slices.Equal(got, want) {
				t.Errorf("moves mismatch\n got: %v\nwant: %v", got, want)
			}
		})
	}
}

func TestCastlingRules(t *testing.T) {
	tests := []struct {
		name      string
		fen       string
		kingSide  bool
		queenSide bool
	}{
		{"both available", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq -", true, true},
		{"no rights", "r3k2r/8/8/8/8/8/8/R3K2R w kq -", false, false},
		{"knight on b1 blocks queen side", "r3k2r/8/8/8/8/8/8/RN2K2R w KQkq -", true, false},
		{"f1 attacked", "r3k2r/8/8/8/8/8/5r2/R3K2R w KQkq -", false, true},
		{"g1 attacked", "r3k2r/8/8/8/8/8/6r1/R3K2R w KQkq -", false, true},
		{"d1 attacked", "r3k2r/8/8/8/8/8/3r4/R3K2R w KQkq -", true, false},
		{"b1 attacked only", "r3k2r/8/8/8/8/8/1r6/R3K2R w KQkq -", true, true},
		{"king in check", "r3k2r/8/8/8/8/8/4r3/R3K2R w KQkq -", false, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos := MustParseFEN(tc.fen)
			var kingSide, queenSide bool
			for _, m := range pos.GenerateLegalMoves().Slice() {
				switch m.CastleKind() {
				case WhiteKingSideCastle:
					kingSide = true
				case WhiteQueenSideCastle:
					queenSide = true
				}
			}
			if kingSide != tc.kingSide || queenSide != tc.queenSide {
				t.Errorf("castles = (%v, %v), want (%v, %v)", kingSide, queenSide, tc.kingSide, tc.queenSide)
			}
		})
	}
}

func TestLegalMovesNeverLeaveKingAttacked(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - -",
		"8/8/8/8/k2Pp2R/8/8/4K3 b - d3",
	}
	for _, fen := range fens {
		pos := MustParseFEN(fen)
		us := pos.SideToMove
		for _, m := range pos.GenerateLegalMoves().Slice() {
			next := pos.MakeMove(m)
			if next.IsSquareAttacked(next.KingSquare[us], us.Other()) {
				t.Errorf("%s: %s leaves the king attacked", fen, m)
			}
		}
	}
}

func TestGeneratedMovesAreWellFormed(t *testing.T) {
	pos := MustParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -")
	for _, m := range pos.GeneratePseudoLegalMoves().Slice() {
		if pos.PieceAt(m.From) != m.Piece {
			t.Errorf("%s: piece %s is not on %s", m.LongString(), m.Piece, m.From)
		}
		if m.Piece.Color() != pos.SideToMove {
			t.Errorf("%s: moves a piece of the wrong color", m.LongString())
		}
		if m.IsCapture() && m.Captured.Color() == pos.SideToMove {
			t.Errorf("%s: captures an own piece", m.LongString())
		}
		if m.IsCapture() && pos.PieceAt(m.CaptureSquare) != m.Captured {
			t.Errorf("%s: capture square does not hold the victim", m.LongString())
		}
	}
}

func TestGenerateMovesFrom(t *testing.T) {
	pos := NewPosition()
	got := pos.GenerateMovesFrom(G1).Strings()
	slices.Sort(got)
	want := []string{"g1f3", "g1h3"}
	if !slices.Equal(got, want) {
		t.Errorf("GenerateMovesFrom(g1) = %v, want %v", got, want)
	}
	if n := pos.GenerateMovesFrom(E7).Len(); n != 0 {
		t.Errorf("GenerateMovesFrom(e7) with white to move = %d moves, want 0", n)
	}
}

func TestMissingKingPanics(t *testing.T) {
	pos := MustParseFEN("8/8/8/8/8/8/4P3/8 w - -")
	defer func() {
		if recover() == nil {
			t.Error("expected panic for a position without a white king")
		}
	}()
	pos.GenerateLegalMoves()
}
