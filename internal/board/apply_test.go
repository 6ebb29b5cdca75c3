package board

import "testing"

func TestApplyMoveEnPassant(t *testing.T) {
	pos := MustParseFEN("8/8/8/5Pp1/8/8/8/8 w KQkq g6")

	var ep Move
	for _, m := range pos.GeneratePseudoLegalMoves().Slice() {
		if m.IsEnPassant() {
			ep = m
		}
	}
	if ep.String() != "f5xg6e.p." {
		t.Fatalf("en passant move = %q, want f5xg6e.p.", ep.String())
	}

	pos.ApplyMove(ep)
	if got, want := pos.ToFEN(), "8/8/6P1/8/8/8/8/8 b KQkq -"; got != want {
		t.Errorf("after en passant: got %q, want %q", got, want)
	}
}

func TestApplyMoveSequence(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		moves []string
		want  string
	}{
		{
			name:  "double push sets en passant square",
			fen:   StartFEN,
			moves: []string{"e2e4"},
			want:  "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3",
		},
		{
			name:  "en passant square expires",
			fen:   StartFEN,
			moves: []string{"e2e4", "g8f6"},
			want:  "rnbqkb1r/pppppppp/5n2/8/4P3/8/PPPP1PPP/RNBQKBNR w KQkq -",
		},
		{
			name:  "white castles king side",
			fen:   "r3k2r/8/8/8/8/8/8/R3K2R w KQkq -",
			moves: []string{"0-0"},
			want:  "r3k2r/8/8/8/8/8/8/R4RK1 b kq -",
		},
		{
			name:  "black castles queen side",
			fen:   "r3k2r/8/8/8/8/8/8/R3K2R b KQkq -",
			moves: []string{"0-0-0"},
			want:  "2kr3r/8/8/8/8/8/8/R3K2R w KQ -",
		},
		{
			name:  "rook move clears one right",
			fen:   "r3k2r/8/8/8/8/8/8/R3K2R w KQkq -",
			moves: []string{"h1h5"},
			want:  "r3k2r/8/8/7R/8/8/8/R3K3 b Qkq -",
		},
		{
			name:  "king move clears both rights",
			fen:   "r3k2r/8/8/8/8/8/8/R3K2R w KQkq -",
			moves: []string{"e1e2"},
			want:  "r3k2r/8/8/8/8/8/4K3/R6R b kq -",
		},
		{
			name:  "capturing a cornered rook clears its right",
			fen:   "r3k2r/8/8/8/8/8/8/R3K2R w KQkq -",
			moves: []string{"a1xa8"},
			want:  "R3k2r/8/8/8/8/8/8/4K2R b Kk -",
		},
		{
			name:  "promotion replaces the pawn",
			fen:   "1k6/8/8/8/8/8/2p5/1R2K3 b - -",
			moves: []string{"c2xb1n"},
			want:  "1k6/8/8/8/8/8/8/1n2K3 w - -",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos := MustParseFEN(tc.fen)
			for _, s := range tc.moves {
				m, err := pos.ParseMove(s)
				if err != nil {
					t.Fatalf("ParseMove(%q): %v", s, err)
				}
				pos.ApplyMove(m)
			}
			if got := pos.ToFEN(); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestApplyMoveTracksKing(t *testing.T) {
	pos := MustParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq -")
	pos.ApplyMove(NewMove(WhiteKing, E1, G1))
	if pos.KingSquare[White] != G1 {
		t.Errorf("white king square = %v, want g1", pos.KingSquare[White])
	}
	if pos.PieceAt(F1) != WhiteRook || pos.PieceAt(H1) != NoPiece {
		t.Error("rook did not move from h1 to f1")
	}
}

func TestMakeMoveLeavesOriginal(t *testing.T) {
	pos := NewPosition()
	before := pos.ToFEN()
	m, err := pos.ParseMove("e2e4")
	if err != nil {
		t.Fatal(err)
	}
	next := pos.MakeMove(m)
	if pos.ToFEN() != before {
		t.Errorf("MakeMove modified the original position: %s", pos.ToFEN())
	}
	if next.PieceAt(E4) != WhitePawn {
		t.Error("MakeMove did not apply the move to the copy")
	}
}

func TestApplyMoveCaptureRemovesOnePiece(t *testing.T) {
	fens := []string{
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -",
		"1k6/8/8/8/8/8/2p5/1R2K3 b - -",
		"8/8/P7/8/4Pp2/8/k4b2/3K4 b - e3",
		"4k3/8/8/5Pp1/8/8/8/4K3 w - g6",
	}
	count := func(pos *Position, c Color) int {
		n := 0
		for _, pc := range pos.Board {
			if pc != NoPiece && pc.Color() == c {
				n++
			}
		}
		return n
	}

	for _, fen := range fens {
		pos := MustParseFEN(fen)
		them := pos.SideToMove.Other()
		captures := 0
		for _, m := range pos.GeneratePseudoLegalMoves().Slice() {
			if !m.IsCapture() {
				continue
			}
			captures++
			next := pos.MakeMove(m)
			if got, want := count(next, them), count(pos, them)-1; got != want {
				t.Errorf("%s: %s leaves %d opposing pieces, want %d", fen, m.LongString(), got, want)
			}
			if next.PieceAt(m.To) != m.Placed {
				t.Errorf("%s: %s left %s on %s, want %s", fen, m.LongString(), next.PieceAt(m.To), m.To, m.Placed)
			}
			if m.IsEnPassant() && !next.IsEmpty(m.CaptureSquare) {
				t.Errorf("%s: %s left the captured pawn on %s", fen, m.LongString(), m.CaptureSquare)
			}
		}
		if captures == 0 {
			t.Errorf("%s: no captures generated", fen)
		}
	}
}

func TestCastleGoneAfterRookCaptured(t *testing.T) {
	// The knight takes the a8 rook and the other rook recaptures, so the
	// queen side would be castleable again if the right had survived.
	pos := MustParseFEN("r3k3/8/1N6/r7/8/8/8/4K3 w q -")
	for _, s := range []string{"b6a8", "a5a8", "e1f1"} {
		m, err := pos.ParseMove(s)
		if err != nil {
			t.Fatalf("ParseMove(%q): %v", s, err)
		}
		pos.ApplyMove(m)
	}
	if got, want := pos.ToFEN(), "r3k3/8/8/8/8/8/8/5K2 b - -"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	for _, m := range pos.GenerateLegalMoves().Slice() {
		if m.CastleKind() == BlackQueenSideCastle {
			t.Errorf("%s generated after the a8 rook was captured", m)
		}
	}

	withRight := MustParseFEN("r3k3/8/8/8/8/8/8/5K2 b q -")
	if !withRight.GenerateLegalMoves().Contains(NewMove(BlackKing, E8, C8)) {
		t.Error("0-0-0 missing when the right is held")
	}
}

func TestApplyMoveCornerCaptureOfNonRook(t *testing.T) {
	// A knight standing on h8 is not the rook the right belongs to.
	pos := MustParseFEN("4k2n/8/8/8/8/8/8/4K2R w Kk -")
	m, err := pos.ParseMove("h1h8")
	if err != nil {
		t.Fatal(err)
	}
	pos.ApplyMove(m)
	if got, want := pos.CastlingRights, BlackKingSideCastle; got != want {
		t.Errorf("rights = %v, want %v", got, want)
	}
}
