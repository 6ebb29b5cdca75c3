package replay

import (
	"strings"
	"testing"

	"github.com/hailam/chessrules/internal/board"
)

func TestGame(t *testing.T) {
	tests := []struct {
		name    string
		pgn     string
		fen     string
		plies   int
		status  board.Status
		outcome string
	}{
		{
			name:    "scholar's mate",
			pgn:     "1. e4 e5 2. Bc4 Nc6 3. Qh5 Nf6 4. Qxf7# 1-0",
			fen:     "r1bqkb1r/pppp1Qpp/2n2n2/4p3/2B1P3/8/PPPP1PPP/RNB1K1NR b KQkq -",
			plies:   7,
			status:  board.Checkmate,
			outcome: "1-0",
		},
		{
			name:    "castling",
			pgn:     "1. e4 e5 2. Nf3 Nc6 3. Bc4 Bc5 4. O-O Nf6 *",
			fen:     "r1bqk2r/pppp1ppp/2n2n2/2b1p3/2B1P3/5N2/PPPP1PPP/RNBQ1RK1 w kq -",
			plies:   8,
			status:  board.Ongoing,
			outcome: "*",
		},
		{
			name:    "en passant",
			pgn:     "1. e4 a6 2. e5 d5 3. exd6 *",
			fen:     "rnbqkbnr/1pp1pppp/p2P4/8/8/8/PPPP1PPP/RNBQKBNR b KQkq -",
			plies:   5,
			status:  board.Ongoing,
			outcome: "*",
		},
		{
			name: "from FEN tag with promotion",
			pgn: `[FEN "4k3/P7/8/8/8/8/8/4K3 w - - 0 1"]
[SetUp "1"]

1. a8=Q+ Kd7 *`,
			fen:     "Q7/3k4/8/8/8/8/8/4K3 w - -",
			plies:   2,
			status:  board.Ongoing,
			outcome: "*",
		},
		{
			name:    "no tags and no result",
			pgn:     "1. d4 d5",
			fen:     "rnbqkbnr/ppp1pppp/8/3p4/3P4/8/PPP1PPPP/RNBQKBNR w KQkq d6",
			plies:   2,
			status:  board.Ongoing,
			outcome: "*",
		},
		{
			name: "result from tag only",
			pgn: `[Event "casual"]
[Result "1/2-1/2"]

1. e4 e5`,
			fen:     "rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e6",
			plies:   2,
			status:  board.Ongoing,
			outcome: "1/2-1/2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Game(strings.NewReader(tt.pgn))
			if err != nil {
				t.Fatalf("Game: %v", err)
			}
			if res.FEN != tt.fen {
				t.Errorf("FEN = %s, want %s", res.FEN, tt.fen)
			}
			if res.Plies != tt.plies || len(res.Moves) != tt.plies {
				t.Errorf("plies = %d (%d moves), want %d", res.Plies, len(res.Moves), tt.plies)
			}
			if res.Status != tt.status {
				t.Errorf("status = %v, want %v", res.Status, tt.status)
			}
			if res.Outcome != tt.outcome {
				t.Errorf("outcome = %q, want %q", res.Outcome, tt.outcome)
			}
		})
	}
}

func TestGameMoves(t *testing.T) {
	res, err := Game(strings.NewReader("1. e4 e5 2. Nf3 Nc6 3. Bc4 Bc5 4. O-O *"))
	if err != nil {
		t.Fatalf("Game: %v", err)
	}
	last := res.Moves[len(res.Moves)-1]
	if last.CastleKind() != board.WhiteKingSideCastle || last.String() != "0-0" {
		t.Errorf("last move = %s (castle %v), want 0-0", last, last.CastleKind())
	}
}

func TestGameBadFENTag(t *testing.T) {
	pgn := `[FEN "8/8/8/8/8/8/8/8 w - - 0 1"]
[SetUp "1"]

*`
	if _, err := Game(strings.NewReader(pgn)); err == nil {
		t.Error("expected an error for a position without kings")
	}
}
