package board

import (
	"testing"
)

func TestCheckmate(t *testing.T) {
	tests := []struct {
		name string
		fen  string
	}{
		{"fool's mate", "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq -"},
		{"back rank", "R6k/6pp/8/8/8/8/8/K7 b - -"},
		{"smothered by own pieces", "1n1Rkb1r/p4ppp/4q3/4p1B1/4P3/8/PPP2PPP/2K5 b k -"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos, err := ParseFEN(tc.fen)
			if err != nil {
				t.Fatal("Error parsing FEN:", err)
			}
			t.Log(pos)

			if !pos.IsCheckmate() {
				t.Error("Expected checkmate but got false")
			}
			if pos.IsStalemate() {
				t.Error("checkmate must not also be stalemate")
			}
			if got := pos.Status(); got != Checkmate {
				t.Errorf("Status() = %v, want checkmate", got)
			}
		})
	}
}

func TestNotCheckmate(t *testing.T) {
	// The king escapes by capturing the checking rook.
	pos, err := ParseFEN("6Rk/8/8/8/8/8/8/K7 b - -")
	if err != nil {
		t.Fatal("Error parsing FEN:", err)
	}

	if !pos.InCheck() {
		t.Error("black should be in check")
	}
	if pos.IsCheckmate() {
		t.Error("Expected NOT checkmate but got true")
	}
	if got := pos.Status(); got != Ongoing {
		t.Errorf("Status() = %v, want ongoing", got)
	}
}

func TestStalemate(t *testing.T) {
	tests := []struct {
		name string
		fen  string
	}{
		{"no legal moves", "5bnr/4p1pq/4Qpkr/7p/7P/4P3/PPPP1PP1/RNB1KBNR b KQ -"},
		{"cornered king", "7k/5Q2/6K1/8/8/8/8/8 b - -"},
		{"bare kings", "8/8/8/4k3/8/8/8/4K3 w - -"},
		{"king and knight", "8/8/8/4k3/8/8/8/4KN2 w - -"},
		{"king and bishop", "8/8/8/4k3/8/8/2b5/4K3 b - -"},
		{"bishops on same color", "8/8/8/2b1k3/8/8/8/2B1K3 w - -"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos, err := ParseFEN(tc.fen)
			if err != nil {
				t.Fatal("Error parsing FEN:", err)
			}
			if !pos.IsStalemate() {
				t.Error("Expected stalemate but got false")
			}
			if pos.IsCheckmate() {
				t.Error("stalemate must not also be checkmate")
			}
		})
	}
}

func TestNotStalemate(t *testing.T) {
	fens := []string{
		StartFEN,
		"8/8/8/4k3/8/8/4P3/4K3 w - -",
		"8/8/8/4k3/8/8/8/2BBK3 w - -",
		"8/8/8/3bk3/8/8/8/2B1K3 w - -",
		"8/8/8/4k3/8/8/8/3NKN2 w - -",
	}
	for _, fen := range fens {
		if MustParseFEN(fen).IsStalemate() {
			t.Errorf("%s should not be stalemate", fen)
		}
	}
}

func TestIsInsufficientMaterial(t *testing.T) {
	tests := []struct {
		fen  string
		want bool
	}{
		{"8/8/8/4k3/8/8/8/4K3 w - -", true},
		{"8/8/8/4k3/8/8/8/4KB2 w - -", true},
		{"8/8/8/2b1k3/8/8/8/2B1K3 w - -", true},
		{"8/8/8/3bk3/8/8/8/2B1K3 w - -", false},
		{"8/8/8/4k3/8/8/8/3BKB2 w - -", false},
		{"8/8/8/2n1k3/8/8/8/2B1K3 w - -", false},
		{"8/8/8/4k3/8/8/8/4KR2 w - -", false},
		{"8/8/8/4k3/8/8/4P3/4K3 w - -", false},
	}
	for _, tc := range tests {
		if got := MustParseFEN(tc.fen).IsInsufficientMaterial(); got != tc.want {
			t.Errorf("IsInsufficientMaterial(%s) = %v, want %v", tc.fen, got, tc.want)
		}
	}
}
