package engine

import "github.com/hailam/chessrules/internal/board"

// PieceValue is the material value of each piece type in pawns.
var PieceValue = [7]int{
	board.Pawn:        1,
	board.Knight:      3,
	board.Bishop:      3,
	board.Rook:        5,
	board.Queen:       9,
	board.King:        0,
	board.NoPieceType: 0,
}

// Evaluate returns the material balance from the side to move's point of
// view.
func Evaluate(pos *board.Position) int {
	score := 0
	for _, pc := range pos.Board {
		if pc == board.NoPiece {
			continue
		}
		v := PieceValue[pc.Type()]
		if pc.Color() == pos.SideToMove {
			score += v
		} else {
			score -= v
		}
	}
	return score
}
