package server

import "github.com/hailam/chessrules/internal/board"

// MoveDTO is one move in every notation the service speaks.
type MoveDTO struct {
	Move string `json:"move"` // short form, e.g. "e5xd6e.p."
	Long string `json:"long"` // fully qualified, e.g. "Pe5xpd6e.p."
	UCI  string `json:"uci"`
}

func moveToDTO(m board.Move) MoveDTO {
	return MoveDTO{Move: m.String(), Long: m.LongString(), UCI: m.UCI()}
}

// MovesResponse lists the legal moves of a position in canonical order.
type MovesResponse struct {
	FEN   string    `json:"fen"`
	Check bool      `json:"check"`
	Moves []MoveDTO `json:"moves"`
}

// ApplyRequest asks for a move to be played on a position.
type ApplyRequest struct {
	FEN  string `json:"fen"`
	Move string `json:"move"`
}

// ApplyResponse is the position after the move.
type ApplyResponse struct {
	FEN    string  `json:"fen"`
	Move   MoveDTO `json:"move"`
	Status string  `json:"status"`
	Check  bool    `json:"check"`
}

// StatusResponse classifies a position.
type StatusResponse struct {
	FEN                  string `json:"fen"`
	Status               string `json:"status"` // "ongoing" / "checkmate" / "stalemate"
	Check                bool   `json:"check"`
	InsufficientMaterial bool   `json:"insufficient_material"`
}

// PerftResponse is a leaf count.
type PerftResponse struct {
	FEN   string `json:"fen"`
	Depth int    `json:"depth"`
	Nodes uint64 `json:"nodes"`
}

// PerftRequest is read from the perft websocket.
type PerftRequest struct {
	FEN   string `json:"fen"`
	Depth int    `json:"depth"`
}

// PerftMessage is streamed back over the perft websocket: one per root
// move, then one carrying the total, or one carrying an error.
type PerftMessage struct {
	Move  string `json:"move,omitempty"`
	Nodes uint64 `json:"nodes,omitempty"`
	Total uint64 `json:"total,omitempty"`
	Done  bool   `json:"done,omitempty"`
	Error string `json:"error,omitempty"`
}

// PositionDTO is a named stored position.
type PositionDTO struct {
	Name string `json:"name"`
	FEN  string `json:"fen"`
}

// ErrorResponse carries a failure message.
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}
