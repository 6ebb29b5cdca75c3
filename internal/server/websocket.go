package server

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/hailam/chessrules/internal/perft"
)

// handlePerftSocket answers each PerftRequest read from the connection with
// one PerftMessage per root move, in completion order, followed by a
// message with Done set and the total. Requests are served one at a time.
func (s *Server) handlePerftSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client.
		log.Printf("server: websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	for {
		var req PerftRequest
		if err := conn.ReadJSON(&req); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("server: websocket read: %v", err)
			}
			return
		}

		if err := s.streamPerft(r, conn, req); err != nil {
			log.Printf("server: websocket write: %v", err)
			return
		}
	}
}

func (s *Server) streamPerft(r *http.Request, conn *websocket.Conn, req PerftRequest) error {
	pos, err := positionOrStart(req.FEN)
	if err != nil {
		return conn.WriteJSON(PerftMessage{Error: err.Error()})
	}
	depth := req.Depth
	if depth < 1 || depth > MaxPerftDepth {
		return conn.WriteJSON(PerftMessage{Error: errDepth.Error()})
	}

	var writeErr error
	entries, err := perft.ParallelDivide(r.Context(), pos, depth, s.workers, func(e perft.Entry) {
		if writeErr != nil {
			return
		}
		writeErr = conn.WriteJSON(PerftMessage{Move: e.Move.UCI(), Nodes: e.Nodes})
	})
	if writeErr != nil {
		return writeErr
	}
	if err != nil {
		return conn.WriteJSON(PerftMessage{Error: err.Error()})
	}
	log.Printf("server: ws perft %s depth %d: %d nodes", RequestID(r.Context()), depth, perft.Total(entries))
	return conn.WriteJSON(PerftMessage{Total: perft.Total(entries), Done: true})
}
