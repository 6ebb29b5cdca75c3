// Package server exposes the rules over HTTP. Every request carries the
// position it is about, so the server keeps no game state; the only state is
// the optional store of named positions.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/perft"
	"github.com/hailam/chessrules/internal/storage"
)

// MaxPerftDepth bounds the depth accepted by the perft endpoints.
const MaxPerftDepth = 5

// RequestIDHeader is set on every response.
const RequestIDHeader = "X-Request-ID"

type ctxKey int

const requestIDKey ctxKey = 0

// Config controls a Server.
type Config struct {
	// Store backs the /api/positions endpoints. Nil disables them.
	Store *storage.Storage
	// AccessLog receives one line per request in Apache common log format.
	// Nil disables access logging.
	AccessLog io.Writer
	// PerftWorkers bounds the goroutines used per perft request (0 = GOMAXPROCS).
	PerftWorkers int
	// AllowedOrigins is passed to the CORS handler. Empty means "*".
	AllowedOrigins []string
}

// Server routes requests to the rules engine.
type Server struct {
	router   *mux.Router
	handler  http.Handler
	store    *storage.Storage
	workers  int
	upgrader websocket.Upgrader
}

// New builds a server from cfg.
func New(cfg Config) *Server {
	s := &Server{
		router:  mux.NewRouter(),
		store:   cfg.Store,
		workers: cfg.PerftWorkers,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}

	s.router.Use(requestID)
	s.router.NotFoundHandler = requestID(http.HandlerFunc(notFound))

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/moves", s.handleMoves).Methods(http.MethodGet)
	api.HandleFunc("/apply", s.handleApply).Methods(http.MethodPost)
	api.HandleFunc("/status", s.handleStatus).Methods(http.MethodGet)
	api.HandleFunc("/perft", s.handlePerft).Methods(http.MethodGet)
	if s.store != nil {
		api.HandleFunc("/positions", s.handleListPositions).Methods(http.MethodGet)
		api.HandleFunc("/positions/{name}", s.handleGetPosition).Methods(http.MethodGet)
		api.HandleFunc("/positions/{name}", s.handlePutPosition).Methods(http.MethodPut)
		api.HandleFunc("/positions/{name}", s.handleDeletePosition).Methods(http.MethodDelete)
	}
	s.router.HandleFunc("/ws/perft", s.handlePerftSocket)

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	var h http.Handler = s.router
	h = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
		handlers.ExposedHeaders([]string{RequestIDHeader}),
	)(h)
	if cfg.AccessLog != nil {
		h = handlers.LoggingHandler(cfg.AccessLog, h)
	}
	s.handler = h

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// requestID tags the request and the response with a fresh id, or with the
// client's id if it sent one.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

// RequestID returns the id assigned to the request carried by ctx.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

func notFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusNotFound, errors.New("not found"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("server: encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	writeJSON(w, status, ErrorResponse{Error: err.Error(), RequestID: RequestID(r.Context())})
}

// positionParam reads and validates the "fen" query parameter. A missing
// parameter means the standard starting position.
func positionParam(r *http.Request) (*board.Position, error) {
	return positionOrStart(r.URL.Query().Get("fen"))
}

func positionOrStart(fen string) (*board.Position, error) {
	if fen == "" {
		return board.NewPosition(), nil
	}
	return parsePosition(fen)
}

// parsePosition accepts only positions the generators can work on: exactly
// one king per side and no pawns on the back ranks.
func parsePosition(fen string) (*board.Position, error) {
	pos, err := board.ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	if err := pos.Validate(); err != nil {
		return nil, err
	}
	return pos, nil
}

func (s *Server) handleMoves(w http.ResponseWriter, r *http.Request) {
	pos, err := positionParam(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	moves := pos.GenerateLegalMoves()
	moves.Sort()
	resp := MovesResponse{
		FEN:   pos.ToFEN(),
		Check: pos.InCheck(),
		Moves: make([]MoveDTO, 0, moves.Len()),
	}
	for _, m := range moves.Slice() {
		resp.Moves = append(resp.Moves, moveToDTO(m))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleApply(w http.ResponseWriter, r *http.Request) {
	var req ApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	fen := req.FEN
	if fen == "" {
		fen = board.StartFEN
	}
	pos, err := parsePosition(fen)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	m, err := pos.ParseMove(req.Move)
	if err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, err)
		return
	}
	pos.ApplyMove(m)

	writeJSON(w, http.StatusOK, ApplyResponse{
		FEN:    pos.ToFEN(),
		Move:   moveToDTO(m),
		Status: pos.Status().String(),
		Check:  pos.InCheck(),
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	pos, err := positionParam(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, StatusResponse{
		FEN:                  pos.ToFEN(),
		Status:               pos.Status().String(),
		Check:                pos.InCheck(),
		InsufficientMaterial: pos.IsInsufficientMaterial(),
	})
}

var errDepth = errors.New("depth must be between 1 and " + strconv.Itoa(MaxPerftDepth))

func parseDepth(s string) (int, error) {
	depth, err := strconv.Atoi(s)
	if err != nil || depth < 1 || depth > MaxPerftDepth {
		return 0, errDepth
	}
	return depth, nil
}

func (s *Server) handlePerft(w http.ResponseWriter, r *http.Request) {
	pos, err := positionParam(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}
	depth, err := parseDepth(r.URL.Query().Get("depth"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	entries, err := perft.ParallelDivide(r.Context(), pos, depth, s.workers, nil)
	if err != nil {
		// The client went away.
		log.Printf("server: perft %s: %v", RequestID(r.Context()), err)
		return
	}
	writeJSON(w, http.StatusOK, PerftResponse{
		FEN:   pos.ToFEN(),
		Depth: depth,
		Nodes: perft.Total(entries),
	})
}
