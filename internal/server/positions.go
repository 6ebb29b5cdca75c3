package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/hailam/chessrules/internal/storage"
)

func storeStatus(err error) int {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, storage.ErrInvalidName):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (s *Server) handleListPositions(w http.ResponseWriter, r *http.Request) {
	names, err := s.store.ListPositions()
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, names)
}

func (s *Server) handleGetPosition(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	pos, err := s.store.LoadPosition(name)
	if err != nil {
		writeError(w, r, storeStatus(err), err)
		return
	}
	writeJSON(w, http.StatusOK, PositionDTO{Name: name, FEN: pos.ToFEN()})
}

func (s *Server) handlePutPosition(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	var req PositionDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}
	pos, err := parsePosition(req.FEN)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}
	if err := s.store.SavePosition(name, pos); err != nil {
		writeError(w, r, storeStatus(err), err)
		return
	}
	writeJSON(w, http.StatusOK, PositionDTO{Name: name, FEN: pos.ToFEN()})
}

func (s *Server) handleDeletePosition(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeletePosition(mux.Vars(r)["name"]); err != nil {
		writeError(w, r, storeStatus(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
