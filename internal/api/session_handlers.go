package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type startSessionRequest struct {
	UserID int64 `json:"user_id"`
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	var req startSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	sess, err := s.Sessions.StartSession(r.Context(), req.UserID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusCreated, sess)
}

func (s *Server) handleEndSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.Sessions.EndSession(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, sess)
}
