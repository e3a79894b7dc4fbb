package api

import (
	"net/http"

	"github.com/avelar/recallgraph/internal/models"
)

type statusRequest struct {
	UserID       int64  `json:"user_id"`
	TargetStatus string `json:"target_status"`
}

func (s *Server) handleSetStatus(w http.ResponseWriter, r *http.Request) {
	key, err := itemKeyParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req statusRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	progress, err := s.Statuses.SetStatus(r.Context(), req.UserID, key, models.Status(req.TargetStatus))
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, map[string]any{"progress": progress})
}
