package api

import (
	"net/http"

	"github.com/avelar/recallgraph/internal/logger"
	"github.com/avelar/recallgraph/internal/models"
)

func (s *Server) handleSubmitReview(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var sub models.ReviewSubmission
	if err := decodeJSON(r, &sub); err != nil {
		handleError(w, r, err)
		return
	}

	log.Debug("review submission: user_id=%d, item=%s, quality=%d", sub.UserID, sub.Key(), sub.Quality)

	result, err := s.Reviews.SubmitReview(r.Context(), sub)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, result)
}
