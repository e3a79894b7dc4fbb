package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/avelar/recallgraph/internal/errors"
	"github.com/avelar/recallgraph/internal/models"
)

func (s *Server) handleListDue(w http.ResponseWriter, r *http.Request) {
	domainID, err := strconv.ParseInt(chi.URLParam(r, "domainID"), 10, 64)
	if err != nil || domainID <= 0 {
		handleError(w, r, errors.NewBadRequestError("invalid domain id"))
		return
	}

	userID, err := strconv.ParseInt(r.URL.Query().Get("user_id"), 10, 64)
	if err != nil {
		handleError(w, r, errors.NewBadRequestError("user_id query parameter required"))
		return
	}

	filter := models.KindFilter(r.URL.Query().Get("kind"))
	if filter == "" {
		filter = models.FilterMixed
	}

	due, err := s.Due.ListDue(r.Context(), userID, domainID, filter)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, map[string]any{"due": due})
}
