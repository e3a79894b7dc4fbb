package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/avelar/recallgraph/internal/errors"
	"github.com/avelar/recallgraph/internal/logger"
	"github.com/avelar/recallgraph/internal/models"
)

func respondJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode response: %v", err)
	}
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.NewBadRequestError("invalid JSON body")
	}
	return nil
}

// itemKeyParam reads the {kind}/{id} pair from the URL.
func itemKeyParam(r *http.Request) (models.ItemKey, error) {
	kind := chi.URLParam(r, "kind")
	if !models.ValidKind(kind) {
		return models.ItemKey{}, errors.NewBadRequestError("item kind must be definition or exercise")
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return models.ItemKey{}, errors.NewBadRequestError("invalid item id")
	}
	return models.ItemKey{ID: id, Kind: models.ItemKind(kind)}, nil
}
