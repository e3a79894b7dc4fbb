package api

import (
	"net/http"

	"github.com/avelar/recallgraph/internal/logger"
)

// handleHealth is a liveness probe; it answers 200 whenever the process runs.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// handleReady is a readiness probe; it pings the database.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if err := s.DB.PingContext(r.Context()); err != nil {
		logger.FromContext(r.Context()).Warn("readiness check failed: %v", err)
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("Database unavailable"))
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Ready"))
}
