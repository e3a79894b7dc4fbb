package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Post("/reviews", s.handleSubmitReview)
		r.Post("/items/{kind}/{id}/status", s.handleSetStatus)
		r.Get("/domains/{domainID}/due", s.handleListDue)
		r.Post("/sessions", s.handleStartSession)
		r.Post("/sessions/{id}/end", s.handleEndSession)
	})

	return r
}
