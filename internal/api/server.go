package api

import (
	"database/sql"

	"github.com/avelar/recallgraph/internal/services"
)

// Server bundles the HTTP handlers with the services they call.
type Server struct {
	DB       *sql.DB
	Reviews  services.ReviewService
	Statuses services.StatusService
	Due      services.DueService
	Sessions services.SessionService
}
