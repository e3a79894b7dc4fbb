package services

import (
	"context"
	"time"

	"github.com/avelar/recallgraph/internal/engine"
	"github.com/avelar/recallgraph/internal/errors"
	"github.com/avelar/recallgraph/internal/graph"
	"github.com/avelar/recallgraph/internal/logger"
	"github.com/avelar/recallgraph/internal/models"
	"github.com/avelar/recallgraph/internal/repository"
)

// DueService answers the due-reviews query: which grasped items are due for
// a user in a domain, ordered so the most impactful reviews come first.
type DueService interface {
	ListDue(ctx context.Context, userID, domainID int64, filter models.KindFilter) ([]models.DueItem, error)
}

type dueService struct {
	progress repository.ProgressRepository
	edges    repository.EdgeRepository
}

// NewDueService creates a new DueService
func NewDueService(progress repository.ProgressRepository, edges repository.EdgeRepository) DueService {
	return &dueService{progress: progress, edges: edges}
}

func (s *dueService) ListDue(ctx context.Context, userID, domainID int64, filter models.KindFilter) ([]models.DueItem, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing due reviews: user_id=%d, domain_id=%d, filter=%s", userID, domainID, filter)

	if userID <= 0 {
		return nil, errors.NewValidationError("user_id", "must be positive")
	}
	switch filter {
	case models.FilterDefinition, models.FilterExercise, models.FilterMixed:
	default:
		return nil, errors.NewValidationError("kind", "must be definition, exercise or mixed")
	}

	due, err := s.progress.ListDue(ctx, userID, domainID, filter, time.Now())
	if err != nil {
		return nil, errors.NewTransientError(err)
	}
	if len(due) == 0 {
		return []models.DueItem{}, nil
	}

	domainEdges, err := s.edges.ListByDomain(ctx, domainID)
	if err != nil {
		return nil, errors.NewTransientError(err)
	}
	g := graph.Build(domainEdges)

	ordered := engine.OrderReviews(due, g)
	log.Debug("found %d due reviews", len(ordered))
	return ordered, nil
}
