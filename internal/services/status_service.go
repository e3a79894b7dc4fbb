package services

import (
	"context"

	"github.com/avelar/recallgraph/internal/errors"
	"github.com/avelar/recallgraph/internal/graph"
	"github.com/avelar/recallgraph/internal/logger"
	"github.com/avelar/recallgraph/internal/models"
	"github.com/avelar/recallgraph/internal/repository"
)

// StatusService sets an item's mastery status for a user and cascades the
// change through the prerequisite graph.
type StatusService interface {
	SetStatus(ctx context.Context, userID int64, key models.ItemKey, target models.Status) (*models.Progress, error)
}

type statusService struct {
	progress repository.ProgressRepository
	edges    repository.EdgeRepository
	items    repository.ItemRepository
}

// NewStatusService creates a new StatusService
func NewStatusService(progress repository.ProgressRepository, edges repository.EdgeRepository, items repository.ItemRepository) StatusService {
	return &statusService{progress: progress, edges: edges, items: items}
}

func (s *statusService) SetStatus(ctx context.Context, userID int64, key models.ItemKey, target models.Status) (*models.Progress, error) {
	log := logger.FromContext(ctx)
	log.Debug("setting status: user_id=%d, item=%s, target=%s", userID, key, target)

	if userID <= 0 {
		return nil, errors.NewValidationError("user_id", "must be positive")
	}
	if !models.ValidStatus(string(target)) {
		return nil, errors.NewValidationError("target_status", "must be fresh, tackling, grasped or learned")
	}

	item, err := s.items.Get(ctx, key)
	if err != nil {
		return nil, errors.NewTransientError(err)
	}
	if item == nil {
		return nil, errors.NewNotFoundError("item", key)
	}

	domainEdges, err := s.edges.ListByDomain(ctx, item.DomainID)
	if err != nil {
		return nil, errors.NewTransientError(err)
	}
	g := graph.Build(domainEdges)

	var updated models.Progress
	err = s.progress.InTx(ctx, func(tx repository.ProgressTx) error {
		p, err := tx.Get(ctx, userID, key)
		if err != nil {
			return err
		}
		if p == nil {
			fresh := models.NewProgress(userID, key)
			p = &fresh
		}
		p.Status = target
		updated, err = tx.Upsert(ctx, *p)
		if err != nil {
			return err
		}

		c := cascade{ctx: ctx, tx: tx, g: g, userID: userID, visited: map[models.ItemKey]bool{key: true}}
		switch target {
		case models.StatusGrasped:
			return c.promotePrereqs(key)
		case models.StatusTackling:
			return c.promoteDependents(key)
		case models.StatusFresh:
			return c.demoteDependents(key)
		}
		// learned has no cascade rule
		return nil
	})
	if err != nil {
		if _, ok := err.(*errors.AppError); ok {
			return nil, err
		}
		log.Error("status transaction failed: %v", err)
		return nil, errors.NewTransientError(err)
	}

	log.Debug("status set: item=%s, status=%s", key, target)
	return &updated, nil
}

type cascade struct {
	ctx     context.Context
	tx      repository.ProgressTx
	g       *graph.Graph
	userID  int64
	visited map[models.ItemKey]bool
}

func (c *cascade) get(key models.ItemKey) (*models.Progress, error) {
	p, err := c.tx.Get(c.ctx, c.userID, key)
	if err != nil {
		return nil, err
	}
	if p == nil {
		fresh := models.NewProgress(c.userID, key)
		p = &fresh
	}
	return p, nil
}

// promotePrereqs walks prerequisite edges and lifts fresh/tackling items to
// grasped. Already grasped or learned items are left alone, but the walk
// still continues through them.
func (c *cascade) promotePrereqs(key models.ItemKey) error {
	node := c.g.Node(key)
	if node == nil {
		return nil
	}
	for _, e := range node.Prereqs {
		if c.visited[e.To] {
			continue
		}
		c.visited[e.To] = true

		p, err := c.get(e.To)
		if err != nil {
			return err
		}
		if p.Status == models.StatusFresh || p.Status == models.StatusTackling {
			p.Status = models.StatusGrasped
			if _, err := c.tx.Upsert(c.ctx, *p); err != nil {
				return err
			}
		}
		if err := c.promotePrereqs(e.To); err != nil {
			return err
		}
	}
	return nil
}

// promoteDependents walks dependent edges and moves fresh/grasped items to
// tackling.
func (c *cascade) promoteDependents(key models.ItemKey) error {
	node := c.g.Node(key)
	if node == nil {
		return nil
	}
	for _, e := range node.Dependents {
		if c.visited[e.To] {
			continue
		}
		c.visited[e.To] = true

		p, err := c.get(e.To)
		if err != nil {
			return err
		}
		if p.Status == models.StatusFresh || p.Status == models.StatusGrasped {
			p.Status = models.StatusTackling
			if _, err := c.tx.Upsert(c.ctx, *p); err != nil {
				return err
			}
		}
		if err := c.promoteDependents(e.To); err != nil {
			return err
		}
	}
	return nil
}

// demoteDependents walks dependent edges and drops grasped items back to
// fresh. The walk does not continue past a dependent that is not grasped,
// so absent or already-demoted branches stay untouched.
func (c *cascade) demoteDependents(key models.ItemKey) error {
	node := c.g.Node(key)
	if node == nil {
		return nil
	}
	for _, e := range node.Dependents {
		if c.visited[e.To] {
			continue
		}
		c.visited[e.To] = true

		p, err := c.tx.Get(c.ctx, c.userID, e.To)
		if err != nil {
			return err
		}
		if p == nil || p.Status != models.StatusGrasped {
			continue
		}
		p.Status = models.StatusFresh
		if _, err := c.tx.Upsert(c.ctx, *p); err != nil {
			return err
		}
		if err := c.demoteDependents(e.To); err != nil {
			return err
		}
	}
	return nil
}
