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
	"github.com/avelar/recallgraph/internal/scheduler"
	"github.com/avelar/recallgraph/internal/worker"
)

// ReviewResult is what one review submission produced: every progress row
// it touched, plus the raw credit flow that drove the changes.
type ReviewResult struct {
	UpdatedProgress []models.Progress     `json:"updated_progress"`
	CreditFlow      []engine.Contribution `json:"credit_flow"`
}

// ReviewService turns explicit review outcomes into persisted scheduling
// updates across the prerequisite graph.
type ReviewService interface {
	SubmitReview(ctx context.Context, sub models.ReviewSubmission) (*ReviewResult, error)
}

type reviewService struct {
	progress repository.ProgressRepository
	edges    repository.EdgeRepository
	items    repository.ItemRepository
	sessions repository.SessionRepository
	pool     *worker.Pool
}

// NewReviewService creates a new ReviewService
func NewReviewService(progress repository.ProgressRepository, edges repository.EdgeRepository, items repository.ItemRepository, sessions repository.SessionRepository, pool *worker.Pool) ReviewService {
	return &reviewService{progress: progress, edges: edges, items: items, sessions: sessions, pool: pool}
}

func (s *reviewService) SubmitReview(ctx context.Context, sub models.ReviewSubmission) (*ReviewResult, error) {
	log := logger.FromContext(ctx)
	log.Debug("submitting review: user_id=%d, item=%s, success=%v, quality=%d", sub.UserID, sub.Key(), sub.Success, sub.Quality)

	if sub.UserID <= 0 {
		return nil, errors.NewValidationError("user_id", "must be positive")
	}
	if !models.ValidKind(string(sub.ItemKind)) {
		return nil, errors.NewValidationError("item_kind", "must be definition or exercise")
	}
	if sub.Quality < 0 || sub.Quality > 5 {
		return nil, errors.NewValidationError("quality", "must be between 0 and 5")
	}

	item, err := s.items.Get(ctx, sub.Key())
	if err != nil {
		return nil, errors.NewTransientError(err)
	}
	if item == nil {
		return nil, errors.NewNotFoundError("item", sub.Key())
	}

	domainEdges, err := s.edges.ListByDomain(ctx, item.DomainID)
	if err != nil {
		return nil, errors.NewTransientError(err)
	}
	g := graph.Build(domainEdges)

	flow := engine.PropagateCredit(sub.Key(), sub.Success, g)
	now := time.Now()

	result := &ReviewResult{CreditFlow: flow}
	err = s.progress.InTx(ctx, func(tx repository.ProgressTx) error {
		for _, c := range flow {
			var p *models.Progress
			var err error
			if c.Kind == engine.Explicit {
				p, err = applyExplicit(ctx, tx, sub, now)
			} else {
				p, err = applyImplicit(ctx, tx, sub.UserID, c, now)
			}
			if err != nil {
				return err
			}
			if p != nil {
				result.UpdatedProgress = append(result.UpdatedProgress, *p)
			}
		}
		return nil
	})
	if err != nil {
		if _, ok := err.(*errors.AppError); ok {
			return nil, err
		}
		log.Error("review transaction failed: %v", err)
		return nil, errors.NewTransientError(err)
	}

	// Session counters are a best-effort side channel, updated off the
	// request path after the transaction committed.
	if sub.SessionID != "" && s.pool != nil {
		s.pool.TrySubmit(worker.SessionTouchJob{
			Sessions:  s.sessions,
			SessionID: sub.SessionID,
			Success:   sub.Success,
		})
	}

	log.Debug("review applied: %d contributions, %d rows updated", len(flow), len(result.UpdatedProgress))
	return result, nil
}

// applyExplicit handles the directly reviewed item: scheduler run with the
// supplied quality, counters, history record, credit reset.
func applyExplicit(ctx context.Context, tx repository.ProgressTx, sub models.ReviewSubmission, now time.Time) (*models.Progress, error) {
	p, err := tx.Get(ctx, sub.UserID, sub.Key())
	if err != nil {
		return nil, err
	}
	if p == nil || p.Status != models.StatusGrasped {
		return nil, errors.NewPreconditionError("explicit review requires grasped status on " + sub.Key().String())
	}

	resetIfLapsed(p, now)

	before := scheduler.State{EaseFactor: p.EaseFactor, IntervalDays: p.IntervalDays, Repetitions: p.Repetitions}
	res := scheduler.Apply(before, sub.Quality, now)

	p.EaseFactor = res.EaseFactor
	p.IntervalDays = res.IntervalDays
	p.Repetitions = res.Repetitions
	p.LastReview = &now
	p.NextReview = &res.NextReview
	p.AccumulatedCredit = 0
	p.CreditPostponed = false
	p.TotalReviews++
	if sub.Quality >= scheduler.PassThreshold {
		p.SuccessfulReviews++
	}

	saved, err := tx.Upsert(ctx, *p)
	if err != nil {
		return nil, err
	}

	err = tx.InsertHistory(ctx, models.ReviewHistory{
		UserID:         sub.UserID,
		ItemID:         sub.ItemID,
		ItemKind:       sub.ItemKind,
		Quality:        sub.Quality,
		Success:        sub.Success,
		TimeSeconds:    sub.TimeTakenSeconds,
		EaseBefore:     before.EaseFactor,
		EaseAfter:      res.EaseFactor,
		IntervalBefore: before.IntervalDays,
		IntervalAfter:  res.IntervalDays,
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

// applyImplicit accumulates propagated credit on one item. Items without an
// existing progress row, or not currently grasped, are skipped.
func applyImplicit(ctx context.Context, tx repository.ProgressTx, userID int64, c engine.Contribution, now time.Time) (*models.Progress, error) {
	p, err := tx.Get(ctx, userID, c.Item)
	if err != nil {
		return nil, err
	}
	if p == nil || p.Status != models.StatusGrasped {
		return nil, nil
	}

	resetIfLapsed(p, now)

	newCredit := models.ClampCredit(p.AccumulatedCredit + c.Amount)
	p.AccumulatedCredit = newCredit

	switch {
	case c.Amount > 0 && newCredit >= 1.0 && !p.CreditPostponed:
		// Sustained indirect success substitutes for one real review.
		// Further positive credit has no effect until an explicit review
		// resets the postponement.
		p.AccumulatedCredit = 1.0
		p.CreditPostponed = true
		res := scheduler.Apply(scheduler.State{EaseFactor: p.EaseFactor, IntervalDays: p.IntervalDays, Repetitions: p.Repetitions}, scheduler.DefaultImplicitQuality, now)
		p.EaseFactor = res.EaseFactor
		p.IntervalDays = res.IntervalDays
		p.Repetitions = res.Repetitions
		p.NextReview = &res.NextReview
	case c.Amount < 0 && newCredit <= -1.0:
		// Saturated negative evidence pulls the review forward to now;
		// ease, interval and repetitions stay as they are.
		p.AccumulatedCredit = -1.0
		p.NextReview = &now
	}

	saved, err := tx.Upsert(ctx, *p)
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

// resetIfLapsed drops stale partial credit when the item's scheduled review
// time has already passed.
func resetIfLapsed(p *models.Progress, now time.Time) {
	if p.NextReview != nil && p.NextReview.Before(now) {
		p.AccumulatedCredit = 0
		p.CreditPostponed = false
	}
}
