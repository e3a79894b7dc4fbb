package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/avelar/recallgraph/internal/logger"
	"github.com/avelar/recallgraph/internal/models"
	"github.com/avelar/recallgraph/internal/repository"
)

type progressRepository struct {
	db *sql.DB
}

// NewProgressRepository creates a new ProgressRepository implementation
func NewProgressRepository(db *sql.DB) repository.ProgressRepository {
	return &progressRepository{db: db}
}

func (r *progressRepository) Get(ctx context.Context, userID int64, key models.ItemKey) (*models.Progress, error) {
	return getProgress(ctx, r.db, userID, key)
}

func (r *progressRepository) ListDue(ctx context.Context, userID, domainID int64, filter models.KindFilter, now time.Time) ([]models.DueItem, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("listing due items: user_id=%d, domain_id=%d, filter=%s", userID, domainID, filter)

	query := sqlBuilder.Select(
		"p.item_id", "p.item_kind", "i.domain_id", "i.title",
		"p.next_review", "p.accumulated_credit", "p.ease_factor", "p.repetitions",
	).
		From("user_progress p").
		Join("items i ON i.id = p.item_id AND i.kind = p.item_kind").
		Where(squirrel.Eq{
			"p.user_id":   userID,
			"i.domain_id": domainID,
			"p.status":    string(models.StatusGrasped),
		}).
		Where(squirrel.LtOrEq{"p.next_review": now}).
		OrderBy("p.next_review ASC", "p.id ASC")

	if filter != "" && filter != models.FilterMixed {
		query = query.Where(squirrel.Eq{"p.item_kind": string(filter)})
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build due query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list due items: %v", err)
		return nil, err
	}
	defer rows.Close()

	var due []models.DueItem
	for rows.Next() {
		var d models.DueItem
		var next sql.NullTime
		if err := rows.Scan(&d.ItemID, &d.ItemKind, &d.DomainID, &d.Title, &next, &d.AccumulatedCredit, &d.EaseFactor, &d.Repetitions); err != nil {
			log.Error("failed to scan due row: %v", err)
			return nil, err
		}
		d.NextReview = timePtr(next)
		due = append(due, d)
	}
	log.Debug("found %d due items", len(due))
	return due, rows.Err()
}

func (r *progressRepository) InTx(ctx context.Context, fn func(repository.ProgressTx) error) error {
	return tx(ctx, r.db, func(t *sql.Tx) error {
		return fn(&progressTx{tx: t})
	})
}

type progressTx struct {
	tx *sql.Tx
}

func (t *progressTx) Get(ctx context.Context, userID int64, key models.ItemKey) (*models.Progress, error) {
	return getProgress(ctx, t.tx, userID, key)
}

func (t *progressTx) Upsert(ctx context.Context, p models.Progress) (models.Progress, error) {
	return upsertProgress(ctx, t.tx, p)
}

func (t *progressTx) InsertHistory(ctx context.Context, h models.ReviewHistory) error {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("inserting review history: item=%s/%d, quality=%d", h.ItemKind, h.ItemID, h.Quality)

	_, err := t.tx.ExecContext(ctx, `
INSERT INTO review_history (user_id, item_id, item_kind, quality, success, time_seconds, ease_before, ease_after, interval_before, interval_after)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, h.UserID, h.ItemID, h.ItemKind, h.Quality, h.Success, h.TimeSeconds, h.EaseBefore, h.EaseAfter, h.IntervalBefore, h.IntervalAfter)
	if err != nil {
		log.Error("failed to insert review history: %v", err)
	}
	return err
}

func getProgress(ctx context.Context, q querier, userID int64, key models.ItemKey) (*models.Progress, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")

	var p models.Progress
	var last, next sql.NullTime
	err := q.QueryRowContext(ctx, `
SELECT id, user_id, item_id, item_kind, status, ease_factor, interval_days, repetitions,
       last_review, next_review, accumulated_credit, credit_postponed, total_reviews, successful_reviews, created_at
FROM user_progress
WHERE user_id = ? AND item_id = ? AND item_kind = ?
`, userID, key.ID, key.Kind).Scan(&p.ID, &p.UserID, &p.ItemID, &p.ItemKind, &p.Status, &p.EaseFactor, &p.IntervalDays, &p.Repetitions,
		&last, &next, &p.AccumulatedCredit, &p.CreditPostponed, &p.TotalReviews, &p.SuccessfulReviews, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("progress not found: user_id=%d, item=%s", userID, key)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get progress: %v", err)
		return nil, err
	}
	p.LastReview = timePtr(last)
	p.NextReview = timePtr(next)
	return &p, nil
}

func upsertProgress(ctx context.Context, q querier, p models.Progress) (models.Progress, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("upserting progress: user_id=%d, item=%s, status=%s, credit=%.4f", p.UserID, p.Key(), p.Status, p.AccumulatedCredit)

	err := execUpsert(ctx, q, p)
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		// Clamp back into range and retry once; float drift can push a
		// value a hair past the CHECK bounds.
		log.Warn("progress upsert hit constraint, re-clamping: %v", err)
		p.AccumulatedCredit = models.ClampCredit(p.AccumulatedCredit)
		if p.EaseFactor < models.MinEaseFactor {
			p.EaseFactor = models.MinEaseFactor
		}
		err = execUpsert(ctx, q, p)
	}
	if err != nil {
		log.Error("failed to upsert progress: %v", err)
		return models.Progress{}, err
	}

	err = q.QueryRowContext(ctx, `
SELECT id FROM user_progress WHERE user_id = ? AND item_id = ? AND item_kind = ?
`, p.UserID, p.ItemID, p.ItemKind).Scan(&p.ID)
	if err != nil {
		log.Error("failed to get progress id: %v", err)
		return models.Progress{}, err
	}
	return p, nil
}

func execUpsert(ctx context.Context, q querier, p models.Progress) error {
	_, err := q.ExecContext(ctx, `
INSERT INTO user_progress (
    user_id, item_id, item_kind, status, ease_factor, interval_days, repetitions,
    last_review, next_review, accumulated_credit, credit_postponed, total_reviews, successful_reviews
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(user_id, item_id, item_kind) DO UPDATE SET
    status = excluded.status,
    ease_factor = excluded.ease_factor,
    interval_days = excluded.interval_days,
    repetitions = excluded.repetitions,
    last_review = excluded.last_review,
    next_review = excluded.next_review,
    accumulated_credit = excluded.accumulated_credit,
    credit_postponed = excluded.credit_postponed,
    total_reviews = excluded.total_reviews,
    successful_reviews = excluded.successful_reviews
`, p.UserID, p.ItemID, p.ItemKind, p.Status, p.EaseFactor, p.IntervalDays, p.Repetitions,
		nullTime(p.LastReview), nullTime(p.NextReview), p.AccumulatedCredit, p.CreditPostponed, p.TotalReviews, p.SuccessfulReviews)
	return err
}
