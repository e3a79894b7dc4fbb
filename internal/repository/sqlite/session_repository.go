package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/avelar/recallgraph/internal/logger"
	"github.com/avelar/recallgraph/internal/models"
	"github.com/avelar/recallgraph/internal/repository"
)

type sessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new SessionRepository implementation
func NewSessionRepository(db *sql.DB) repository.SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, userID int64) (*models.StudySession, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")

	id := uuid.NewString()
	log.Debug("creating session: id=%s, user_id=%d", id, userID)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO study_sessions (id, user_id)
VALUES (?, ?)
`, id, userID)
	if err != nil {
		log.Error("failed to create session: %v", err)
		return nil, err
	}
	return r.Get(ctx, id)
}

func (r *sessionRepository) Get(ctx context.Context, id string) (*models.StudySession, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")

	var s models.StudySession
	var ended sql.NullTime
	err := r.db.QueryRowContext(ctx, `
SELECT id, user_id, started_at, ended_at, review_count, success_count
FROM study_sessions
WHERE id = ?
`, id).Scan(&s.ID, &s.UserID, &s.StartedAt, &ended, &s.ReviewCount, &s.SuccessCount)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("session not found: id=%s", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get session: %v", err)
		return nil, err
	}
	s.EndedAt = timePtr(ended)
	return &s, nil
}

func (r *sessionRepository) RecordReview(ctx context.Context, id string, success bool) error {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("recording review on session: id=%s, success=%v", id, success)

	_, err := r.db.ExecContext(ctx, `
UPDATE study_sessions
SET review_count = review_count + 1,
    success_count = success_count + CASE WHEN ? THEN 1 ELSE 0 END
WHERE id = ? AND ended_at IS NULL
`, success, id)
	if err != nil {
		log.Error("failed to record review on session: %v", err)
	}
	return err
}

func (r *sessionRepository) End(ctx context.Context, id string) error {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("ending session: id=%s", id)

	res, err := r.db.ExecContext(ctx, `
UPDATE study_sessions
SET ended_at = CURRENT_TIMESTAMP
WHERE id = ? AND ended_at IS NULL
`, id)
	if err != nil {
		log.Error("failed to end session: %v", err)
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		log.Debug("session already ended or missing: id=%s", id)
		return sql.ErrNoRows
	}
	return nil
}
