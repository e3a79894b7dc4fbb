package services

import (
	"context"
	"database/sql"
	"errors"

	apperrors "github.com/avelar/recallgraph/internal/errors"
	"github.com/avelar/recallgraph/internal/logger"
	"github.com/avelar/recallgraph/internal/models"
	"github.com/avelar/recallgraph/internal/repository"
)

// SessionService manages study-session lifecycle.
type SessionService interface {
	StartSession(ctx context.Context, userID int64) (*models.StudySession, error)
	EndSession(ctx context.Context, id string) (*models.StudySession, error)
}

type sessionService struct {
	sessions repository.SessionRepository
}

// NewSessionService creates a new SessionService
func NewSessionService(sessions repository.SessionRepository) SessionService {
	return &sessionService{sessions: sessions}
}

func (s *sessionService) StartSession(ctx context.Context, userID int64) (*models.StudySession, error) {
	log := logger.FromContext(ctx)

	if userID <= 0 {
		return nil, apperrors.NewValidationError("user_id", "must be positive")
	}

	sess, err := s.sessions.Create(ctx, userID)
	if err != nil {
		log.Error("failed to start session: %v", err)
		return nil, apperrors.NewTransientError(err)
	}
	log.Info("session started: id=%s, user_id=%d", sess.ID, sess.UserID)
	return sess, nil
}

func (s *sessionService) EndSession(ctx context.Context, id string) (*models.StudySession, error) {
	log := logger.FromContext(ctx)

	err := s.sessions.End(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		sess, getErr := s.sessions.Get(ctx, id)
		if getErr == nil && sess != nil {
			// already ended; ending twice is harmless
			return sess, nil
		}
		return nil, apperrors.NewNotFoundError("session", id)
	}
	if err != nil {
		log.Error("failed to end session: %v", err)
		return nil, apperrors.NewTransientError(err)
	}

	sess, err := s.sessions.Get(ctx, id)
	if err != nil || sess == nil {
		return nil, apperrors.NewTransientError(err)
	}
	log.Info("session ended: id=%s, reviews=%d", sess.ID, sess.ReviewCount)
	return sess, nil
}
