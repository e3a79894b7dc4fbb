package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/avelar/recallgraph/internal/models"
)

// MockSessionRepository is a mock implementation of repository.SessionRepository
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Create(ctx context.Context, userID int64) (*models.StudySession, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StudySession), args.Error(1)
}

func (m *MockSessionRepository) Get(ctx context.Context, id string) (*models.StudySession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StudySession), args.Error(1)
}

func (m *MockSessionRepository) RecordReview(ctx context.Context, id string, success bool) error {
	args := m.Called(ctx, id, success)
	return args.Error(0)
}

func (m *MockSessionRepository) End(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
