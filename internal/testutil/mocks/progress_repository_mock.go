package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/avelar/recallgraph/internal/models"
	"github.com/avelar/recallgraph/internal/repository"
)

// MockProgressRepository is a mock implementation of repository.ProgressRepository.
// InTx hands the Tx field to the callback, so pair it with a MockProgressTx.
type MockProgressRepository struct {
	mock.Mock
	Tx repository.ProgressTx
}

func (m *MockProgressRepository) Get(ctx context.Context, userID int64, key models.ItemKey) (*models.Progress, error) {
	args := m.Called(ctx, userID, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Progress), args.Error(1)
}

func (m *MockProgressRepository) ListDue(ctx context.Context, userID, domainID int64, filter models.KindFilter, now time.Time) ([]models.DueItem, error) {
	args := m.Called(ctx, userID, domainID, filter, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.DueItem), args.Error(1)
}

func (m *MockProgressRepository) InTx(ctx context.Context, fn func(repository.ProgressTx) error) error {
	args := m.Called(ctx)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(m.Tx)
}

// MockProgressTx is a mock implementation of repository.ProgressTx
type MockProgressTx struct {
	mock.Mock
}

func (m *MockProgressTx) Get(ctx context.Context, userID int64, key models.ItemKey) (*models.Progress, error) {
	args := m.Called(ctx, userID, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Progress), args.Error(1)
}

func (m *MockProgressTx) Upsert(ctx context.Context, p models.Progress) (models.Progress, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(models.Progress), args.Error(1)
}

func (m *MockProgressTx) InsertHistory(ctx context.Context, h models.ReviewHistory) error {
	args := m.Called(ctx, h)
	return args.Error(0)
}
