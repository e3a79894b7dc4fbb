package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/avelar/recallgraph/internal/models"
)

// MockEdgeRepository is a mock implementation of repository.EdgeRepository
type MockEdgeRepository struct {
	mock.Mock
}

func (m *MockEdgeRepository) ListByDomain(ctx context.Context, domainID int64) ([]models.PrerequisiteEdge, error) {
	args := m.Called(ctx, domainID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PrerequisiteEdge), args.Error(1)
}

func (m *MockEdgeRepository) Insert(ctx context.Context, e models.PrerequisiteEdge) (int64, error) {
	args := m.Called(ctx, e)
	return args.Get(0).(int64), args.Error(1)
}
