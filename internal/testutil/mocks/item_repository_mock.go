package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/avelar/recallgraph/internal/models"
)

// MockItemRepository is a mock implementation of repository.ItemRepository
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) Get(ctx context.Context, key models.ItemKey) (*models.Item, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Item), args.Error(1)
}

func (m *MockItemRepository) Insert(ctx context.Context, item models.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}
