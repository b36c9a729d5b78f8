package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"tradeflow/internal/domain"
)

// MockDocumentItemRepo is a mock implementation of port.DocumentItemRepository.
type MockDocumentItemRepo struct {
	mock.Mock
}

func (m *MockDocumentItemRepo) ListByDocument(ctx context.Context, documentID uuid.UUID) ([]domain.DocumentItem, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DocumentItem), args.Error(1)
}

func (m *MockDocumentItemRepo) ListByDocuments(ctx context.Context, documentIDs []uuid.UUID) (map[uuid.UUID][]domain.DocumentItem, error) {
	args := m.Called(ctx, documentIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID][]domain.DocumentItem), args.Error(1)
}

func (m *MockDocumentItemRepo) ReplaceAll(ctx context.Context, documentID uuid.UUID, items []domain.DocumentItem) error {
	args := m.Called(ctx, documentID, items)
	return args.Error(0)
}
