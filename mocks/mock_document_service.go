package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"tradeflow/internal/accuracy"
	"tradeflow/internal/annotation"
	"tradeflow/internal/domain"
	"tradeflow/internal/service"
)

// MockDocumentService is a mock implementation of service.DocumentService.
type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) CreateFromFile(ctx context.Context, input *service.CreateFromFileInput) (*domain.Document, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentService) CreateFromText(ctx context.Context, input *service.CreateFromTextInput) (*domain.Document, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentService) CreateBatch(ctx context.Context, inputs []service.CreateFromFileInput) []service.BatchResult {
	args := m.Called(ctx, inputs)
	return args.Get(0).([]service.BatchResult)
}

func (m *MockDocumentService) GetByID(ctx context.Context, tenantID, docID uuid.UUID) (*domain.Document, error) {
	args := m.Called(ctx, tenantID, docID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentService) List(ctx context.Context, tenantID uuid.UUID, docType *domain.DocumentType, offset, limit int) ([]domain.Document, int, error) {
	args := m.Called(ctx, tenantID, docType, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Document), args.Int(1), args.Error(2)
}

func (m *MockDocumentService) ListItems(ctx context.Context, tenantID, docID uuid.UUID) ([]domain.DocumentItem, error) {
	args := m.Called(ctx, tenantID, docID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DocumentItem), args.Error(1)
}

func (m *MockDocumentService) UpdateFields(ctx context.Context, tenantID, docID uuid.UUID, patch *service.DocumentFieldsPatch) (*domain.Document, error) {
	args := m.Called(ctx, tenantID, docID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentService) ReplaceItems(ctx context.Context, tenantID, docID uuid.UUID, items []domain.DocumentItem) ([]domain.DocumentItem, error) {
	args := m.Called(ctx, tenantID, docID, items)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DocumentItem), args.Error(1)
}

func (m *MockDocumentService) Approve(ctx context.Context, tenantID, docID, userID uuid.UUID) (*domain.Document, error) {
	args := m.Called(ctx, tenantID, docID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentService) Verify(ctx context.Context, tenantID, docID uuid.UUID) (*accuracy.Report, error) {
	args := m.Called(ctx, tenantID, docID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accuracy.Report), args.Error(1)
}

func (m *MockDocumentService) TrainingAnnotations(ctx context.Context, tenantID, docID uuid.UUID) (*annotation.PageSet, error) {
	args := m.Called(ctx, tenantID, docID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*annotation.PageSet), args.Error(1)
}

func (m *MockDocumentService) Delete(ctx context.Context, tenantID, docID uuid.UUID) error {
	args := m.Called(ctx, tenantID, docID)
	return args.Error(0)
}
