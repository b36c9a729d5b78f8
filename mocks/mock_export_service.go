package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"tradeflow/internal/domain"
)

// MockExportService is a mock implementation of service.ExportService.
type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) ExportPurchaseOrders(ctx context.Context, tenantID uuid.UUID, poIDs []uuid.UUID) ([]domain.CsvRecord, error) {
	args := m.Called(ctx, tenantID, poIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CsvRecord), args.Error(1)
}
