package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"tradeflow/internal/domain"
	"tradeflow/internal/rules"
)

// MockRuleService is a mock implementation of service.RuleService.
type MockRuleService struct {
	mock.Mock
}

func (m *MockRuleService) Load(ctx context.Context, tenantID uuid.UUID) (*domain.RuleSet, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RuleSet), args.Error(1)
}

func (m *MockRuleService) Replace(ctx context.Context, tenantID uuid.UUID, set *domain.RuleSet) error {
	args := m.Called(ctx, tenantID, set)
	return args.Error(0)
}

func (m *MockRuleService) Engine(ctx context.Context, tenantID uuid.UUID) (*rules.Engine, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rules.Engine), args.Error(1)
}
