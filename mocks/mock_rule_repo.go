package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"tradeflow/internal/domain"
)

// MockRuleRepo is a mock implementation of port.RuleRepository.
type MockRuleRepo struct {
	mock.Mock
}

func (m *MockRuleRepo) ListArcRules(ctx context.Context, tenantID uuid.UUID) ([]domain.ArcRule, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ArcRule), args.Error(1)
}

func (m *MockRuleRepo) ListEngineModelRules(ctx context.Context, tenantID uuid.UUID) ([]domain.EngineModelRule, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EngineModelRule), args.Error(1)
}

func (m *MockRuleRepo) ListWorkScopeRules(ctx context.Context, tenantID uuid.UUID) ([]domain.WorkScopeRule, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WorkScopeRule), args.Error(1)
}

func (m *MockRuleRepo) ListPartNumberRules(ctx context.Context, tenantID uuid.UUID) ([]domain.PartNumberRule, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PartNumberRule), args.Error(1)
}

func (m *MockRuleRepo) ReplaceAll(ctx context.Context, tenantID uuid.UUID, set *domain.RuleSet) error {
	args := m.Called(ctx, tenantID, set)
	return args.Error(0)
}
