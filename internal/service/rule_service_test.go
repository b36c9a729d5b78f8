package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tradeflow/internal/domain"
	"tradeflow/internal/service"
	"tradeflow/mocks"
)

func TestRuleService_Load(t *testing.T) {
	repo := new(mocks.MockRuleRepo)
	svc := service.NewRuleService(repo, testLog)
	tenantID := uuid.New()

	repo.On("ListArcRules", mock.Anything, tenantID).
		Return([]domain.ArcRule{{ArcAppearance: "EASA", ResultDisplay: "EASA Form 1"}}, nil)
	repo.On("ListEngineModelRules", mock.Anything, tenantID).Return([]domain.EngineModelRule{}, nil)
	repo.On("ListWorkScopeRules", mock.Anything, tenantID).Return([]domain.WorkScopeRule{}, nil)
	repo.On("ListPartNumberRules", mock.Anything, tenantID).
		Return([]domain.PartNumberRule{{PartNumber: "335-", ProductCode: "PC-1"}}, nil)

	set, err := svc.Load(context.Background(), tenantID)
	require.NoError(t, err)
	require.Len(t, set.Arc, 1)
	require.Len(t, set.PartNumber, 1)
	assert.Equal(t, "EASA Form 1", set.Arc[0].ResultDisplay)

	repo.AssertExpectations(t)
}

func TestRuleService_Load_RepoError(t *testing.T) {
	repo := new(mocks.MockRuleRepo)
	svc := service.NewRuleService(repo, testLog)
	tenantID := uuid.New()

	repo.On("ListArcRules", mock.Anything, tenantID).Return(nil, errors.New("db down"))

	_, err := svc.Load(context.Background(), tenantID)
	assert.Error(t, err)
	repo.AssertNotCalled(t, "ListEngineModelRules", mock.Anything, mock.Anything)
}

func TestRuleService_Engine_UsesLoadedRules(t *testing.T) {
	repo := new(mocks.MockRuleRepo)
	svc := service.NewRuleService(repo, testLog)
	tenantID := uuid.New()

	repo.On("ListArcRules", mock.Anything, tenantID).Return([]domain.ArcRule{}, nil)
	repo.On("ListEngineModelRules", mock.Anything, tenantID).Return([]domain.EngineModelRule{}, nil)
	repo.On("ListWorkScopeRules", mock.Anything, tenantID).
		Return([]domain.WorkScopeRule{{OverhaulKeywords: "OVERHAUL", ResultDisplay: "OH"}}, nil)
	repo.On("ListPartNumberRules", mock.Anything, tenantID).Return([]domain.PartNumberRule{}, nil)

	engine, err := svc.Engine(context.Background(), tenantID)
	require.NoError(t, err)

	got, ok := engine.WorkScope("FULL OVERHAUL")
	assert.True(t, ok)
	assert.Equal(t, "OH", got)
}

func TestRuleService_Replace(t *testing.T) {
	repo := new(mocks.MockRuleRepo)
	svc := service.NewRuleService(repo, testLog)
	tenantID := uuid.New()
	set := &domain.RuleSet{
		EngineModel: []domain.EngineModelRule{{EngineModelTitle: "CFM56", CommonPrefix: "CFM", ResultDisplay: "CFM56-7B"}},
	}

	repo.On("ReplaceAll", mock.Anything, tenantID, set).Return(nil)

	require.NoError(t, svc.Replace(context.Background(), tenantID, set))
	repo.AssertExpectations(t)
}

func TestRuleService_Replace_RejectsBlankTrigger(t *testing.T) {
	repo := new(mocks.MockRuleRepo)
	svc := service.NewRuleService(repo, testLog)

	err := svc.Replace(context.Background(), uuid.New(), &domain.RuleSet{
		PartNumber: []domain.PartNumberRule{{PartNumber: "  ", ProductCode: "PC"}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidRules)
	repo.AssertNotCalled(t, "ReplaceAll", mock.Anything, mock.Anything, mock.Anything)
}

func TestRuleService_Replace_Nil(t *testing.T) {
	svc := service.NewRuleService(new(mocks.MockRuleRepo), testLog)
	assert.ErrorIs(t, svc.Replace(context.Background(), uuid.New(), nil), domain.ErrInvalidRules)
}
