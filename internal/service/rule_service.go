package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"tradeflow/internal/domain"
	"tradeflow/internal/logger"
	"tradeflow/internal/port"
	"tradeflow/internal/rules"
)

// RuleService defines the substitution rule management contract.
type RuleService interface {
	Load(ctx context.Context, tenantID uuid.UUID) (*domain.RuleSet, error)
	Replace(ctx context.Context, tenantID uuid.UUID, set *domain.RuleSet) error
	Engine(ctx context.Context, tenantID uuid.UUID) (*rules.Engine, error)
}

type ruleService struct {
	ruleRepo port.RuleRepository
	log      *logger.Logger
}

// NewRuleService creates a new RuleService implementation.
func NewRuleService(ruleRepo port.RuleRepository, log *logger.Logger) RuleService {
	return &ruleService{ruleRepo: ruleRepo, log: log}
}

// Load returns the four rule tables of the tenant, each in lookup order.
func (s *ruleService) Load(ctx context.Context, tenantID uuid.UUID) (*domain.RuleSet, error) {
	arc, err := s.ruleRepo.ListArcRules(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	engineModel, err := s.ruleRepo.ListEngineModelRules(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	workScope, err := s.ruleRepo.ListWorkScopeRules(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	partNumber, err := s.ruleRepo.ListPartNumberRules(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return &domain.RuleSet{
		Arc:         arc,
		EngineModel: engineModel,
		WorkScope:   workScope,
		PartNumber:  partNumber,
	}, nil
}

func (s *ruleService) Replace(ctx context.Context, tenantID uuid.UUID, set *domain.RuleSet) error {
	if set == nil {
		return domain.ErrInvalidRules
	}
	if err := validateRuleSet(set); err != nil {
		return err
	}

	s.log.Info("ruleService.Replace: replacing rules",
		"tenant_id", tenantID,
		"arc", len(set.Arc),
		"engine_model", len(set.EngineModel),
		"work_scope", len(set.WorkScope),
		"part_number", len(set.PartNumber))

	return s.ruleRepo.ReplaceAll(ctx, tenantID, set)
}

func (s *ruleService) Engine(ctx context.Context, tenantID uuid.UUID) (*rules.Engine, error) {
	set, err := s.Load(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("loading rules: %w", err)
	}
	return rules.NewEngine(*set), nil
}

// validateRuleSet rejects rules whose trigger or replacement is blank.
func validateRuleSet(set *domain.RuleSet) error {
	blank := func(s string) bool { return strings.TrimSpace(s) == "" }

	for i, r := range set.Arc {
		if blank(r.ArcAppearance) || blank(r.ResultDisplay) {
			return fmt.Errorf("%w: arc rule %d", domain.ErrInvalidRules, i)
		}
	}
	for i, r := range set.EngineModel {
		if blank(r.EngineModelTitle) || blank(r.ResultDisplay) {
			return fmt.Errorf("%w: engine model rule %d", domain.ErrInvalidRules, i)
		}
	}
	for i, r := range set.WorkScope {
		if blank(r.OverhaulKeywords) || blank(r.ResultDisplay) {
			return fmt.Errorf("%w: work scope rule %d", domain.ErrInvalidRules, i)
		}
	}
	for i, r := range set.PartNumber {
		if blank(r.PartNumber) || blank(r.ProductCode) {
			return fmt.Errorf("%w: part number rule %d", domain.ErrInvalidRules, i)
		}
	}
	return nil
}
