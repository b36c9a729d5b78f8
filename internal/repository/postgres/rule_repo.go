package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"tradeflow/internal/domain"
	"tradeflow/internal/port"
)

type ruleRepo struct {
	db *sqlx.DB
}

// NewRuleRepo creates a new PostgreSQL-backed RuleRepository.
func NewRuleRepo(db *sqlx.DB) port.RuleRepository {
	return &ruleRepo{db: db}
}

func (r *ruleRepo) ListArcRules(ctx context.Context, tenantID uuid.UUID) ([]domain.ArcRule, error) {
	var rules []domain.ArcRule
	err := r.db.SelectContext(ctx, &rules,
		`SELECT id, tenant_id, arc_appearance, result_display, created_at
		 FROM arc_rules WHERE tenant_id = $1 ORDER BY position`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("ruleRepo.ListArcRules: %w", err)
	}
	return rules, nil
}

func (r *ruleRepo) ListEngineModelRules(ctx context.Context, tenantID uuid.UUID) ([]domain.EngineModelRule, error) {
	var rules []domain.EngineModelRule
	err := r.db.SelectContext(ctx, &rules,
		`SELECT id, tenant_id, engine_model_title, common_prefix, result_display, created_at
		 FROM engine_model_rules WHERE tenant_id = $1 ORDER BY position`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("ruleRepo.ListEngineModelRules: %w", err)
	}
	return rules, nil
}

func (r *ruleRepo) ListWorkScopeRules(ctx context.Context, tenantID uuid.UUID) ([]domain.WorkScopeRule, error) {
	var rules []domain.WorkScopeRule
	err := r.db.SelectContext(ctx, &rules,
		`SELECT id, tenant_id, overhaul_keywords, result_display, created_at
		 FROM work_scope_rules WHERE tenant_id = $1 ORDER BY position`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("ruleRepo.ListWorkScopeRules: %w", err)
	}
	return rules, nil
}

func (r *ruleRepo) ListPartNumberRules(ctx context.Context, tenantID uuid.UUID) ([]domain.PartNumberRule, error) {
	var rules []domain.PartNumberRule
	err := r.db.SelectContext(ctx, &rules,
		`SELECT id, tenant_id, part_number, product_code, created_at
		 FROM part_number_rules WHERE tenant_id = $1 ORDER BY position`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("ruleRepo.ListPartNumberRules: %w", err)
	}
	return rules, nil
}

// ReplaceAll stores each table in slice order; the slice index becomes the lookup position.
func (r *ruleRepo) ReplaceAll(ctx context.Context, tenantID uuid.UUID, set *domain.RuleSet) error {
	now := time.Now().UTC()

	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		for _, table := range []string{"arc_rules", "engine_model_rules", "work_scope_rules", "part_number_rules"} {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE tenant_id = $1", tenantID); err != nil {
				return err
			}
		}

		for i := range set.Arc {
			rule := &set.Arc[i]
			stampRule(&rule.ID, &rule.TenantID, &rule.CreatedAt, tenantID, now)
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO arc_rules (id, tenant_id, position, arc_appearance, result_display, created_at)
				 VALUES ($1, $2, $3, $4, $5, $6)`,
				rule.ID, rule.TenantID, i, rule.ArcAppearance, rule.ResultDisplay, rule.CreatedAt); err != nil {
				return err
			}
		}
		for i := range set.EngineModel {
			rule := &set.EngineModel[i]
			stampRule(&rule.ID, &rule.TenantID, &rule.CreatedAt, tenantID, now)
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO engine_model_rules (id, tenant_id, position, engine_model_title, common_prefix, result_display, created_at)
				 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				rule.ID, rule.TenantID, i, rule.EngineModelTitle, rule.CommonPrefix, rule.ResultDisplay, rule.CreatedAt); err != nil {
				return err
			}
		}
		for i := range set.WorkScope {
			rule := &set.WorkScope[i]
			stampRule(&rule.ID, &rule.TenantID, &rule.CreatedAt, tenantID, now)
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO work_scope_rules (id, tenant_id, position, overhaul_keywords, result_display, created_at)
				 VALUES ($1, $2, $3, $4, $5, $6)`,
				rule.ID, rule.TenantID, i, rule.OverhaulKeywords, rule.ResultDisplay, rule.CreatedAt); err != nil {
				return err
			}
		}
		for i := range set.PartNumber {
			rule := &set.PartNumber[i]
			stampRule(&rule.ID, &rule.TenantID, &rule.CreatedAt, tenantID, now)
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO part_number_rules (id, tenant_id, position, part_number, product_code, created_at)
				 VALUES ($1, $2, $3, $4, $5, $6)`,
				rule.ID, rule.TenantID, i, rule.PartNumber, rule.ProductCode, rule.CreatedAt); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("ruleRepo.ReplaceAll: %w", err)
	}
	return nil
}

func stampRule(id, tenant *uuid.UUID, createdAt *time.Time, tenantID uuid.UUID, now time.Time) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
	*tenant = tenantID
	*createdAt = now
}
