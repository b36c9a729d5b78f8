package port

import (
	"context"

	"github.com/google/uuid"

	"tradeflow/internal/domain"
)

// FileMetaRepository defines the contract for file metadata persistence.
// All query methods include tenantID for tenant isolation.
type FileMetaRepository interface {
	Create(ctx context.Context, meta *domain.FileMeta) error
	GetByID(ctx context.Context, tenantID, fileID uuid.UUID) (*domain.FileMeta, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.FileMeta, int, error)
	UpdateStatus(ctx context.Context, tenantID, fileID uuid.UUID, status domain.FileStatus) error
	Delete(ctx context.Context, tenantID, fileID uuid.UUID) error
}

// RuleRepository is the rule lookup collaborator. Each list is returned in lookup order.
type RuleRepository interface {
	ListArcRules(ctx context.Context, tenantID uuid.UUID) ([]domain.ArcRule, error)
	ListEngineModelRules(ctx context.Context, tenantID uuid.UUID) ([]domain.EngineModelRule, error)
	ListWorkScopeRules(ctx context.Context, tenantID uuid.UUID) ([]domain.WorkScopeRule, error)
	ListPartNumberRules(ctx context.Context, tenantID uuid.UUID) ([]domain.PartNumberRule, error)
	// ReplaceAll swaps every rule table of the tenant for the given set in one transaction.
	ReplaceAll(ctx context.Context, tenantID uuid.UUID, set *domain.RuleSet) error
}
