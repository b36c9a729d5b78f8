package port

import (
	"context"

	"github.com/google/uuid"

	"tradeflow/internal/domain"
)

// DocumentFilter narrows a document listing.
type DocumentFilter struct {
	DocumentType *domain.DocumentType
}

// DocumentRepository defines the contract for document persistence.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, tenantID, docID uuid.UUID) (*domain.Document, error)
	GetByIDs(ctx context.Context, tenantID uuid.UUID, docIDs []uuid.UUID) ([]domain.Document, error)
	GetByFileID(ctx context.Context, tenantID, fileID uuid.UUID) (*domain.Document, error)
	// ListImportsByNumber returns import declarations whose import number is one of numbers.
	ListImportsByNumber(ctx context.Context, tenantID uuid.UUID, numbers []string) ([]domain.Document, error)
	List(ctx context.Context, tenantID uuid.UUID, filter DocumentFilter, offset, limit int) ([]domain.Document, int, error)
	// UpdateExtraction writes business fields, provenance pages, page texts and parsing state.
	UpdateExtraction(ctx context.Context, doc *domain.Document) error
	UpdateReviewStatus(ctx context.Context, doc *domain.Document) error
	UpdateAccuracy(ctx context.Context, doc *domain.Document) error
	Delete(ctx context.Context, tenantID, docID uuid.UUID) error
}

// DocumentItemRepository defines the contract for line item persistence. Items of a
// document are only ever replaced as a whole.
type DocumentItemRepository interface {
	ListByDocument(ctx context.Context, documentID uuid.UUID) ([]domain.DocumentItem, error)
	ListByDocuments(ctx context.Context, documentIDs []uuid.UUID) (map[uuid.UUID][]domain.DocumentItem, error)
	// ReplaceAll deletes the document's items and inserts items atomically.
	ReplaceAll(ctx context.Context, documentID uuid.UUID, items []domain.DocumentItem) error
}
