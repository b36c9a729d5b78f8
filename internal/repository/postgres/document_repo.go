package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"tradeflow/internal/domain"
	"tradeflow/internal/port"
)

type documentRepo struct {
	db *sqlx.DB
}

// NewDocumentRepo creates a new PostgreSQL-backed DocumentRepository.
func NewDocumentRepo(db *sqlx.DB) port.DocumentRepository {
	return &documentRepo{db: db}
}

func (r *documentRepo) Create(ctx context.Context, doc *domain.Document) error {
	now := time.Now().UTC()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	query := `INSERT INTO documents (
		id, tenant_id, file_id, document_type, name, source, page_texts,
		po_number, po_date, import_number, import_date,
		end_user_customer_name, end_user_customer_number, work_scope, arc_requirement,
		tsn, csn, customer_name, co_code,
		t_po_number_page, t_po_date_page, t_import_number_page, t_import_date_page,
		t_end_user_customer_name_page, t_work_scope_page, t_arc_requirement_page,
		t_tsn_page, t_csn_page,
		parsing_status, parsing_error, parsed_at, model_used, prompt_used,
		review_status, approved_by, approved_at, accuracy, verified_at,
		created_by, created_at, updated_at
	) VALUES (
		:id, :tenant_id, :file_id, :document_type, :name, :source, :page_texts,
		:po_number, :po_date, :import_number, :import_date,
		:end_user_customer_name, :end_user_customer_number, :work_scope, :arc_requirement,
		:tsn, :csn, :customer_name, :co_code,
		:t_po_number_page, :t_po_date_page, :t_import_number_page, :t_import_date_page,
		:t_end_user_customer_name_page, :t_work_scope_page, :t_arc_requirement_page,
		:t_tsn_page, :t_csn_page,
		:parsing_status, :parsing_error, :parsed_at, :model_used, :prompt_used,
		:review_status, :approved_by, :approved_at, :accuracy, :verified_at,
		:created_by, :created_at, :updated_at
	)`

	if _, err := r.db.NamedExecContext(ctx, query, doc); err != nil {
		if strings.Contains(err.Error(), "duplicate key") && strings.Contains(err.Error(), "file") {
			return domain.ErrDocumentAlreadyExists
		}
		return fmt.Errorf("documentRepo.Create: %w", err)
	}
	return nil
}

func (r *documentRepo) GetByID(ctx context.Context, tenantID, docID uuid.UUID) (*domain.Document, error) {
	var doc domain.Document
	err := r.db.GetContext(ctx, &doc,
		"SELECT * FROM documents WHERE id = $1 AND tenant_id = $2", docID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("documentRepo.GetByID: %w", err)
	}
	return &doc, nil
}

// GetByIDs returns the documents in the order of docIDs. Unknown ids are skipped.
func (r *documentRepo) GetByIDs(ctx context.Context, tenantID uuid.UUID, docIDs []uuid.UUID) ([]domain.Document, error) {
	if len(docIDs) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In("SELECT * FROM documents WHERE tenant_id = ? AND id IN (?)", tenantID, docIDs)
	if err != nil {
		return nil, fmt.Errorf("documentRepo.GetByIDs: %w", err)
	}

	var docs []domain.Document
	if err := r.db.SelectContext(ctx, &docs, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("documentRepo.GetByIDs: %w", err)
	}

	byID := make(map[uuid.UUID]domain.Document, len(docs))
	for _, d := range docs {
		byID[d.ID] = d
	}
	ordered := make([]domain.Document, 0, len(docs))
	for _, id := range docIDs {
		if d, ok := byID[id]; ok {
			ordered = append(ordered, d)
			delete(byID, id)
		}
	}
	return ordered, nil
}

func (r *documentRepo) GetByFileID(ctx context.Context, tenantID, fileID uuid.UUID) (*domain.Document, error) {
	var doc domain.Document
	err := r.db.GetContext(ctx, &doc,
		"SELECT * FROM documents WHERE file_id = $1 AND tenant_id = $2", fileID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("documentRepo.GetByFileID: %w", err)
	}
	return &doc, nil
}

// ListImportsByNumber returns the newest import declaration for each requested number.
func (r *documentRepo) ListImportsByNumber(ctx context.Context, tenantID uuid.UUID, numbers []string) ([]domain.Document, error) {
	if len(numbers) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(
		`SELECT DISTINCT ON (import_number) * FROM documents
		 WHERE tenant_id = ? AND document_type = ? AND import_number IN (?)
		 ORDER BY import_number, created_at DESC`,
		tenantID, domain.DocumentTypeImportDeclaration, numbers)
	if err != nil {
		return nil, fmt.Errorf("documentRepo.ListImportsByNumber: %w", err)
	}

	var docs []domain.Document
	if err := r.db.SelectContext(ctx, &docs, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("documentRepo.ListImportsByNumber: %w", err)
	}
	return docs, nil
}

func (r *documentRepo) List(ctx context.Context, tenantID uuid.UUID, filter port.DocumentFilter, offset, limit int) ([]domain.Document, int, error) {
	where := "tenant_id = $1"
	args := []interface{}{tenantID}
	if filter.DocumentType != nil {
		where += " AND document_type = $2"
		args = append(args, *filter.DocumentType)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM documents WHERE "+where, args...); err != nil {
		return nil, 0, fmt.Errorf("documentRepo.List count: %w", err)
	}

	n := len(args)
	query := fmt.Sprintf(`SELECT * FROM documents WHERE %s
		ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, where, n+1, n+2)
	args = append(args, limit, offset)

	var docs []domain.Document
	if err := r.db.SelectContext(ctx, &docs, query, args...); err != nil {
		return nil, 0, fmt.Errorf("documentRepo.List: %w", err)
	}
	return docs, total, nil
}

func (r *documentRepo) UpdateExtraction(ctx context.Context, doc *domain.Document) error {
	doc.UpdatedAt = time.Now().UTC()
	result, err := r.db.NamedExecContext(ctx,
		`UPDATE documents SET
			name = :name, source = :source, page_texts = :page_texts,
			po_number = :po_number, po_date = :po_date,
			import_number = :import_number, import_date = :import_date,
			end_user_customer_name = :end_user_customer_name,
			end_user_customer_number = :end_user_customer_number,
			work_scope = :work_scope, arc_requirement = :arc_requirement,
			tsn = :tsn, csn = :csn, customer_name = :customer_name, co_code = :co_code,
			t_po_number_page = :t_po_number_page, t_po_date_page = :t_po_date_page,
			t_import_number_page = :t_import_number_page, t_import_date_page = :t_import_date_page,
			t_end_user_customer_name_page = :t_end_user_customer_name_page,
			t_work_scope_page = :t_work_scope_page, t_arc_requirement_page = :t_arc_requirement_page,
			t_tsn_page = :t_tsn_page, t_csn_page = :t_csn_page,
			parsing_status = :parsing_status, parsing_error = :parsing_error, parsed_at = :parsed_at,
			model_used = :model_used, prompt_used = :prompt_used, updated_at = :updated_at
		 WHERE id = :id AND tenant_id = :tenant_id`, doc)
	if err != nil {
		return fmt.Errorf("documentRepo.UpdateExtraction: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}

func (r *documentRepo) UpdateReviewStatus(ctx context.Context, doc *domain.Document) error {
	doc.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE documents SET
			review_status = $1, approved_by = $2, approved_at = $3, updated_at = $4
		 WHERE id = $5 AND tenant_id = $6`,
		doc.ReviewStatus, doc.ApprovedBy, doc.ApprovedAt, doc.UpdatedAt,
		doc.ID, doc.TenantID)
	if err != nil {
		return fmt.Errorf("documentRepo.UpdateReviewStatus: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}

func (r *documentRepo) UpdateAccuracy(ctx context.Context, doc *domain.Document) error {
	doc.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE documents SET accuracy = $1, verified_at = $2, updated_at = $3
		 WHERE id = $4 AND tenant_id = $5`,
		doc.Accuracy, doc.VerifiedAt, doc.UpdatedAt,
		doc.ID, doc.TenantID)
	if err != nil {
		return fmt.Errorf("documentRepo.UpdateAccuracy: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}

func (r *documentRepo) Delete(ctx context.Context, tenantID, docID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM documents WHERE id = $1 AND tenant_id = $2",
		docID, tenantID)
	if err != nil {
		return fmt.Errorf("documentRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}
