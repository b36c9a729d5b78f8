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

const insertDocumentItem = `INSERT INTO document_items (
	id, document_id, position,
	part_number, quantity_ordered, import_price, engine_model, engine_number, serial_number,
	t_part_number_page, t_quantity_ordered_page, t_import_price_page,
	t_engine_model_page, t_engine_number_page, t_serial_number_page,
	created_at
) VALUES (
	:id, :document_id, :position,
	:part_number, :quantity_ordered, :import_price, :engine_model, :engine_number, :serial_number,
	:t_part_number_page, :t_quantity_ordered_page, :t_import_price_page,
	:t_engine_model_page, :t_engine_number_page, :t_serial_number_page,
	:created_at
)`

type documentItemRepo struct {
	db *sqlx.DB
}

// NewDocumentItemRepo creates a new PostgreSQL-backed DocumentItemRepository.
func NewDocumentItemRepo(db *sqlx.DB) port.DocumentItemRepository {
	return &documentItemRepo{db: db}
}

func (r *documentItemRepo) ListByDocument(ctx context.Context, documentID uuid.UUID) ([]domain.DocumentItem, error) {
	var items []domain.DocumentItem
	err := r.db.SelectContext(ctx, &items,
		"SELECT * FROM document_items WHERE document_id = $1 ORDER BY position",
		documentID)
	if err != nil {
		return nil, fmt.Errorf("documentItemRepo.ListByDocument: %w", err)
	}
	return items, nil
}

func (r *documentItemRepo) ListByDocuments(ctx context.Context, documentIDs []uuid.UUID) (map[uuid.UUID][]domain.DocumentItem, error) {
	out := make(map[uuid.UUID][]domain.DocumentItem, len(documentIDs))
	if len(documentIDs) == 0 {
		return out, nil
	}

	query, args, err := sqlx.In(
		"SELECT * FROM document_items WHERE document_id IN (?) ORDER BY document_id, position",
		documentIDs)
	if err != nil {
		return nil, fmt.Errorf("documentItemRepo.ListByDocuments: %w", err)
	}

	var items []domain.DocumentItem
	if err := r.db.SelectContext(ctx, &items, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("documentItemRepo.ListByDocuments: %w", err)
	}
	for i := range items {
		out[items[i].DocumentID] = append(out[items[i].DocumentID], items[i])
	}
	return out, nil
}

// ReplaceAll renumbers items by slice order before inserting them.
func (r *documentItemRepo) ReplaceAll(ctx context.Context, documentID uuid.UUID, items []domain.DocumentItem) error {
	now := time.Now().UTC()
	for i := range items {
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
		items[i].DocumentID = documentID
		items[i].Position = i
		items[i].CreatedAt = now
	}

	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM document_items WHERE document_id = $1", documentID); err != nil {
			return err
		}
		for i := range items {
			if _, err := tx.NamedExecContext(ctx, insertDocumentItem, &items[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("documentItemRepo.ReplaceAll: %w", err)
	}
	return nil
}
