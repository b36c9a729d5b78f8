package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"tradeflow/internal/domain"
	"tradeflow/internal/logger"
	"tradeflow/internal/metrics"
	"tradeflow/internal/port"
	"tradeflow/internal/reconcile"
)

// ExportService defines the reconciliation export contract.
type ExportService interface {
	ExportPurchaseOrders(ctx context.Context, tenantID uuid.UUID, poIDs []uuid.UUID) ([]domain.CsvRecord, error)
}

type exportService struct {
	docRepo      port.DocumentRepository
	itemRepo     port.DocumentItemRepository
	ruleSvc      RuleService
	log          *logger.Logger
	maxDocuments int
}

// NewExportService creates a new ExportService implementation. maxDocuments caps the
// number of purchase orders a single export may request; zero means no cap.
func NewExportService(
	docRepo port.DocumentRepository,
	itemRepo port.DocumentItemRepository,
	ruleSvc RuleService,
	log *logger.Logger,
	maxDocuments int,
) ExportService {
	return &exportService{
		docRepo:      docRepo,
		itemRepo:     itemRepo,
		ruleSvc:      ruleSvc,
		log:          log,
		maxDocuments: maxDocuments,
	}
}

// ExportPurchaseOrders reconciles the requested purchase orders against the import
// declarations their import numbers reference. Records follow the order of poIDs,
// and within a purchase order the order of its items.
func (s *exportService) ExportPurchaseOrders(ctx context.Context, tenantID uuid.UUID, poIDs []uuid.UUID) ([]domain.CsvRecord, error) {
	ids := dedupeIDs(poIDs)
	if len(ids) == 0 {
		return []domain.CsvRecord{}, nil
	}
	if s.maxDocuments > 0 && len(ids) > s.maxDocuments {
		return nil, domain.ErrTooManyDocuments
	}

	docs, err := s.docRepo.GetByIDs(ctx, tenantID, ids)
	if err != nil {
		return nil, err
	}
	if len(docs) != len(ids) {
		return nil, domain.ErrDocumentNotFound
	}
	for i := range docs {
		if docs[i].DocumentType != domain.DocumentTypePurchaseOrder {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotPurchaseOrder, docs[i].ID)
		}
	}

	poItems, err := s.itemRepo.ListByDocuments(ctx, ids)
	if err != nil {
		return nil, err
	}

	imports, err := s.loadImports(ctx, tenantID, docs)
	if err != nil {
		return nil, err
	}

	pos := make([]reconcile.PurchaseOrder, len(docs))
	for i := range docs {
		pos[i] = reconcile.PurchaseOrder{Document: &docs[i], Items: poItems[docs[i].ID]}
	}

	records := reconcile.MatchLineItems(pos, imports)
	if records == nil {
		records = []domain.CsvRecord{}
	}

	engine, err := s.ruleSvc.Engine(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	engine.ApplyRecords(records)

	matched := 0
	for i := range records {
		if records[i].ImportLine != nil {
			matched++
		}
	}
	metrics.ExportRecordsTotal.WithLabelValues("true").Add(float64(matched))
	metrics.ExportRecordsTotal.WithLabelValues("false").Add(float64(len(records) - matched))

	s.log.Info("exportService.ExportPurchaseOrders: export built",
		"tenant_id", tenantID,
		"purchase_orders", len(docs),
		"import_declarations", len(imports),
		"records", len(records),
		"matched", matched)
	return records, nil
}

// loadImports resolves the import declarations referenced by the purchase orders,
// keyed by import number.
func (s *exportService) loadImports(ctx context.Context, tenantID uuid.UUID, pos []domain.Document) (map[string]reconcile.ImportDeclaration, error) {
	seen := make(map[string]bool)
	var numbers []string
	for i := range pos {
		n := pos[i].ImportNumber
		if n == nil || *n == "" || seen[*n] {
			continue
		}
		seen[*n] = true
		numbers = append(numbers, *n)
	}

	imports := make(map[string]reconcile.ImportDeclaration, len(numbers))
	if len(numbers) == 0 {
		return imports, nil
	}

	docs, err := s.docRepo.ListImportsByNumber(ctx, tenantID, numbers)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return imports, nil
	}

	ids := make([]uuid.UUID, len(docs))
	for i := range docs {
		ids[i] = docs[i].ID
	}
	items, err := s.itemRepo.ListByDocuments(ctx, ids)
	if err != nil {
		return nil, err
	}

	for i := range docs {
		if docs[i].ImportNumber == nil {
			continue
		}
		num := *docs[i].ImportNumber
		if _, dup := imports[num]; dup {
			continue
		}
		imports[num] = reconcile.ImportDeclaration{Document: &docs[i], Items: items[docs[i].ID]}
	}
	return imports, nil
}

func dedupeIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
