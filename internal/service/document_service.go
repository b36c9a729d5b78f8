package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"tradeflow/internal/accuracy"
	"tradeflow/internal/annotation"
	"tradeflow/internal/domain"
	"tradeflow/internal/logger"
	"tradeflow/internal/metrics"
	"tradeflow/internal/pdftext"
	"tradeflow/internal/port"
)

// CreateFromFileInput is the DTO for extracting a document from an uploaded scan.
type CreateFromFileInput struct {
	TenantID     uuid.UUID
	FileID       uuid.UUID
	DocumentType domain.DocumentType
	Name         string
	Prompt       string
	CreatedBy    uuid.UUID
}

// CreateFromTextInput is the DTO for extracting a document from caller supplied page texts.
type CreateFromTextInput struct {
	TenantID     uuid.UUID
	DocumentType domain.DocumentType
	Name         string
	PageTexts    []string
	Prompt       string
	CreatedBy    uuid.UUID
}

// BatchResult is the outcome of one file of a batch create.
type BatchResult struct {
	FileID   uuid.UUID        `json:"file_id"`
	Document *domain.Document `json:"document,omitempty"`
	Error    string           `json:"error,omitempty"`
}

// DocumentFieldsPatch holds manual header edits. Nil fields are left unchanged.
type DocumentFieldsPatch struct {
	PONumber              *string `json:"po_number"`
	PODate                *string `json:"po_date"`
	ImportNumber          *string `json:"import_number"`
	ImportDate            *string `json:"import_date"`
	EndUserCustomerName   *string `json:"end_user_customer_name"`
	EndUserCustomerNumber *string `json:"end_user_customer_number"`
	WorkScope             *string `json:"work_scope"`
	ArcRequirement        *string `json:"arc_requirement"`
	TSN                   *string `json:"tsn"`
	CSN                   *string `json:"csn"`
	CustomerName          *string `json:"customer_name"`
	COCode                *string `json:"co_code"`
}

// DocumentService defines the document extraction and review contract.
type DocumentService interface {
	CreateFromFile(ctx context.Context, input *CreateFromFileInput) (*domain.Document, error)
	CreateFromText(ctx context.Context, input *CreateFromTextInput) (*domain.Document, error)
	CreateBatch(ctx context.Context, inputs []CreateFromFileInput) []BatchResult
	GetByID(ctx context.Context, tenantID, docID uuid.UUID) (*domain.Document, error)
	List(ctx context.Context, tenantID uuid.UUID, docType *domain.DocumentType, offset, limit int) ([]domain.Document, int, error)
	ListItems(ctx context.Context, tenantID, docID uuid.UUID) ([]domain.DocumentItem, error)
	UpdateFields(ctx context.Context, tenantID, docID uuid.UUID, patch *DocumentFieldsPatch) (*domain.Document, error)
	ReplaceItems(ctx context.Context, tenantID, docID uuid.UUID, items []domain.DocumentItem) ([]domain.DocumentItem, error)
	Approve(ctx context.Context, tenantID, docID, userID uuid.UUID) (*domain.Document, error)
	Verify(ctx context.Context, tenantID, docID uuid.UUID) (*accuracy.Report, error)
	TrainingAnnotations(ctx context.Context, tenantID, docID uuid.UUID) (*annotation.PageSet, error)
	Delete(ctx context.Context, tenantID, docID uuid.UUID) error
}

type documentService struct {
	docRepo     port.DocumentRepository
	itemRepo    port.DocumentItemRepository
	fileRepo    port.FileMetaRepository
	storage     port.ObjectStorage
	inferencer  port.Inferencer
	ruleSvc     RuleService
	log         *logger.Logger
	concurrency int
}

// NewDocumentService creates a new DocumentService implementation. concurrency bounds
// the number of inference calls a batch create runs at once.
func NewDocumentService(
	docRepo port.DocumentRepository,
	itemRepo port.DocumentItemRepository,
	fileRepo port.FileMetaRepository,
	storage port.ObjectStorage,
	inferencer port.Inferencer,
	ruleSvc RuleService,
	log *logger.Logger,
	concurrency int,
) DocumentService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &documentService{
		docRepo:     docRepo,
		itemRepo:    itemRepo,
		fileRepo:    fileRepo,
		storage:     storage,
		inferencer:  inferencer,
		ruleSvc:     ruleSvc,
		log:         log,
		concurrency: concurrency,
	}
}

func (s *documentService) CreateFromFile(ctx context.Context, input *CreateFromFileInput) (*domain.Document, error) {
	if !domain.ValidDocumentTypes[input.DocumentType] {
		return nil, domain.ErrInvalidDocumentType
	}

	meta, err := s.fileRepo.GetByID(ctx, input.TenantID, input.FileID)
	if err != nil {
		return nil, fmt.Errorf("looking up file: %w", err)
	}
	if meta.Status != domain.FileStatusUploaded {
		return nil, domain.ErrFileNotFound
	}

	name := input.Name
	if name == "" {
		name = meta.OriginalName
	}
	fileID := meta.ID
	doc := newDocument(input.TenantID, input.CreatedBy, input.DocumentType, name)
	doc.FileID = &fileID

	if err := s.docRepo.Create(ctx, doc); err != nil {
		return nil, err
	}

	s.log.Info("documentService.CreateFromFile: document created",
		"document_id", doc.ID, "file_id", fileID, "document_type", doc.DocumentType)

	err = s.extract(ctx, doc, func() (port.InferenceInput, error) {
		content, err := s.storage.Download(ctx, meta.S3Bucket, meta.S3Key)
		if err != nil {
			return port.InferenceInput{}, fmt.Errorf("downloading scan: %w", err)
		}
		texts, err := pdftext.Pages(meta.FileType, content)
		if err != nil {
			// The scan may still be readable by the inference service without a text layer.
			s.log.Warn("documentService.CreateFromFile: page text extraction failed",
				"document_id", doc.ID, "error", err)
			texts = nil
		}
		return port.InferenceInput{
			DocumentType: doc.DocumentType,
			FileBytes:    content,
			ContentType:  meta.ContentType,
			PageTexts:    texts,
			Prompt:       input.Prompt,
		}, nil
	})
	if err != nil {
		return doc, err
	}
	return doc, nil
}

func (s *documentService) CreateFromText(ctx context.Context, input *CreateFromTextInput) (*domain.Document, error) {
	if !domain.ValidDocumentTypes[input.DocumentType] {
		return nil, domain.ErrInvalidDocumentType
	}
	if len(input.PageTexts) == 0 {
		return nil, domain.ErrNoPageTexts
	}

	doc := newDocument(input.TenantID, input.CreatedBy, input.DocumentType, input.Name)
	doc.PageTexts = append(domain.StringList{}, input.PageTexts...)

	if err := s.docRepo.Create(ctx, doc); err != nil {
		return nil, err
	}

	s.log.Info("documentService.CreateFromText: document created",
		"document_id", doc.ID, "document_type", doc.DocumentType, "pages", len(input.PageTexts))

	err := s.extract(ctx, doc, func() (port.InferenceInput, error) {
		return port.InferenceInput{
			DocumentType: doc.DocumentType,
			PageTexts:    input.PageTexts,
			Prompt:       input.Prompt,
		}, nil
	})
	if err != nil {
		return doc, err
	}
	return doc, nil
}

// CreateBatch extracts every file independently. A failing file is reported in its
// result and never cancels the others.
func (s *documentService) CreateBatch(ctx context.Context, inputs []CreateFromFileInput) []BatchResult {
	results := make([]BatchResult, len(inputs))

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i := range inputs {
		i := i
		in := inputs[i]
		g.Go(func() error {
			results[i].FileID = in.FileID
			doc, err := s.CreateFromFile(ctx, &in)
			results[i].Document = doc
			if err != nil {
				results[i].Error = err.Error()
			}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (s *documentService) GetByID(ctx context.Context, tenantID, docID uuid.UUID) (*domain.Document, error) {
	return s.docRepo.GetByID(ctx, tenantID, docID)
}

func (s *documentService) List(ctx context.Context, tenantID uuid.UUID, docType *domain.DocumentType, offset, limit int) ([]domain.Document, int, error) {
	if docType != nil && !domain.ValidDocumentTypes[*docType] {
		return nil, 0, domain.ErrInvalidDocumentType
	}
	return s.docRepo.List(ctx, tenantID, port.DocumentFilter{DocumentType: docType}, offset, limit)
}

func (s *documentService) ListItems(ctx context.Context, tenantID, docID uuid.UUID) ([]domain.DocumentItem, error) {
	if _, err := s.docRepo.GetByID(ctx, tenantID, docID); err != nil {
		return nil, err
	}
	return s.itemRepo.ListByDocument(ctx, docID)
}

// UpdateFields applies manual header edits. Provenance pages are not touched.
func (s *documentService) UpdateFields(ctx context.Context, tenantID, docID uuid.UUID, patch *DocumentFieldsPatch) (*domain.Document, error) {
	doc, err := s.docRepo.GetByID(ctx, tenantID, docID)
	if err != nil {
		return nil, err
	}

	set := func(dst **string, v *string) {
		if v != nil {
			val := *v
			*dst = &val
		}
	}
	set(&doc.PONumber, patch.PONumber)
	set(&doc.PODate, patch.PODate)
	set(&doc.ImportNumber, patch.ImportNumber)
	set(&doc.ImportDate, patch.ImportDate)
	set(&doc.EndUserCustomerName, patch.EndUserCustomerName)
	set(&doc.EndUserCustomerNumber, patch.EndUserCustomerNumber)
	set(&doc.WorkScope, patch.WorkScope)
	set(&doc.ArcRequirement, patch.ArcRequirement)
	set(&doc.TSN, patch.TSN)
	set(&doc.CSN, patch.CSN)
	set(&doc.CustomerName, patch.CustomerName)
	set(&doc.COCode, patch.COCode)

	if err := s.docRepo.UpdateExtraction(ctx, doc); err != nil {
		return nil, err
	}

	s.log.Info("documentService.UpdateFields: header updated", "document_id", doc.ID)
	return doc, nil
}

// ReplaceItems swaps the document's whole item set. Manually supplied items carry no
// page provenance.
func (s *documentService) ReplaceItems(ctx context.Context, tenantID, docID uuid.UUID, items []domain.DocumentItem) ([]domain.DocumentItem, error) {
	if _, err := s.docRepo.GetByID(ctx, tenantID, docID); err != nil {
		return nil, err
	}

	replaced := make([]domain.DocumentItem, len(items))
	for i := range items {
		if isEmptyItem(&items[i]) {
			return nil, fmt.Errorf("%w: item %d has no values", domain.ErrInvalidItems, i)
		}
		replaced[i] = domain.DocumentItem{
			PartNumber:      items[i].PartNumber,
			QuantityOrdered: items[i].QuantityOrdered,
			ImportPrice:     items[i].ImportPrice,
			EngineModel:     items[i].EngineModel,
			EngineNumber:    items[i].EngineNumber,
			SerialNumber:    items[i].SerialNumber,
		}
	}

	if err := s.itemRepo.ReplaceAll(ctx, docID, replaced); err != nil {
		return nil, err
	}

	s.log.Info("documentService.ReplaceItems: items replaced", "document_id", docID, "count", len(replaced))
	return replaced, nil
}

func (s *documentService) Approve(ctx context.Context, tenantID, docID, userID uuid.UUID) (*domain.Document, error) {
	doc, err := s.docRepo.GetByID(ctx, tenantID, docID)
	if err != nil {
		return nil, err
	}
	if doc.ParsingStatus != domain.ParsingStatusCompleted {
		return nil, domain.ErrDocumentNotParsed
	}

	now := time.Now().UTC()
	doc.ReviewStatus = domain.ReviewStatusApproved
	doc.ApprovedBy = &userID
	doc.ApprovedAt = &now

	if err := s.docRepo.UpdateReviewStatus(ctx, doc); err != nil {
		return nil, err
	}

	s.log.Info("documentService.Approve: document approved", "document_id", doc.ID, "user_id", userID)
	return doc, nil
}

// Verify re-runs inference on the stored document and scores the stored values
// against the fresh ones.
func (s *documentService) Verify(ctx context.Context, tenantID, docID uuid.UUID) (*accuracy.Report, error) {
	doc, err := s.docRepo.GetByID(ctx, tenantID, docID)
	if err != nil {
		return nil, err
	}
	if doc.ParsingStatus != domain.ParsingStatusCompleted {
		return nil, domain.ErrDocumentNotParsed
	}

	items, err := s.itemRepo.ListByDocument(ctx, doc.ID)
	if err != nil {
		return nil, err
	}

	input := port.InferenceInput{
		DocumentType: doc.DocumentType,
		PageTexts:    doc.PageTexts,
	}
	if doc.FileID != nil {
		meta, err := s.fileRepo.GetByID(ctx, tenantID, *doc.FileID)
		if err != nil {
			return nil, fmt.Errorf("looking up file: %w", err)
		}
		content, err := s.storage.Download(ctx, meta.S3Bucket, meta.S3Key)
		if err != nil {
			return nil, fmt.Errorf("downloading scan: %w", err)
		}
		input.FileBytes = content
		input.ContentType = meta.ContentType
	} else if len(doc.PageTexts) == 0 {
		return nil, domain.ErrNoPageTexts
	}

	out, err := s.inferencer.Infer(ctx, input)
	if err != nil {
		return nil, err
	}
	res := annotation.Fold(out.Pages, doc.PageTexts)
	if res == nil {
		return nil, domain.ErrNothingToFold
	}

	engine, err := s.ruleSvc.Engine(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	engine.ApplyDocument(&res.Document, res.Items)

	report := accuracy.Score(
		accuracy.Subject{Document: doc, Items: items},
		accuracy.Subject{Document: &res.Document, Items: res.Items},
	)

	now := time.Now().UTC()
	doc.Accuracy = &report.Accuracy
	doc.VerifiedAt = &now
	if err := s.docRepo.UpdateAccuracy(ctx, doc); err != nil {
		return nil, err
	}
	metrics.VerificationAccuracy.Observe(report.Accuracy)

	s.log.Info("documentService.Verify: document verified",
		"document_id", doc.ID,
		"accuracy", report.Accuracy,
		"unmatched", len(report.UnmatchedFieldPaths))
	return &report, nil
}

// TrainingAnnotations rebuilds the per-page annotations of a stored document from its
// field provenance.
func (s *documentService) TrainingAnnotations(ctx context.Context, tenantID, docID uuid.UUID) (*annotation.PageSet, error) {
	doc, err := s.docRepo.GetByID(ctx, tenantID, docID)
	if err != nil {
		return nil, err
	}
	items, err := s.itemRepo.ListByDocument(ctx, doc.ID)
	if err != nil {
		return nil, err
	}
	return annotation.Regenerate(doc, items)
}

func (s *documentService) Delete(ctx context.Context, tenantID, docID uuid.UUID) error {
	if err := s.docRepo.Delete(ctx, tenantID, docID); err != nil {
		return err
	}
	s.log.Info("documentService.Delete: document deleted", "document_id", docID, "tenant_id", tenantID)
	return nil
}

// extract moves doc through processing to completed or failed. On failure the
// message is stored on the document and the error is returned unchanged.
func (s *documentService) extract(ctx context.Context, doc *domain.Document, prepare func() (port.InferenceInput, error)) error {
	doc.ParsingStatus = domain.ParsingStatusProcessing
	if err := s.docRepo.UpdateExtraction(ctx, doc); err != nil {
		return err
	}

	res, out, err := s.infer(ctx, doc, prepare)
	if err != nil {
		s.log.Error("documentService.extract: extraction failed", "document_id", doc.ID, "error", err)
		doc.ParsingStatus = domain.ParsingStatusFailed
		doc.ParsingError = err.Error()
		if updErr := s.docRepo.UpdateExtraction(ctx, doc); updErr != nil {
			s.log.Error("documentService.extract: failed to record failure", "document_id", doc.ID, "error", updErr)
		}
		return err
	}

	mergeExtraction(doc, &res.Document)
	now := time.Now().UTC()
	doc.ParsingStatus = domain.ParsingStatusCompleted
	doc.ParsingError = ""
	doc.ParsedAt = &now
	doc.ModelUsed = out.ModelUsed
	doc.PromptUsed = out.PromptUsed

	if err := s.docRepo.UpdateExtraction(ctx, doc); err != nil {
		return err
	}
	if err := s.itemRepo.ReplaceAll(ctx, doc.ID, res.Items); err != nil {
		return err
	}

	s.log.Info("documentService.extract: extraction completed",
		"document_id", doc.ID,
		"pages", len(doc.PageTexts),
		"items", len(res.Items),
		"model", out.ModelUsed)
	return nil
}

func (s *documentService) infer(
	ctx context.Context,
	doc *domain.Document,
	prepare func() (port.InferenceInput, error),
) (*annotation.Result, *port.InferenceOutput, error) {
	input, err := prepare()
	if err != nil {
		return nil, nil, err
	}
	out, err := s.inferencer.Infer(ctx, input)
	if err != nil {
		return nil, nil, err
	}
	res := annotation.Fold(out.Pages, input.PageTexts)
	if res == nil {
		return nil, nil, domain.ErrNothingToFold
	}

	engine, err := s.ruleSvc.Engine(ctx, doc.TenantID)
	if err != nil {
		return nil, nil, err
	}
	engine.ApplyDocument(&res.Document, res.Items)
	return res, out, nil
}

func newDocument(tenantID, createdBy uuid.UUID, docType domain.DocumentType, name string) *domain.Document {
	return &domain.Document{
		ID:            uuid.New(),
		TenantID:      tenantID,
		DocumentType:  docType,
		Name:          strings.TrimSpace(name),
		Source:        domain.SourceInference,
		PageTexts:     domain.StringList{},
		ParsingStatus: domain.ParsingStatusPending,
		ReviewStatus:  domain.ReviewStatusPending,
		CreatedBy:     createdBy,
	}
}

// mergeExtraction copies the folded business fields, provenance pages and page texts
// onto doc, keeping doc's identity and review state.
func mergeExtraction(doc, folded *domain.Document) {
	out := *folded
	out.ID = doc.ID
	out.TenantID = doc.TenantID
	out.FileID = doc.FileID
	out.DocumentType = doc.DocumentType
	out.Name = doc.Name
	out.Source = domain.SourceInference
	out.ReviewStatus = doc.ReviewStatus
	out.ApprovedBy = doc.ApprovedBy
	out.ApprovedAt = doc.ApprovedAt
	out.Accuracy = doc.Accuracy
	out.VerifiedAt = doc.VerifiedAt
	out.CustomerName = doc.CustomerName
	out.COCode = doc.COCode
	out.EndUserCustomerNumber = doc.EndUserCustomerNumber
	out.CreatedBy = doc.CreatedBy
	out.CreatedAt = doc.CreatedAt
	out.UpdatedAt = doc.UpdatedAt
	*doc = out
}

func isEmptyItem(item *domain.DocumentItem) bool {
	return item.PartNumber == nil &&
		item.QuantityOrdered == nil &&
		item.ImportPrice == nil &&
		item.EngineModel == nil &&
		item.EngineNumber == nil &&
		item.SerialNumber == nil
}
