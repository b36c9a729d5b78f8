package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tradeflow/internal/domain"
	"tradeflow/internal/service"
)

// maxBatchFiles caps the number of scans a single batch create may carry.
const maxBatchFiles = 50

// DocumentHandler handles document extraction and review endpoints.
type DocumentHandler struct {
	documentService service.DocumentService
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(documentService service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// CreateFromFileRequest is the body of POST /api/v1/documents.
type CreateFromFileRequest struct {
	FileID       uuid.UUID `json:"file_id" binding:"required"`
	DocumentType string    `json:"document_type" binding:"required"`
	Name         string    `json:"name"`
	Prompt       string    `json:"prompt"`
}

// Create handles POST /api/v1/documents
// Runs extraction synchronously on an uploaded scan and returns the stored document.
func (h *DocumentHandler) Create(c *gin.Context) {
	tenantID, userID, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var req CreateFromFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "file_id and document_type are required")
		return
	}

	doc, err := h.documentService.CreateFromFile(c.Request.Context(), &service.CreateFromFileInput{
		TenantID:     tenantID,
		FileID:       req.FileID,
		DocumentType: domain.DocumentType(req.DocumentType),
		Name:         req.Name,
		Prompt:       req.Prompt,
		CreatedBy:    userID,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, doc)
}

// CreateFromText handles POST /api/v1/documents/text
func (h *DocumentHandler) CreateFromText(c *gin.Context) {
	tenantID, userID, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var req struct {
		DocumentType string   `json:"document_type" binding:"required"`
		Name         string   `json:"name" binding:"required"`
		PageTexts    []string `json:"page_texts" binding:"required"`
		Prompt       string   `json:"prompt"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "document_type, name, and page_texts are required")
		return
	}

	doc, err := h.documentService.CreateFromText(c.Request.Context(), &service.CreateFromTextInput{
		TenantID:     tenantID,
		DocumentType: domain.DocumentType(req.DocumentType),
		Name:         req.Name,
		PageTexts:    req.PageTexts,
		Prompt:       req.Prompt,
		CreatedBy:    userID,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, doc)
}

// CreateBatch handles POST /api/v1/documents/batch
// Per-file failures are reported in the results; the request itself succeeds.
func (h *DocumentHandler) CreateBatch(c *gin.Context) {
	tenantID, userID, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var req struct {
		Documents []CreateFromFileRequest `json:"documents" binding:"required,min=1,dive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "documents must list at least one file_id and document_type")
		return
	}
	if len(req.Documents) > maxBatchFiles {
		HandleError(c, domain.ErrTooManyDocuments)
		return
	}

	inputs := make([]service.CreateFromFileInput, len(req.Documents))
	for i, d := range req.Documents {
		inputs[i] = service.CreateFromFileInput{
			TenantID:     tenantID,
			FileID:       d.FileID,
			DocumentType: domain.DocumentType(d.DocumentType),
			Name:         d.Name,
			Prompt:       d.Prompt,
			CreatedBy:    userID,
		}
	}

	results := h.documentService.CreateBatch(c.Request.Context(), inputs)

	failed := 0
	for _, r := range results {
		if r.Error != "" {
			failed++
		}
	}
	RespondOK(c, gin.H{
		"results":   results,
		"succeeded": len(results) - failed,
		"failed":    failed,
	})
}

// GetByID handles GET /api/v1/documents/:id
func (h *DocumentHandler) GetByID(c *gin.Context) {
	tenantID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	docID, ok := parseIDParam(c, "id", "document")
	if !ok {
		return
	}

	doc, err := h.documentService.GetByID(c.Request.Context(), tenantID, docID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, doc)
}

// List handles GET /api/v1/documents with an optional document_type filter.
func (h *DocumentHandler) List(c *gin.Context) {
	tenantID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	offset, limit := paginationParams(c)

	var docType *domain.DocumentType
	if s := c.Query("document_type"); s != "" {
		t := domain.DocumentType(s)
		docType = &t
	}

	docs, total, err := h.documentService.List(c.Request.Context(), tenantID, docType, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, docs, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// ListItems handles GET /api/v1/documents/:id/items
func (h *DocumentHandler) ListItems(c *gin.Context) {
	tenantID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	docID, ok := parseIDParam(c, "id", "document")
	if !ok {
		return
	}

	items, err := h.documentService.ListItems(c.Request.Context(), tenantID, docID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, items)
}

// UpdateFields handles PATCH /api/v1/documents/:id
func (h *DocumentHandler) UpdateFields(c *gin.Context) {
	tenantID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	docID, ok := parseIDParam(c, "id", "document")
	if !ok {
		return
	}

	var patch service.DocumentFieldsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid document fields")
		return
	}

	doc, err := h.documentService.UpdateFields(c.Request.Context(), tenantID, docID, &patch)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, doc)
}

// ReplaceItems handles PUT /api/v1/documents/:id/items
func (h *DocumentHandler) ReplaceItems(c *gin.Context) {
	tenantID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	docID, ok := parseIDParam(c, "id", "document")
	if !ok {
		return
	}

	var req struct {
		Items []domain.DocumentItem `json:"items" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "items is required")
		return
	}

	items, err := h.documentService.ReplaceItems(c.Request.Context(), tenantID, docID, req.Items)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, items)
}

// Approve handles POST /api/v1/documents/:id/approve
func (h *DocumentHandler) Approve(c *gin.Context) {
	tenantID, userID, ok := extractAuthContext(c)
	if !ok {
		return
	}
	docID, ok := parseIDParam(c, "id", "document")
	if !ok {
		return
	}

	doc, err := h.documentService.Approve(c.Request.Context(), tenantID, docID, userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, doc)
}

// Verify handles POST /api/v1/documents/:id/verify
// Re-runs inference and scores the stored fields against the fresh result.
func (h *DocumentHandler) Verify(c *gin.Context) {
	tenantID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	docID, ok := parseIDParam(c, "id", "document")
	if !ok {
		return
	}

	report, err := h.documentService.Verify(c.Request.Context(), tenantID, docID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, report)
}

// TrainingAnnotations handles GET /api/v1/documents/:id/annotations
func (h *DocumentHandler) TrainingAnnotations(c *gin.Context) {
	tenantID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	docID, ok := parseIDParam(c, "id", "document")
	if !ok {
		return
	}

	pages, err := h.documentService.TrainingAnnotations(c.Request.Context(), tenantID, docID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, pages)
}

// Delete handles DELETE /api/v1/documents/:id (admin only).
func (h *DocumentHandler) Delete(c *gin.Context) {
	tenantID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	docID, ok := parseIDParam(c, "id", "document")
	if !ok {
		return
	}

	if err := h.documentService.Delete(c.Request.Context(), tenantID, docID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "document deleted"})
}
