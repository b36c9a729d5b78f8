package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tradeflow/internal/accuracy"
	"tradeflow/internal/annotation"
	"tradeflow/internal/domain"
	"tradeflow/internal/handler"
	"tradeflow/internal/inference"
	"tradeflow/internal/service"
	"tradeflow/mocks"
)

func TestDocumentHandler_Create_Success(t *testing.T) {
	docSvc := new(mocks.MockDocumentService)
	h := handler.NewDocumentHandler(docSvc)

	tenantID := uuid.New()
	userID := uuid.New()
	fileID := uuid.New()
	doc := &domain.Document{ID: uuid.New(), TenantID: tenantID, DocumentType: domain.DocumentTypePurchaseOrder}

	docSvc.On("CreateFromFile", mock.Anything, mock.MatchedBy(func(in *service.CreateFromFileInput) bool {
		return in.TenantID == tenantID && in.CreatedBy == userID && in.FileID == fileID &&
			in.DocumentType == domain.DocumentTypePurchaseOrder && in.Name == "March PO"
	})).Return(doc, nil)

	c, w := newContext(t, http.MethodPost, "/api/v1/documents", gin.H{
		"file_id":       fileID,
		"document_type": "purchase_order",
		"name":          "March PO",
	})
	setAuthContext(c, tenantID, userID, "member")

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, decodeResponse(t, w).Success)
	docSvc.AssertExpectations(t)
}

func TestDocumentHandler_Create_MissingFields(t *testing.T) {
	docSvc := new(mocks.MockDocumentService)
	h := handler.NewDocumentHandler(docSvc)

	c, w := newContext(t, http.MethodPost, "/api/v1/documents", gin.H{"name": "x"})
	setAuthContext(c, uuid.New(), uuid.New(), "member")

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_REQUEST", decodeResponse(t, w).Error.Code)
	docSvc.AssertNotCalled(t, "CreateFromFile", mock.Anything, mock.Anything)
}

func TestDocumentHandler_Create_InvalidType(t *testing.T) {
	docSvc := new(mocks.MockDocumentService)
	h := handler.NewDocumentHandler(docSvc)

	docSvc.On("CreateFromFile", mock.Anything, mock.Anything).Return(nil, domain.ErrInvalidDocumentType)

	c, w := newContext(t, http.MethodPost, "/api/v1/documents", gin.H{
		"file_id":       uuid.New(),
		"document_type": "invoice",
	})
	setAuthContext(c, uuid.New(), uuid.New(), "member")

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_DOCUMENT_TYPE", decodeResponse(t, w).Error.Code)
}

func TestDocumentHandler_CreateFromText_UpstreamErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		status   int
		wantCode string
	}{
		{"server error", &inference.UpstreamError{StatusCode: 500, Message: "boom"}, http.StatusBadGateway, "INFERENCE_FAILED"},
		{"rate limited", &inference.UpstreamError{StatusCode: 429, Message: "slow down"}, http.StatusTooManyRequests, "INFERENCE_RATE_LIMITED"},
		{"nothing folded", domain.ErrNothingToFold, http.StatusUnprocessableEntity, "NOTHING_EXTRACTED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docSvc := new(mocks.MockDocumentService)
			h := handler.NewDocumentHandler(docSvc)
			docSvc.On("CreateFromText", mock.Anything, mock.Anything).Return(nil, tt.err)

			c, w := newContext(t, http.MethodPost, "/api/v1/documents/text", gin.H{
				"document_type": "import_declaration",
				"name":          "IMP-1",
				"page_texts":    []string{"page one"},
			})
			setAuthContext(c, uuid.New(), uuid.New(), "member")

			h.CreateFromText(c)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.wantCode, decodeResponse(t, w).Error.Code)
		})
	}
}

func TestDocumentHandler_CreateBatch_PartialFailure(t *testing.T) {
	docSvc := new(mocks.MockDocumentService)
	h := handler.NewDocumentHandler(docSvc)

	tenantID := uuid.New()
	okFile, badFile := uuid.New(), uuid.New()
	results := []service.BatchResult{
		{FileID: okFile, Document: &domain.Document{ID: uuid.New()}},
		{FileID: badFile, Error: domain.ErrFileNotFound.Error()},
	}
	docSvc.On("CreateBatch", mock.Anything, mock.MatchedBy(func(in []service.CreateFromFileInput) bool {
		return len(in) == 2 && in[0].FileID == okFile && in[1].TenantID == tenantID
	})).Return(results)

	c, w := newContext(t, http.MethodPost, "/api/v1/documents/batch", gin.H{
		"documents": []gin.H{
			{"file_id": okFile, "document_type": "purchase_order"},
			{"file_id": badFile, "document_type": "purchase_order"},
		},
	})
	setAuthContext(c, tenantID, uuid.New(), "member")

	h.CreateBatch(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data struct {
			Succeeded int `json:"succeeded"`
			Failed    int `json:"failed"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Data.Succeeded)
	assert.Equal(t, 1, body.Data.Failed)
	docSvc.AssertExpectations(t)
}

func TestDocumentHandler_CreateBatch_TooMany(t *testing.T) {
	docSvc := new(mocks.MockDocumentService)
	h := handler.NewDocumentHandler(docSvc)

	docs := make([]gin.H, 51)
	for i := range docs {
		docs[i] = gin.H{"file_id": uuid.New(), "document_type": "purchase_order"}
	}
	c, w := newContext(t, http.MethodPost, "/api/v1/documents/batch", gin.H{"documents": docs})
	setAuthContext(c, uuid.New(), uuid.New(), "member")

	h.CreateBatch(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "TOO_MANY_DOCUMENTS", decodeResponse(t, w).Error.Code)
	docSvc.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
}

func TestDocumentHandler_List_TypeFilter(t *testing.T) {
	docSvc := new(mocks.MockDocumentService)
	h := handler.NewDocumentHandler(docSvc)

	tenantID := uuid.New()
	docSvc.On("List", mock.Anything, tenantID, mock.MatchedBy(func(dt *domain.DocumentType) bool {
		return dt != nil && *dt == domain.DocumentTypeImportDeclaration
	}), 0, 20).Return([]domain.Document{{ID: uuid.New()}}, 1, nil)

	c, w := newContext(t, http.MethodGet, "/api/v1/documents?document_type=import_declaration", nil)
	setAuthContext(c, tenantID, uuid.New(), "member")

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	docSvc.AssertExpectations(t)
}

func TestDocumentHandler_GetByID_NotFound(t *testing.T) {
	docSvc := new(mocks.MockDocumentService)
	h := handler.NewDocumentHandler(docSvc)

	tenantID := uuid.New()
	docID := uuid.New()
	docSvc.On("GetByID", mock.Anything, tenantID, docID).Return(nil, domain.ErrDocumentNotFound)

	c, w := newContext(t, http.MethodGet, "/api/v1/documents/"+docID.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: docID.String()}}
	setAuthContext(c, tenantID, uuid.New(), "member")

	h.GetByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDocumentHandler_UpdateFields(t *testing.T) {
	docSvc := new(mocks.MockDocumentService)
	h := handler.NewDocumentHandler(docSvc)

	tenantID := uuid.New()
	docID := uuid.New()
	updated := &domain.Document{ID: docID, WorkScope: strPtr("HOT SECTION")}
	docSvc.On("UpdateFields", mock.Anything, tenantID, docID, mock.MatchedBy(func(p *service.DocumentFieldsPatch) bool {
		return p.WorkScope != nil && *p.WorkScope == "HOT SECTION" && p.PONumber == nil
	})).Return(updated, nil)

	c, w := newContext(t, http.MethodPatch, "/api/v1/documents/"+docID.String(), gin.H{"work_scope": "HOT SECTION"})
	c.Params = gin.Params{{Key: "id", Value: docID.String()}}
	setAuthContext(c, tenantID, uuid.New(), "member")

	h.UpdateFields(c)

	assert.Equal(t, http.StatusOK, w.Code)
	docSvc.AssertExpectations(t)
}

func TestDocumentHandler_ReplaceItems_Invalid(t *testing.T) {
	docSvc := new(mocks.MockDocumentService)
	h := handler.NewDocumentHandler(docSvc)

	tenantID := uuid.New()
	docID := uuid.New()
	docSvc.On("ReplaceItems", mock.Anything, tenantID, docID, mock.Anything).Return(nil, domain.ErrInvalidItems)

	c, w := newContext(t, http.MethodPut, "/api/v1/documents/"+docID.String()+"/items", gin.H{
		"items": []gin.H{{}},
	})
	c.Params = gin.Params{{Key: "id", Value: docID.String()}}
	setAuthContext(c, tenantID, uuid.New(), "member")

	h.ReplaceItems(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_ITEMS", decodeResponse(t, w).Error.Code)
}

func TestDocumentHandler_Approve_NotParsed(t *testing.T) {
	docSvc := new(mocks.MockDocumentService)
	h := handler.NewDocumentHandler(docSvc)

	tenantID := uuid.New()
	userID := uuid.New()
	docID := uuid.New()
	docSvc.On("Approve", mock.Anything, tenantID, docID, userID).Return(nil, domain.ErrDocumentNotParsed)

	c, w := newContext(t, http.MethodPost, "/api/v1/documents/"+docID.String()+"/approve", nil)
	c.Params = gin.Params{{Key: "id", Value: docID.String()}}
	setAuthContext(c, tenantID, userID, "member")

	h.Approve(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "DOCUMENT_NOT_PARSED", decodeResponse(t, w).Error.Code)
}

func TestDocumentHandler_Verify(t *testing.T) {
	docSvc := new(mocks.MockDocumentService)
	h := handler.NewDocumentHandler(docSvc)

	tenantID := uuid.New()
	docID := uuid.New()
	report := &accuracy.Report{
		Accuracy:            80,
		UnmatchedFieldPaths: []string{"document.tsn"},
		TotalFieldCount:     5,
		MatchedFieldCount:   4,
	}
	docSvc.On("Verify", mock.Anything, tenantID, docID).Return(report, nil)

	c, w := newContext(t, http.MethodPost, "/api/v1/documents/"+docID.String()+"/verify", nil)
	c.Params = gin.Params{{Key: "id", Value: docID.String()}}
	setAuthContext(c, tenantID, uuid.New(), "member")

	h.Verify(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data accuracy.Report `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.InDelta(t, 80.0, body.Data.Accuracy, 0.001)
	assert.Equal(t, []string{"document.tsn"}, body.Data.UnmatchedFieldPaths)
}

func TestDocumentHandler_Verify_NoPageTexts(t *testing.T) {
	docSvc := new(mocks.MockDocumentService)
	h := handler.NewDocumentHandler(docSvc)

	tenantID := uuid.New()
	docID := uuid.New()
	docSvc.On("Verify", mock.Anything, tenantID, docID).Return(nil, domain.ErrNoPageTexts)

	c, w := newContext(t, http.MethodPost, "/api/v1/documents/"+docID.String()+"/verify", nil)
	c.Params = gin.Params{{Key: "id", Value: docID.String()}}
	setAuthContext(c, tenantID, uuid.New(), "member")

	h.Verify(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestDocumentHandler_TrainingAnnotations(t *testing.T) {
	docSvc := new(mocks.MockDocumentService)
	h := handler.NewDocumentHandler(docSvc)

	tenantID := uuid.New()
	docID := uuid.New()
	pages := &annotation.PageSet{
		DocumentType:  domain.DocumentTypePurchaseOrder,
		PurchaseOrder: make([]annotation.POPage, 2),
	}
	docSvc.On("TrainingAnnotations", mock.Anything, tenantID, docID).Return(pages, nil)

	c, w := newContext(t, http.MethodGet, "/api/v1/documents/"+docID.String()+"/annotations", nil)
	c.Params = gin.Params{{Key: "id", Value: docID.String()}}
	setAuthContext(c, tenantID, uuid.New(), "member")

	h.TrainingAnnotations(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"purchase_order":[`)
}

func TestDocumentHandler_Delete_InvalidID(t *testing.T) {
	docSvc := new(mocks.MockDocumentService)
	h := handler.NewDocumentHandler(docSvc)

	c, w := newContext(t, http.MethodDelete, "/api/v1/documents/nope", nil)
	c.Params = gin.Params{{Key: "id", Value: "nope"}}
	setAuthContext(c, uuid.New(), uuid.New(), "admin")

	h.Delete(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	docSvc.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}
