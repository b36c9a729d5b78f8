package handler_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"tradeflow/internal/domain"
	"tradeflow/internal/handler"
	"tradeflow/internal/inference"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"wrapped not purchase order", fmt.Errorf("%w: abc", domain.ErrNotPurchaseOrder), http.StatusBadRequest, "NOT_PURCHASE_ORDER"},
		{"file too large", domain.ErrFileTooLarge, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE"},
		{"duplicate document", domain.ErrDocumentAlreadyExists, http.StatusConflict, "DOCUMENT_ALREADY_EXISTS"},
		{"wrapped upstream", fmt.Errorf("infer: %w", &inference.UpstreamError{StatusCode: 503}), http.StatusBadGateway, "INFERENCE_FAILED"},
		{"unknown", errors.New("db down"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code, _ := handler.MapDomainError(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, code)
		})
	}
}

func TestHandleError_AttachesServerErrors(t *testing.T) {
	c, w := newContext(t, http.MethodGet, "/x", nil)
	handler.HandleError(c, errors.New("db down"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Len(t, c.Errors, 1)

	c, _ = newContext(t, http.MethodGet, "/x", nil)
	handler.HandleError(c, domain.ErrDocumentNotFound)
	assert.Empty(t, c.Errors)
}
