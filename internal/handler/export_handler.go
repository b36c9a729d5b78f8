package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tradeflow/internal/csvexport"
	"tradeflow/internal/service"
)

// ExportHandler serves reconciled purchase order exports.
type ExportHandler struct {
	exportService service.ExportService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exportService service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// Export handles POST /api/v1/exports
// The body lists purchase order ids; format selects csv (default) or xlsx.
// The response is a file attachment, not the JSON envelope.
func (h *ExportHandler) Export(c *gin.Context) {
	tenantID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var req struct {
		PurchaseOrderIDs []uuid.UUID `json:"purchase_order_ids" binding:"required"`
		Format           string      `json:"format"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "purchase_order_ids is required")
		return
	}

	format, err := csvexport.ParseFormat(req.Format)
	if err != nil {
		HandleError(c, err)
		return
	}

	records, err := h.exportService.ExportPurchaseOrders(c.Request.Context(), tenantID, req.PurchaseOrderIDs)
	if err != nil {
		HandleError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := csvexport.Write(&buf, format, records); err != nil {
		HandleError(c, fmt.Errorf("exportHandler.Export: %w", err))
		return
	}

	filename := csvexport.BuildFilename("purchase_orders", format, time.Now())
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}

// Preview handles POST /api/v1/exports/preview and returns the records as JSON.
func (h *ExportHandler) Preview(c *gin.Context) {
	tenantID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var req struct {
		PurchaseOrderIDs []uuid.UUID `json:"purchase_order_ids" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "purchase_order_ids is required")
		return
	}

	records, err := h.exportService.ExportPurchaseOrders(c.Request.Context(), tenantID, req.PurchaseOrderIDs)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, records)
}
