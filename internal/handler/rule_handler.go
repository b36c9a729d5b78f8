package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tradeflow/internal/domain"
	"tradeflow/internal/service"
)

// RuleHandler manages the substitution rule tables of a tenant.
type RuleHandler struct {
	ruleService service.RuleService
}

// NewRuleHandler creates a new RuleHandler.
func NewRuleHandler(ruleService service.RuleService) *RuleHandler {
	return &RuleHandler{ruleService: ruleService}
}

// Get handles GET /api/v1/rules
func (h *RuleHandler) Get(c *gin.Context) {
	tenantID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	set, err := h.ruleService.Load(c.Request.Context(), tenantID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, set)
}

// Replace handles PUT /api/v1/rules (admin only).
// The four tables are replaced as a whole; list order is lookup order.
func (h *RuleHandler) Replace(c *gin.Context) {
	tenantID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var set domain.RuleSet
	if err := c.ShouldBindJSON(&set); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid rule set")
		return
	}

	if err := h.ruleService.Replace(c.Request.Context(), tenantID, &set); err != nil {
		HandleError(c, err)
		return
	}

	stored, err := h.ruleService.Load(c.Request.Context(), tenantID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, stored)
}
