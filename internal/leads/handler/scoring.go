package handler

import (
	"net/http"

	"leasing_crm_backend/internal/leads/scoring"
	"leasing_crm_backend/internal/leads/transport"
	"leasing_crm_backend/platform/httpkit"
	"leasing_crm_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

// ScoringHandler exposes lead scores, follow-up timing and pipeline analytics.
type ScoringHandler struct {
	svc *scoring.Service
	val *validator.Validator
}

func NewScoringHandler(svc *scoring.Service, val *validator.Validator) *ScoringHandler {
	return &ScoringHandler{svc: svc, val: val}
}

func (h *ScoringHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/:id/score", h.Score)
	rg.GET("/:id/follow-up", h.FollowUp)
	rg.POST("/score/bulk", h.BulkScore)
	rg.GET("/analytics/conversion", h.ConversionFactors)
}

func (h *ScoringHandler) Score(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	result, err := h.svc.Score(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

func (h *ScoringHandler) FollowUp(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	result, err := h.svc.FollowUp(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

func (h *ScoringHandler) BulkScore(c *gin.Context) {
	var req transport.BulkScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.BulkScore(c.Request.Context(), req.IDs)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

func (h *ScoringHandler) ConversionFactors(c *gin.Context) {
	result, err := h.svc.ConversionFactors(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}
