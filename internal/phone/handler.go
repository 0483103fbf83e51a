// Package phone exposes phone number formatting and validation over HTTP so
// clients can give live feedback while a number is typed.
package phone

import (
	"net/http"

	"leasing_crm_backend/platform/httpkit"
	"leasing_crm_backend/platform/logger"
	"leasing_crm_backend/platform/metrics"
	phonenum "leasing_crm_backend/platform/phone"
	"leasing_crm_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidPhone     = "please enter a valid phone number"
)

type Handler struct {
	val           *validator.Validator
	defaultRegion string
	log           *logger.Logger
}

func NewHandler(val *validator.Validator, defaultRegion string, log *logger.Logger) *Handler {
	return &Handler{val: val, defaultRegion: phonenum.NormalizeRegion(defaultRegion), log: log}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/format", h.Format)
	rg.POST("/canonical", h.Canonical)
	rg.POST("/display", h.Display)
	rg.POST("/suggest", h.Suggest)
}

func (h *Handler) Format(c *gin.Context) {
	var req FormatRequest
	if !h.bind(c, &req) {
		return
	}

	region := h.region(req.Region)
	res := phonenum.Format(req.Value, region)
	h.observe(c, "format", region, res)

	validity := phonenum.Check(req.Value, region)
	resp := FormatResponse{
		Formatted: res.Value,
		Outcome:   res.Outcome.String(),
		Validity:  validity.String(),
	}
	if validity == phonenum.ValidityInvalid {
		resp.Message = msgInvalidPhone
	}
	httpkit.OK(c, resp)
}

func (h *Handler) Canonical(c *gin.Context) {
	var req CanonicalRequest
	if !h.bind(c, &req) {
		return
	}

	region := h.region(req.Region)
	res := phonenum.Canonicalize(req.Value, region)
	h.observe(c, "canonical", region, res)

	resp := CanonicalResponse{Canonical: res.Value, Valid: res.OK()}
	if !res.OK() {
		resp.Message = msgInvalidPhone
	}
	httpkit.OK(c, resp)
}

func (h *Handler) Display(c *gin.Context) {
	var req DisplayRequest
	if !h.bind(c, &req) {
		return
	}

	res := phonenum.Display(req.Value, phonenum.ParseStyle(req.Style))
	metrics.ObservePhone("display", res.Outcome.String())
	httpkit.OK(c, DisplayResponse{Display: res.Value, Outcome: res.Outcome.String()})
}

func (h *Handler) Suggest(c *gin.Context) {
	var req SuggestRequest
	if !h.bind(c, &req) {
		return
	}
	httpkit.OK(c, SuggestResponse{Suggestions: phonenum.SuggestFormats(req.Value)})
}

func (h *Handler) bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return false
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return false
	}
	return true
}

func (h *Handler) region(requested string) string {
	if requested == "" {
		return h.defaultRegion
	}
	return phonenum.NormalizeRegion(requested)
}

func (h *Handler) observe(c *gin.Context, op, region string, res phonenum.Result) {
	metrics.ObservePhone(op, res.Outcome.String())
	if res.Outcome == phonenum.OutcomeFallback && res.Err != nil {
		h.log.WithContext(c.Request.Context()).PhoneFallback(op, region, res.Err)
	}
}
