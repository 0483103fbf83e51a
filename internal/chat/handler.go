package chat

import (
	"net/http"
	"strings"

	"leasing_crm_backend/platform/httpkit"
	"leasing_crm_backend/platform/logger"
	"leasing_crm_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgEmptyQuestion    = "question is required"
)

type AskRequest struct {
	Question            string    `json:"question" validate:"max=2000"`
	ConversationHistory []Message `json:"conversationHistory" validate:"max=50,dive"`
}

type AskResponse struct {
	Answer string `json:"answer"`
}

type Handler struct {
	assistant Assistant
	val       *validator.Validator
	log       *logger.Logger
}

func NewHandler(assistant Assistant, val *validator.Validator, log *logger.Logger) *Handler {
	return &Handler{assistant: assistant, val: val, log: log}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Ask)
}

// Ask answers with the fallback text instead of an error status when the
// assistant fails, so the conversation can continue.
func (h *Handler) Ask(c *gin.Context) {
	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	question := strings.TrimSpace(req.Question)
	if question == "" {
		httpkit.Error(c, http.StatusBadRequest, msgEmptyQuestion, nil)
		return
	}

	answer, err := h.assistant.Ask(c.Request.Context(), question, req.ConversationHistory)
	if err != nil {
		h.log.WithContext(c.Request.Context()).Error("chat assistant failed", "error", err)
		answer = FallbackAnswer
	}

	httpkit.OK(c, AskResponse{Answer: answer})
}
