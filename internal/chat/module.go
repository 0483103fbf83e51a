package chat

import (
	"context"

	apphttp "leasing_crm_backend/internal/http"
	"leasing_crm_backend/internal/leads"
	"leasing_crm_backend/platform/config"
	"leasing_crm_backend/platform/logger"
	"leasing_crm_backend/platform/validator"
)

// Module wires the chat assistant into the HTTP router.
type Module struct {
	handler *Handler
}

// NewModule picks the assistant from configuration: Gemini when an API key is
// set, otherwise the remote endpoint. Without either, every question gets the
// fallback answer.
func NewModule(ctx context.Context, cfg config.ChatConfig, directory leads.Directory, val *validator.Validator, log *logger.Logger) (*Module, error) {
	assistant, err := newAssistant(ctx, cfg, directory, log)
	if err != nil {
		return nil, err
	}
	return &Module{handler: NewHandler(assistant, val, log)}, nil
}

func newAssistant(ctx context.Context, cfg config.ChatConfig, directory leads.Directory, log *logger.Logger) (Assistant, error) {
	switch {
	case cfg.GetGeminiAPIKey() != "":
		log.Info("chat assistant enabled", "backend", "gemini", "model", cfg.GetGeminiModel())
		return NewGeminiAssistant(ctx, cfg.GetGeminiAPIKey(), cfg.GetGeminiModel(), directory)
	case cfg.GetChatEndpointURL() != "":
		log.Info("chat assistant enabled", "backend", "remote")
		return NewRemoteAssistant(cfg.GetChatEndpointURL(), nil), nil
	default:
		log.Warn("chat assistant disabled: neither GEMINI_API_KEY nor CHAT_ENDPOINT_URL set")
		return unavailable{}, nil
	}
}

func (m *Module) Name() string {
	return "chat"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/chat"))
}

var _ apphttp.Module = (*Module)(nil)
