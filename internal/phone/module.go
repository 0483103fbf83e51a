package phone

import (
	apphttp "leasing_crm_backend/internal/http"
	"leasing_crm_backend/platform/config"
	"leasing_crm_backend/platform/logger"
	"leasing_crm_backend/platform/validator"
)

type Module struct {
	handler *Handler
}

func NewModule(cfg config.PhoneConfig, val *validator.Validator, log *logger.Logger) *Module {
	return &Module{handler: NewHandler(val, cfg.GetPhoneDefaultRegion(), log)}
}

func (m *Module) Name() string {
	return "phone"
}

// RegisterRoutes mounts the helpers on the public group; they touch no stored data.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Public.Group("/phone"))
}

var _ apphttp.Module = (*Module)(nil)
