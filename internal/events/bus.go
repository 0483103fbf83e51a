package events

import (
	platformevents "leasing_crm_backend/platform/events"
	"leasing_crm_backend/platform/logger"
)

type InMemoryBus = platformevents.InMemoryBus

// NewInMemoryBus returns the bus shared by the modules of one process.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return platformevents.NewInMemoryBus(log)
}
