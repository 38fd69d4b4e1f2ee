package services

import (
	"log/slog"

	"sync-lab/contract"
	"sync-lab/domain"
	"sync-lab/domain/event"
)

// RelayService forwards already-composed messages onto the bus. It stamps
// nothing, stores nothing, confirms nothing: id, timestamp and sender
// snapshot are the composer's job, and a missed subscriber is not reported.
type RelayService struct {
	log *slog.Logger
	bus contract.Bus
}

func NewRelayService(log *slog.Logger, bus contract.Bus) *RelayService {
	return &RelayService{log: log, bus: bus}
}

func (r *RelayService) Send(message domain.Message) {
	r.bus.Publish(event.NewMessage{Message: message})
	r.log.Debug("Message relayed", "id", message.ID, "kind", string(message.Kind))
}
