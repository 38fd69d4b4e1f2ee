//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"sync-lab/domain/event"
)

// EventSink consumes bus events. Sinks are invoked one after another by the
// delivering context; a sink must not assume any lock is shared with others.
type EventSink interface {
	Consume(e event.NetworkEvent)
}

// Bus is the sole transport for state changes between replicas.
// Delivery is best effort: at most once per currently subscribed sink, no
// queue for late subscribers, ordered per publishing context only.
//
// Publish also delivers locally through the same path, so the state a
// publisher observes is always derived from bus delivery, never from a
// separate direct-write shortcut.
type Bus interface {
	Publish(e event.NetworkEvent)
	Subscribe(sink EventSink) (unsubscribe func())
}

// SinkFunc adapts a plain function to an EventSink.
type SinkFunc func(e event.NetworkEvent)

func (f SinkFunc) Consume(e event.NetworkEvent) { f(e) }
