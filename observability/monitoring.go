// Package observability aggregates transport telemetry for logs and the demo UI.
package observability

import (
	"sync/atomic"
)

// BusStats counts what happened on one context's bus handle. The bus is fire
// and forget, so dropped deliveries surface nowhere else than here.
type BusStats struct {
	published uint64
	delivered uint64
	dropped   uint64
}

func NewBusStats() *BusStats {
	return &BusStats{}
}

func (s *BusStats) IncrPublished() {
	atomic.AddUint64(&s.published, 1)
}

// IncrDelivered counts one sink invocation, local or remote.
func (s *BusStats) IncrDelivered() {
	atomic.AddUint64(&s.delivered, 1)
}

// IncrDropped counts an event lost to a full sibling inbox.
func (s *BusStats) IncrDropped() {
	atomic.AddUint64(&s.dropped, 1)
}

type StatsSnapshot struct {
	Published uint64
	Delivered uint64
	Dropped   uint64
}

func (s *BusStats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		Published: atomic.LoadUint64(&s.published),
		Delivered: atomic.LoadUint64(&s.delivered),
		Dropped:   atomic.LoadUint64(&s.dropped),
	}
}
