// Package sink holds the bus consumers a replica wires up: the in-memory
// message timeline and the session replica view.
package sink

import (
	"sync"

	"sync-lab/domain"
	"sync-lab/domain/event"
)

// Timeline holds a simple local timeline. Messages live here and nowhere
// else: a restart empties the list and nothing refills it.
type Timeline struct {
	owner string

	mu       sync.Mutex
	messages []domain.Message
}

func NewTimeline(owner string) *Timeline {
	return &Timeline{owner: owner}
}

func (t *Timeline) Consume(e event.NetworkEvent) {
	switch evt := e.(type) {
	case event.NewMessage:
		t.mu.Lock()
		t.messages = append(t.messages, evt.Message)
		t.mu.Unlock()
	case event.SyncSession, event.Kicked, event.SessionEnded:
		// membership traffic does not touch the timeline
	}
}

func (t *Timeline) Owner() string { return t.owner }

// Messages returns a copy of the timeline in arrival order.
func (t *Timeline) Messages() []domain.Message {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]domain.Message(nil), t.messages...)
}
