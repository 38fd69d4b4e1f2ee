package sink

import (
	"sync"

	"sync-lab/domain"
	"sync-lab/domain/event"
)

// Replica is the per-context session view a UI would render from. Every
// SyncSession replaces the whole copy, Kicked is self-checked against the
// owning user, SessionEnded forces the exit flag regardless of membership.
// Events arrive on the bus node's loop goroutine, so all state sits behind
// the mutex.
type Replica struct {
	selfID string

	mu        sync.Mutex
	session   domain.Session
	kickedOut bool
	ended     bool
}

func NewReplica(selfID string, initial domain.Session) *Replica {
	return &Replica{selfID: selfID, session: initial}
}

func (r *Replica) Consume(e event.NetworkEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch evt := e.(type) {
	case event.SyncSession:
		r.session = evt.Session
	case event.Kicked:
		if evt.UserID == r.selfID {
			r.kickedOut = true
		}
	case event.SessionEnded:
		r.ended = true
	case event.NewMessage:
		// timeline concern, ignored here
	}
}

// Session returns the current local copy of the session.
func (r *Replica) Session() domain.Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.session
}

func (r *Replica) KickedOut() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.kickedOut
}

func (r *Replica) Ended() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ended
}

// InSession reports whether this replica still belongs to the room.
func (r *Replica) InSession() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return !r.kickedOut && !r.ended && r.session.HasUser(r.selfID)
}
