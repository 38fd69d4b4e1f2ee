// Package event defines the closed set of values that travel on the bus.
// The marker method keeps the union sealed: consumers dispatch with a type
// switch over exactly these four variants.
package event

import "sync-lab/domain"

type NetworkEvent interface {
	networkEvent()
}

// SyncSession is a full replacement snapshot, never a diff. Subscribers
// overwrite their local session copy unconditionally on receipt.
type SyncSession struct {
	Session domain.Session
}

// NewMessage relays a chat, file or system message. Messages bypass storage
// entirely and live only in subscribers' in-memory lists.
type NewMessage struct {
	Message domain.Message
}

// Kicked follows the SyncSession that already removed the user, so the
// targeted client can tell "I was removed" apart from "someone else left".
type Kicked struct {
	UserID string
}

// SessionEnded tells every replica the room is gone for good.
type SessionEnded struct{}

func (SyncSession) networkEvent()  {}
func (NewMessage) networkEvent()   {}
func (Kicked) networkEvent()       {}
func (SessionEnded) networkEvent() {}
