// Package domain contains core concepts of the sync system.
// This file defines the Session aggregate and its membership rules.
package domain

import (
	"time"

	"github.com/samber/lo"
)

// SessionConfig is immutable after session creation.
// Pin is meaningful only when Enable2FA is set.
type SessionConfig struct {
	MaxUsers  int
	Enable2FA bool
	Pin       string
}

// Session is the shared room state: identity, configuration, membership and
// activity flag. Every replica holds its own copy; copies converge only through
// full-snapshot republication over the bus, last writer wins.
type Session struct {
	ID        string // room code
	HostID    string
	CreatedAt time.Time
	Config    SessionConfig
	Users     []User // ordered by join time, unique by ID
	IsActive  bool
}

func (s Session) IsFull() bool {
	return len(s.Users) >= s.Config.MaxUsers
}

func (s Session) HasUser(id string) bool {
	return lo.ContainsBy(s.Users, func(u User) bool { return u.ID == id })
}

func (s Session) FindUser(id string) (User, bool) {
	return lo.Find(s.Users, func(u User) bool { return u.ID == id })
}

// WithUser returns a copy of the session with the user appended.
// Join order is preserved by always appending.
func (s Session) WithUser(u User) Session {
	users := make([]User, 0, len(s.Users)+1)
	users = append(users, s.Users...)
	s.Users = append(users, u)
	return s
}

// WithoutUser returns a copy of the session with the user removed.
// Removing an absent id yields an identical membership list.
func (s Session) WithoutUser(id string) Session {
	s.Users = lo.Filter(s.Users, func(u User, _ int) bool { return u.ID != id })
	return s
}

// HostPresent reports whether HostID still references a member.
// It can be false transiently after the host leaves without ending the session.
func (s Session) HostPresent() bool {
	return s.HasUser(s.HostID)
}
