// Package domain contains core concepts of the sync system.
// This file defines User entities and related invariants.
// No runtime, network, or UI logic should be added here.
package domain

import "time"

type Role string

const (
	HOST  Role = "HOST"
	GUEST Role = "GUEST"
)

// User is a session participant. Users are created on successful admission
// and never mutated; leaving and rejoining produces a brand-new identity.
type User struct {
	ID         string
	Name       string
	Role       Role
	JoinedAt   time.Time
	DeviceInfo string
	IP         string // advisory only, never used for routing
}
