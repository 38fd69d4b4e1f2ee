package errors

import "fmt"

var (
	ErrSessionNotFound      = fmt.Errorf("session not found or ended")
	ErrInvalidPin           = fmt.Errorf("invalid security pin")
	ErrSessionFull          = fmt.Errorf("session is full")
	ErrNoActiveSession      = fmt.Errorf("no active session on this device")
	ErrInvalidDisplayName   = fmt.Errorf("display name must be alphanumeric, 3 characters minimum")
	ErrInvalidRoomCode      = fmt.Errorf("room code must be 10 decimal digits")
	ErrInvalidSessionConfig = fmt.Errorf("invalid session configuration")
)
