// Package domain contains core concepts of the sync system.
// This file defines Message events and related rules.
// Messages are immutable and never persisted past process lifetime.
package domain

import (
	"github.com/google/uuid"
	"time"
)

type MessageKind string

const (
	TextMessage   MessageKind = "text"
	FileMessage   MessageKind = "file"
	SystemMessage MessageKind = "system"
)

// FileAttachment carries the shared file inline. Payload is base64 encoded
// so the whole message stays a self-contained value on the bus.
type FileAttachment struct {
	Name     string
	ByteSize int64
	MimeType string
	Payload  string
}

// Message represents an immutable chat event. SenderName is a snapshot taken
// at send time and is never re-resolved, so messages from departed users keep
// displaying correctly.
type Message struct {
	ID         uuid.UUID
	SenderID   string
	SenderName string
	Content    string
	CreatedAt  time.Time
	Kind       MessageKind
	Attachment *FileAttachment
}
