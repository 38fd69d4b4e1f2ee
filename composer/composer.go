// Package composer builds messages at the caller boundary, before they reach
// the relay: ids, timestamps, sender snapshot and slash-command expansion all
// happen here so the relay can stay a dumb pipe.
package composer

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"sync-lab/domain"
)

type Composer struct {
	self domain.User
}

// New binds a composer to the sending user. The sender name is snapshotted
// into every message and never re-resolved afterwards.
func New(self domain.User) Composer {
	return Composer{self: self}
}

// Text builds a chat message from raw input. A literal /date, /myip or
// /mydevice token is expanded to a computed string before the message is
// stamped; anything else passes through trimmed but untouched.
func (c Composer) Text(input string) domain.Message {
	return c.stamp(expand(strings.TrimSpace(input), c.self), domain.TextMessage, nil)
}

// File wraps raw bytes into a file message. The MIME type is sniffed from
// content, not taken from the file name, and the payload rides inline as
// base64. No size limit is applied here.
func (c Composer) File(name string, data []byte) domain.Message {
	attachment := &domain.FileAttachment{
		Name:     name,
		ByteSize: int64(len(data)),
		MimeType: mimetype.Detect(data).String(),
		Payload:  base64.StdEncoding.EncodeToString(data),
	}
	return c.stamp(fmt.Sprintf("Shared a file: %s", name), domain.FileMessage, attachment)
}

func (c Composer) System(content string) domain.Message {
	return c.stamp(content, domain.SystemMessage, nil)
}

func (c Composer) stamp(content string, kind domain.MessageKind, attachment *domain.FileAttachment) domain.Message {
	return domain.Message{
		ID:         uuid.New(),
		SenderID:   c.self.ID,
		SenderName: c.self.Name,
		Content:    content,
		CreatedAt:  time.Now().UTC(),
		Kind:       kind,
		Attachment: attachment,
	}
}

func expand(input string, self domain.User) string {
	switch strings.ToLower(input) {
	case "/date":
		now := time.Now()
		return fmt.Sprintf("%s (%s)", now.Format("Monday January 2006"), now.Format("02/01/06"))
	case "/myip":
		return self.IP
	case "/mydevice":
		return fmt.Sprintf("Currently device: %s", self.DeviceInfo)
	}
	return input
}
