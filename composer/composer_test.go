package composer

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"sync-lab/domain"
)

func sender() domain.User {
	return domain.User{
		ID:         "user-1",
		Name:       "Alice",
		Role:       domain.HOST,
		DeviceInfo: "ubuntu 24.04 (linux)",
		IP:         "192.168.1.10",
	}
}

func TestText_StampsSenderSnapshot(t *testing.T) {
	req := require.New(t)
	msg := New(sender()).Text("  hello there  ")

	req.Equal("hello there", msg.Content)
	req.Equal("user-1", msg.SenderID)
	req.Equal("Alice", msg.SenderName)
	req.Equal(domain.TextMessage, msg.Kind)
	req.NotEqual("", msg.ID.String())
	req.WithinDuration(time.Now().UTC(), msg.CreatedAt, time.Minute)
	req.Nil(msg.Attachment)
}

func TestText_CommandExpansion(t *testing.T) {
	req := require.New(t)
	c := New(sender())

	req.Equal("192.168.1.10", c.Text("/myip").Content)
	req.Equal("192.168.1.10", c.Text("/MyIP").Content)
	req.Equal("Currently device: ubuntu 24.04 (linux)", c.Text("/mydevice").Content)

	date := c.Text("/date").Content
	req.Contains(date, time.Now().Format("2006"))
	req.Contains(date, "(")

	// Commands only expand when they are the whole message.
	req.Equal("tell me /myip", c.Text("tell me /myip").Content)
}

func TestFile_SniffsMimeAndInlinesPayload(t *testing.T) {
	req := require.New(t)
	payload := []byte("plain text content\n")

	msg := New(sender()).File("notes.txt", payload)

	req.Equal(domain.FileMessage, msg.Kind)
	req.Equal("Shared a file: notes.txt", msg.Content)
	req.NotNil(msg.Attachment)
	req.Equal("notes.txt", msg.Attachment.Name)
	req.Equal(int64(len(payload)), msg.Attachment.ByteSize)
	req.True(strings.HasPrefix(msg.Attachment.MimeType, "text/plain"))

	decoded, err := base64.StdEncoding.DecodeString(msg.Attachment.Payload)
	req.NoError(err)
	req.Equal(payload, decoded)
}

func TestFile_BinaryPayload(t *testing.T) {
	req := require.New(t)
	// PNG magic bytes are enough for content sniffing.
	payload := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}

	msg := New(sender()).File("pixel.png", payload)
	req.Equal("image/png", msg.Attachment.MimeType)
}

func TestSystem_Kind(t *testing.T) {
	msg := New(sender()).System("Bob joined the session")
	require.Equal(t, domain.SystemMessage, msg.Kind)
}
