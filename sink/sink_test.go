package sink

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"sync-lab/domain"
	"sync-lab/domain/event"
)

func sampleSession(users ...domain.User) domain.Session {
	return domain.Session{
		ID:       "1234567890",
		HostID:   "host-1",
		Config:   domain.SessionConfig{MaxUsers: 4},
		Users:    users,
		IsActive: true,
	}
}

func TestTimeline_AppendsOnlyMessages(t *testing.T) {
	req := require.New(t)
	timeline := NewTimeline("user-1")

	msg := domain.Message{ID: uuid.New(), SenderID: "user-2", SenderName: "Bob",
		Content: "hi", CreatedAt: time.Now().UTC(), Kind: domain.TextMessage}
	timeline.Consume(event.NewMessage{Message: msg})
	timeline.Consume(event.SyncSession{Session: sampleSession()})
	timeline.Consume(event.SessionEnded{})

	req.Len(timeline.Messages(), 1)
	req.Equal(msg, timeline.Messages()[0])
}

func TestReplica_SyncReplacesWholeSession(t *testing.T) {
	req := require.New(t)
	host := domain.User{ID: "host-1", Name: "Alice", Role: domain.HOST}
	guest := domain.User{ID: "guest-1", Name: "Bob", Role: domain.GUEST}
	replica := NewReplica(guest.ID, sampleSession(host, guest))

	// A snapshot without the guest replaces the view unconditionally.
	replica.Consume(event.SyncSession{Session: sampleSession(host)})

	req.False(replica.Session().HasUser(guest.ID))
	req.False(replica.InSession())
}

func TestReplica_KickedIsSelfChecked(t *testing.T) {
	req := require.New(t)
	host := domain.User{ID: "host-1", Role: domain.HOST}
	guest := domain.User{ID: "guest-1", Role: domain.GUEST}
	replica := NewReplica(guest.ID, sampleSession(host, guest))

	// Someone else's kick does not touch this replica's exit flag.
	replica.Consume(event.Kicked{UserID: "other"})
	req.False(replica.KickedOut())
	req.True(replica.InSession())

	replica.Consume(event.Kicked{UserID: guest.ID})
	req.True(replica.KickedOut())
	req.False(replica.InSession())
}

func TestReplica_SessionEndedForcesExit(t *testing.T) {
	host := domain.User{ID: "host-1", Role: domain.HOST}
	replica := NewReplica(host.ID, sampleSession(host))
	require.True(t, replica.InSession())

	replica.Consume(event.SessionEnded{})
	require.True(t, replica.Ended())
	require.False(t, replica.InSession())
}
