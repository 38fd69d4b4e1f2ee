package repositories

import (
	"log/slog"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"

	"sync-lab/domain"
)

func openRepo(t *testing.T) SessionRepository {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSessionRepository(db, slog.Default())
}

func sampleSession() domain.Session {
	at := time.Now().UTC().Truncate(time.Nanosecond)
	host := domain.User{
		ID: "host-1", Name: "Alice", Role: domain.HOST,
		JoinedAt: at, DeviceInfo: "ubuntu 24.04 (linux)", IP: "192.168.1.10",
	}
	return domain.Session{
		ID:        "1234567890",
		HostID:    host.ID,
		CreatedAt: at,
		Config:    domain.SessionConfig{MaxUsers: 4, Enable2FA: true, Pin: "12345678"},
		Users:     []domain.User{host},
		IsActive:  true,
	}
}

func Test_Session_RoundTrip(t *testing.T) {
	req := require.New(t)
	repo := openRepo(t)
	session := sampleSession()

	req.NoError(repo.SaveSession(session))

	fetched, found, err := repo.GetSession()
	req.NoError(err)
	req.True(found)
	req.Equal(session, fetched)
}

func Test_Session_SaveOverwritesSnapshot(t *testing.T) {
	req := require.New(t)
	repo := openRepo(t)
	session := sampleSession()
	req.NoError(repo.SaveSession(session))

	updated := session.WithUser(domain.User{ID: "guest-1", Name: "Bob", Role: domain.GUEST, JoinedAt: time.Now().UTC()})
	req.NoError(repo.SaveSession(updated))

	fetched, found, err := repo.GetSession()
	req.NoError(err)
	req.True(found)
	req.Len(fetched.Users, 2)
}

func Test_Session_MissingRecord(t *testing.T) {
	repo := openRepo(t)

	_, found, err := repo.GetSession()
	require.NoError(t, err)
	require.False(t, found)
}

func Test_Session_DeleteIsIdempotent(t *testing.T) {
	req := require.New(t)
	repo := openRepo(t)
	req.NoError(repo.SaveSession(sampleSession()))

	req.NoError(repo.DeleteSession())
	req.NoError(repo.DeleteSession())

	_, found, err := repo.GetSession()
	req.NoError(err)
	req.False(found)
}

func Test_Self_RoundTrip(t *testing.T) {
	req := require.New(t)
	repo := openRepo(t)
	self := domain.User{
		ID: "guest-1", Name: "Bob", Role: domain.GUEST,
		JoinedAt: time.Now().UTC(), DeviceInfo: "mac 15 (darwin)", IP: "10.0.0.4",
	}

	req.NoError(repo.SaveSelf(self))

	fetched, found, err := repo.GetSelf()
	req.NoError(err)
	req.True(found)
	req.Equal(self, fetched)

	req.NoError(repo.DeleteSelf())
	_, found, err = repo.GetSelf()
	req.NoError(err)
	req.False(found)
}
