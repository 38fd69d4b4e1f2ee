//go:generate go run go.uber.org/mock/mockgen -source=session.go -destination=../mocks/mock_session_repository.go -package=mocks
package repositories

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/fxamacker/cbor/v2"
	"github.com/samber/lo"

	"sync-lab/domain"
)

// Two fixed keys hold everything this device remembers: the single active
// session and the caller's own identity. Both are read at process start to
// decide whether a prior session can be resumed.
const (
	keyActiveSession = "session:active"
	keySelfUser      = "user:self"
)

type ISessionRepository interface {
	SaveSession(session domain.Session) error
	GetSession() (domain.Session, bool, error)
	DeleteSession() error
	SaveSelf(user domain.User) error
	GetSelf() (domain.User, bool, error)
	DeleteSelf() error
}

type SessionRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewSessionRepository(db *badger.DB, log *slog.Logger) SessionRepository {
	return SessionRepository{db: db, log: log}
}

// DiskSession is the storage-friendly representation of a session.
// Timestamps are stored as Unix nanoseconds to keep records stable across
// time zone and monotonic clock differences.
type DiskSession struct {
	ID        string     `cbor:"1,keyasint"`
	HostID    string     `cbor:"2,keyasint"`
	CreatedAt int64      `cbor:"3,keyasint"`
	MaxUsers  int        `cbor:"4,keyasint"`
	Enable2FA bool       `cbor:"5,keyasint"`
	Pin       string     `cbor:"6,keyasint"`
	Users     []DiskUser `cbor:"7,keyasint"`
	IsActive  bool       `cbor:"8,keyasint"`
}

type DiskUser struct {
	ID         string `cbor:"1,keyasint"`
	Name       string `cbor:"2,keyasint"`
	Role       string `cbor:"3,keyasint"`
	JoinedAt   int64  `cbor:"4,keyasint"`
	DeviceInfo string `cbor:"5,keyasint"`
	IP         string `cbor:"6,keyasint"`
}

// SaveSession overwrites the active session record. There is no merge: the
// caller always writes a full snapshot, mirroring what travels on the bus.
func (r SessionRepository) SaveSession(session domain.Session) error {
	data, err := cbor.Marshal(fromSession(session))
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyActiveSession), data)
	})
}

// GetSession reads the active session. The second return value is false when
// no session record exists on this device.
func (r SessionRepository) GetSession() (domain.Session, bool, error) {
	var record DiskSession
	found, err := r.get(keyActiveSession, &record)
	if err != nil || !found {
		return domain.Session{}, false, err
	}
	return toSession(record), true, nil
}

func (r SessionRepository) DeleteSession() error {
	return r.delete(keyActiveSession)
}

func (r SessionRepository) SaveSelf(user domain.User) error {
	data, err := cbor.Marshal(fromUser(user))
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keySelfUser), data)
	})
}

func (r SessionRepository) GetSelf() (domain.User, bool, error) {
	var record DiskUser
	found, err := r.get(keySelfUser, &record)
	if err != nil || !found {
		return domain.User{}, false, err
	}
	return toUser(record), true, nil
}

func (r SessionRepository) DeleteSelf() error {
	return r.delete(keySelfUser)
}

func (r SessionRepository) get(key string, out any) (bool, error) {
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return cbor.Unmarshal(val, out)
		})
	})
	if err == badger.ErrKeyNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r SessionRepository) delete(key string) error {
	return r.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete([]byte(key))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		return err
	})
}

func fromSession(s domain.Session) DiskSession {
	return DiskSession{
		ID:        s.ID,
		HostID:    s.HostID,
		CreatedAt: s.CreatedAt.UnixNano(),
		MaxUsers:  s.Config.MaxUsers,
		Enable2FA: s.Config.Enable2FA,
		Pin:       s.Config.Pin,
		Users:     lo.Map(s.Users, func(u domain.User, _ int) DiskUser { return fromUser(u) }),
		IsActive:  s.IsActive,
	}
}

func toSession(record DiskSession) domain.Session {
	return domain.Session{
		ID:        record.ID,
		HostID:    record.HostID,
		CreatedAt: time.Unix(0, record.CreatedAt).UTC(),
		Config: domain.SessionConfig{
			MaxUsers:  record.MaxUsers,
			Enable2FA: record.Enable2FA,
			Pin:       record.Pin,
		},
		Users:    lo.Map(record.Users, func(u DiskUser, _ int) domain.User { return toUser(u) }),
		IsActive: record.IsActive,
	}
}

func fromUser(u domain.User) DiskUser {
	return DiskUser{
		ID:         u.ID,
		Name:       u.Name,
		Role:       string(u.Role),
		JoinedAt:   u.JoinedAt.UnixNano(),
		DeviceInfo: u.DeviceInfo,
		IP:         u.IP,
	}
}

func toUser(record DiskUser) domain.User {
	return domain.User{
		ID:         record.ID,
		Name:       record.Name,
		Role:       domain.Role(record.Role),
		JoinedAt:   time.Unix(0, record.JoinedAt).UTC(),
		DeviceInfo: record.DeviceInfo,
		IP:         record.IP,
	}
}
