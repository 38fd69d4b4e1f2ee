//go:generate go run go.uber.org/mock/mockgen -source=session_service.go -destination=../mocks/mock_session_service.go -package=mocks
package services

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"sync-lab/contract"
	"sync-lab/domain"
	"sync-lab/domain/event"
	"sync-lab/errors"
	"sync-lab/identity"
	"sync-lab/repositories"
	"sync-lab/roomcode"
)

type ISessionService interface {
	CreateSession(hostName string, config domain.SessionConfig) (domain.Session, domain.User, error)
	JoinSession(code, name, pin string) (domain.Session, domain.User, error)
	LeaveSession(userID string) error
	KickUser(userID string) error
	EndSession() error
	Resume() (domain.Session, domain.User, bool, error)
}

// SessionService owns the session lifecycle on one replica: creation,
// admission, departure and teardown. It is constructed explicitly with its
// storage and bus dependencies so every test gets an isolated instance.
//
// Host permission for KickUser and EndSession is NOT checked here: the
// service trusts its caller. That is a gap inherited from the protocol,
// kept visible rather than papered over with a guessed policy.
type SessionService struct {
	log   *slog.Logger
	repo  repositories.ISessionRepository
	bus   contract.Bus
	codes *roomcode.Generator
}

func NewSessionService(log *slog.Logger, repo repositories.ISessionRepository,
	bus contract.Bus, codes *roomcode.Generator) *SessionService {
	return &SessionService{log: log, repo: repo, bus: bus, codes: codes}
}

// CreateSession builds the room around its host and commits it locally.
// It deliberately does not broadcast: a fresh session has no other
// subscribers yet, so the creator is the sole source of truth until the
// first join republishes the snapshot.
func (s *SessionService) CreateSession(hostName string, config domain.SessionConfig) (domain.Session, domain.User, error) {
	host := s.newUser(hostName, domain.HOST)
	session := domain.Session{
		ID:        s.codes.Generate(),
		HostID:    host.ID,
		CreatedAt: time.Now().UTC(),
		Config:    config,
		Users:     []domain.User{host},
		IsActive:  true,
	}

	if err := s.repo.SaveSession(session); err != nil {
		return domain.Session{}, domain.User{}, fmt.Errorf("persist session: %w", err)
	}
	if err := s.repo.SaveSelf(host); err != nil {
		return domain.Session{}, domain.User{}, fmt.Errorf("persist host identity: %w", err)
	}

	s.log.Info("Session created", "code", session.ID, "maxUsers", config.MaxUsers, "2fa", config.Enable2FA)
	return session, host, nil
}

// JoinSession admits a guest against the snapshot read at call start:
// code and activity first, then PIN, then capacity. Two guests racing for
// the last seat will both pass these checks on their own replicas; the
// second SyncSession silently overwrites the first (last writer wins).
func (s *SessionService) JoinSession(code, name, pin string) (domain.Session, domain.User, error) {
	session, found, err := s.repo.GetSession()
	if err != nil {
		return domain.Session{}, domain.User{}, fmt.Errorf("read session: %w", err)
	}
	if !found || session.ID != code || !session.IsActive {
		return domain.Session{}, domain.User{}, errors.ErrSessionNotFound
	}
	if session.Config.Enable2FA && session.Config.Pin != pin {
		return domain.Session{}, domain.User{}, errors.ErrInvalidPin
	}
	if session.IsFull() {
		return domain.Session{}, domain.User{}, errors.ErrSessionFull
	}

	guest := s.newUser(name, domain.GUEST)
	updated := session.WithUser(guest)

	if err = s.repo.SaveSession(updated); err != nil {
		return domain.Session{}, domain.User{}, fmt.Errorf("persist session: %w", err)
	}
	if err = s.repo.SaveSelf(guest); err != nil {
		return domain.Session{}, domain.User{}, fmt.Errorf("persist guest identity: %w", err)
	}

	s.bus.Publish(event.SyncSession{Session: updated})
	s.log.Info("Guest admitted", "code", code, "user", guest.ID, "members", len(updated.Users))
	return updated, guest, nil
}

// LeaveSession removes the user and republishes the snapshot. Removing an
// absent id is a state no-op but the (unchanged) snapshot still goes out.
// When the departing user is the host, HostID dangles until the host ends
// the session; no replacement host is elected.
func (s *SessionService) LeaveSession(userID string) error {
	session, found, err := s.repo.GetSession()
	if err != nil {
		return fmt.Errorf("read session: %w", err)
	}
	if !found {
		return nil
	}

	updated := session.WithoutUser(userID)
	if err = s.repo.SaveSession(updated); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	if err = s.clearSelfIf(userID); err != nil {
		return err
	}

	s.bus.Publish(event.SyncSession{Session: updated})
	s.log.Info("User left", "user", userID, "members", len(updated.Users))
	return nil
}

// KickUser removes the target and publishes the snapshot followed by a
// Kicked event, so the target can distinguish removal from a plain leave
// even though its view already reflects the new membership.
func (s *SessionService) KickUser(userID string) error {
	session, found, err := s.repo.GetSession()
	if err != nil {
		return fmt.Errorf("read session: %w", err)
	}
	if !found {
		return errors.ErrNoActiveSession
	}

	updated := session.WithoutUser(userID)
	if err = s.repo.SaveSession(updated); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	s.bus.Publish(event.SyncSession{Session: updated})
	s.bus.Publish(event.Kicked{UserID: userID})
	s.log.Info("User kicked", "user", userID, "members", len(updated.Users))
	return nil
}

// EndSession announces the teardown and deletes the persisted records
// outright. Once ended, the session and its history are unrecoverable.
func (s *SessionService) EndSession() error {
	s.bus.Publish(event.SessionEnded{})
	if err := s.repo.DeleteSession(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if err := s.repo.DeleteSelf(); err != nil {
		return fmt.Errorf("delete identity: %w", err)
	}
	s.log.Info("Session ended")
	return nil
}

// Resume restores a prior session at process start. It succeeds only when
// both records exist, the session is still active and it still lists the
// stored identity; a user removed while offline does not sneak back in.
func (s *SessionService) Resume() (domain.Session, domain.User, bool, error) {
	session, foundSession, err := s.repo.GetSession()
	if err != nil {
		return domain.Session{}, domain.User{}, false, fmt.Errorf("read session: %w", err)
	}
	self, foundSelf, err := s.repo.GetSelf()
	if err != nil {
		return domain.Session{}, domain.User{}, false, fmt.Errorf("read identity: %w", err)
	}
	if !foundSession || !foundSelf || !session.IsActive || !session.HasUser(self.ID) {
		return domain.Session{}, domain.User{}, false, nil
	}
	s.log.Info("Session resumed", "code", session.ID, "user", self.ID)
	return session, self, true, nil
}

func (s *SessionService) newUser(name string, role domain.Role) domain.User {
	return domain.User{
		ID:         uuid.New().String(),
		Name:       name,
		Role:       role,
		JoinedAt:   time.Now().UTC(),
		DeviceInfo: identity.DeviceDescriptor(),
		IP:         identity.AdvisoryIP(),
	}
}

func (s *SessionService) clearSelfIf(userID string) error {
	self, found, err := s.repo.GetSelf()
	if err != nil {
		return fmt.Errorf("read identity: %w", err)
	}
	if found && self.ID == userID {
		if err = s.repo.DeleteSelf(); err != nil {
			return fmt.Errorf("delete identity: %w", err)
		}
	}
	return nil
}
