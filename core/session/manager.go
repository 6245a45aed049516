package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Manager handles session lifecycle including creation, retrieval, and expiration.
type Manager[Data any] struct {
	store Store[Data]
	cfg   Config
}

// NewManager creates a session manager over store.
func NewManager[Data any](store Store[Data], opts ...Option) *Manager[Data] {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Manager[Data]{store: store, cfg: cfg}
}

// New creates an anonymous session. It is persisted on the next Store call.
func (m *Manager[Data]) New(_ context.Context, params NewSessionParams) (Session[Data], error) {
	return New[Data](params, m.cfg.TTL)
}

// GetByID retrieves a session by ID and validates expiration.
func (m *Manager[Data]) GetByID(ctx context.Context, id uuid.UUID) (Session[Data], error) {
	sess, err := m.store.GetByID(ctx, id)
	if err != nil {
		return Session[Data]{}, err
	}
	if sess.IsExpired() {
		return Session[Data]{}, ErrExpired
	}
	return *sess, nil
}

// GetByToken retrieves a session by token and validates expiration.
func (m *Manager[Data]) GetByToken(ctx context.Context, token string) (Session[Data], error) {
	sess, err := m.store.GetByToken(ctx, token)
	if err != nil {
		return Session[Data]{}, err
	}
	if sess.IsExpired() {
		return Session[Data]{}, ErrExpired
	}
	return *sess, nil
}

// Authenticate binds sess to userID, rotates its token, extends the expiry
// and saves it immediately.
func (m *Manager[Data]) Authenticate(ctx context.Context, sess Session[Data], userID string, data Data) (Session[Data], error) {
	if err := sess.Authenticate(userID, data); err != nil {
		return Session[Data]{}, err
	}
	sess.ExpiresAt = time.Now().Add(m.cfg.TTL)
	if err := m.store.Save(ctx, &sess); err != nil {
		return Session[Data]{}, errors.Join(ErrSaveSession, err)
	}
	sess.isModified = false
	return sess, nil
}

// Logout deletes the stored record of sess and returns a fresh anonymous
// session that has not been saved yet.
func (m *Manager[Data]) Logout(ctx context.Context, sess Session[Data], params NewSessionParams) (Session[Data], error) {
	if err := m.Delete(ctx, sess.ID); err != nil {
		return Session[Data]{}, err
	}
	return m.New(ctx, params)
}

// Delete removes a session. Unknown ids are not an error.
func (m *Manager[Data]) Delete(ctx context.Context, id uuid.UUID) error {
	if err := m.store.Delete(ctx, id); err != nil && !errors.Is(err, ErrNotFound) {
		return errors.Join(ErrDeleteSession, err)
	}
	return nil
}

// Store persists sess according to its state, extending its expiry in place.
// A deleted session is removed and ErrNotAuthenticated is returned so the
// transport can clear the client token.
func (m *Manager[Data]) Store(ctx context.Context, sess *Session[Data]) error {
	if sess.IsDeleted() {
		if err := m.Delete(ctx, sess.ID); err != nil {
			return err
		}
		return ErrNotAuthenticated
	}

	sess.Touch(m.cfg.TTL, m.cfg.TouchInterval)

	if sess.IsModified() {
		if err := m.store.Save(ctx, sess); err != nil {
			return fmt.Errorf("%w: %w", ErrSaveSession, err)
		}
		sess.isModified = false
	}
	return nil
}

// TTL returns the session time-to-live.
func (m *Manager[Data]) TTL() time.Duration {
	return m.cfg.TTL
}
