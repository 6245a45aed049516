// Package session provides generic, store-backed sessions.
//
// A Session carries a stable ID, a rotating token and application data of
// type Data. Manager coordinates creation, lookup, authentication and
// persistence over a Store implementation. Transports (see
// core/sessiontransport) move the token between the client and the manager.
//
//	mgr := session.NewManager[SessionData](store,
//		session.WithTTL(7*24*time.Hour),
//		session.WithTouchInterval(5*time.Minute),
//	)
package session

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Session represents a user session with generic data storage.
type Session[Data any] struct {
	// ID never changes during the session lifecycle.
	ID uuid.UUID `json:"id"`

	// Token is 32 random bytes, base64url encoded. It is rotated on login.
	Token string `json:"token"`

	// UserID is empty for anonymous sessions.
	UserID string `json:"user_id,omitempty"`

	IP        string `json:"ip"`
	UserAgent string `json:"user_agent,omitempty"`

	Data Data `json:"data"`

	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	DeletedAt time.Time `json:"deleted_at,omitzero"`

	isModified bool
}

// NewSessionParams contains parameters for creating a new session.
type NewSessionParams struct {
	IP        string
	UserAgent string
}

// New creates a new anonymous session with generated token and ID.
// The session is marked as modified and ready to be saved.
func New[Data any](params NewSessionParams, ttl time.Duration) (Session[Data], error) {
	if params.IP == "" {
		return Session[Data]{}, ErrMissingIP
	}

	token, err := generateToken()
	if err != nil {
		return Session[Data]{}, errors.Join(ErrTokenGeneration, err)
	}

	now := time.Now()
	return Session[Data]{
		ID:         uuid.New(),
		Token:      token,
		IP:         params.IP,
		UserAgent:  params.UserAgent,
		Data:       *new(Data),
		ExpiresAt:  now.Add(ttl),
		CreatedAt:  now,
		UpdatedAt:  now,
		isModified: true,
	}, nil
}

// Authenticate binds the session to userID and rotates the token.
// The session ID is preserved.
func (s *Session[Data]) Authenticate(userID string, data Data) error {
	if userID == "" {
		return ErrEmptyUserID
	}
	if err := s.rotateToken(); err != nil {
		return err
	}
	s.UserID = userID
	s.Data = data
	s.UpdatedAt = time.Now()
	return nil
}

// Logout marks the session for deletion.
func (s *Session[Data]) Logout() {
	s.DeletedAt = time.Now()
	s.isModified = true
}

// SetData updates the session's custom data.
func (s *Session[Data]) SetData(data Data) {
	s.Data = data
	s.UpdatedAt = time.Now()
	s.isModified = true
}

// Touch extends the expiration once touchInterval has elapsed since the last update.
func (s *Session[Data]) Touch(ttl, touchInterval time.Duration) {
	if time.Since(s.UpdatedAt) >= touchInterval {
		now := time.Now()
		s.ExpiresAt = now.Add(ttl)
		s.UpdatedAt = now
		s.isModified = true
	}
}

// IsAuthenticated reports whether a user is bound to the session.
func (s Session[Data]) IsAuthenticated() bool {
	return s.UserID != "" && s.Token != ""
}

// IsDeleted returns true if the session is marked for deletion.
func (s Session[Data]) IsDeleted() bool {
	return !s.DeletedAt.IsZero()
}

// IsModified returns true if the session has been modified and needs saving.
func (s Session[Data]) IsModified() bool {
	return s.isModified
}

// IsExpired returns true if the session has expired.
func (s Session[Data]) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// TTL returns the remaining lifetime, or zero when expired.
func (s Session[Data]) TTL() time.Duration {
	d := time.Until(s.ExpiresAt)
	if d < 0 {
		return 0
	}
	return d
}

func (s *Session[Data]) rotateToken() error {
	token, err := generateToken()
	if err != nil {
		return errors.Join(ErrTokenGeneration, err)
	}
	s.Token = token
	s.isModified = true
	return nil
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
