package session_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/nodepop/core/session"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) GetByID(ctx context.Context, id uuid.UUID) (*session.Session[testData], error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.Session[testData]), args.Error(1)
}

func (m *mockStore) GetByToken(ctx context.Context, token string) (*session.Session[testData], error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.Session[testData]), args.Error(1)
}

func (m *mockStore) Save(ctx context.Context, sess *session.Session[testData]) error {
	return m.Called(ctx, sess).Error(0)
}

func (m *mockStore) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func TestManager_GetByToken(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("returns stored session", func(t *testing.T) {
		t.Parallel()

		store := &mockStore{}
		stored := newSession(t, time.Hour)
		store.On("GetByToken", ctx, stored.Token).Return(&stored, nil)

		mgr := session.NewManager[testData](store)
		got, err := mgr.GetByToken(ctx, stored.Token)

		require.NoError(t, err)
		assert.Equal(t, stored.ID, got.ID)
		store.AssertExpectations(t)
	})

	t.Run("rejects expired session", func(t *testing.T) {
		t.Parallel()

		store := &mockStore{}
		stored := newSession(t, -time.Minute)
		store.On("GetByToken", ctx, stored.Token).Return(&stored, nil)

		mgr := session.NewManager[testData](store)
		_, err := mgr.GetByToken(ctx, stored.Token)

		assert.ErrorIs(t, err, session.ErrExpired)
	})

	t.Run("passes store errors through", func(t *testing.T) {
		t.Parallel()

		store := &mockStore{}
		store.On("GetByToken", ctx, "missing").Return(nil, session.ErrNotFound)

		mgr := session.NewManager[testData](store)
		_, err := mgr.GetByToken(ctx, "missing")

		assert.ErrorIs(t, err, session.ErrNotFound)
	})
}

func TestManager_GetByID(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := &mockStore{}
	stored := newSession(t, time.Hour)
	store.On("GetByID", ctx, stored.ID).Return(&stored, nil)

	mgr := session.NewManager[testData](store)
	got, err := mgr.GetByID(ctx, stored.ID)

	require.NoError(t, err)
	assert.Equal(t, stored.Token, got.Token)
}

func TestManager_Authenticate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("saves rotated session", func(t *testing.T) {
		t.Parallel()

		store := &mockStore{}
		store.On("Save", ctx, mock.Anything).Return(nil)

		mgr := session.NewManager[testData](store, session.WithTTL(2*time.Hour))
		sess, err := mgr.New(ctx, session.NewSessionParams{IP: "10.0.0.1"})
		require.NoError(t, err)
		oldToken := sess.Token

		authed, err := mgr.Authenticate(ctx, sess, "user-1", testData{UserEmail: "admin@example.com"})

		require.NoError(t, err)
		assert.Equal(t, sess.ID, authed.ID)
		assert.NotEqual(t, oldToken, authed.Token)
		assert.Equal(t, "user-1", authed.UserID)
		assert.False(t, authed.IsModified())
		assert.WithinDuration(t, time.Now().Add(2*time.Hour), authed.ExpiresAt, time.Second)
		store.AssertExpectations(t)
	})

	t.Run("wraps save errors", func(t *testing.T) {
		t.Parallel()

		store := &mockStore{}
		store.On("Save", ctx, mock.Anything).Return(errors.New("db down"))

		mgr := session.NewManager[testData](store)
		sess := newSession(t, time.Hour)

		_, err := mgr.Authenticate(ctx, sess, "user-1", testData{})
		assert.ErrorIs(t, err, session.ErrSaveSession)
	})
}

func TestManager_Logout(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("deletes old record and issues anonymous session", func(t *testing.T) {
		t.Parallel()

		store := &mockStore{}
		old := newSession(t, time.Hour)
		require.NoError(t, old.Authenticate("user-1", testData{UserEmail: "a@example.com"}))
		store.On("Delete", ctx, old.ID).Return(nil)

		mgr := session.NewManager[testData](store)
		fresh, err := mgr.Logout(ctx, old, session.NewSessionParams{IP: "127.0.0.1"})

		require.NoError(t, err)
		assert.NotEqual(t, old.ID, fresh.ID)
		assert.NotEqual(t, old.Token, fresh.Token)
		assert.False(t, fresh.IsAuthenticated())
		assert.Empty(t, fresh.Data.UserEmail)
		store.AssertExpectations(t)
	})

	t.Run("ignores missing record", func(t *testing.T) {
		t.Parallel()

		store := &mockStore{}
		old := newSession(t, time.Hour)
		store.On("Delete", ctx, old.ID).Return(session.ErrNotFound)

		mgr := session.NewManager[testData](store)
		_, err := mgr.Logout(ctx, old, session.NewSessionParams{IP: "127.0.0.1"})

		assert.NoError(t, err)
	})

	t.Run("fails on delete error", func(t *testing.T) {
		t.Parallel()

		store := &mockStore{}
		old := newSession(t, time.Hour)
		store.On("Delete", ctx, old.ID).Return(errors.New("db down"))

		mgr := session.NewManager[testData](store)
		_, err := mgr.Logout(ctx, old, session.NewSessionParams{IP: "127.0.0.1"})

		assert.ErrorIs(t, err, session.ErrDeleteSession)
	})
}

func TestManager_Store(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("saves new session", func(t *testing.T) {
		t.Parallel()

		store := &mockStore{}
		store.On("Save", ctx, mock.Anything).Return(nil).Once()

		mgr := session.NewManager[testData](store)
		sess := newSession(t, time.Hour)

		require.NoError(t, mgr.Store(ctx, &sess))
		assert.False(t, sess.IsModified())

		// unchanged within touch interval
		require.NoError(t, mgr.Store(ctx, &sess))
		store.AssertNumberOfCalls(t, "Save", 1)
	})

	t.Run("touch extends expiry", func(t *testing.T) {
		t.Parallel()

		store := &mockStore{}
		stored := newSession(t, time.Minute)
		stored.UpdatedAt = time.Now().Add(-time.Hour)
		store.On("GetByToken", ctx, stored.Token).Return(&stored, nil)
		store.On("Save", ctx, mock.Anything).Return(nil)

		mgr := session.NewManager[testData](store, session.WithTTL(24*time.Hour), session.WithTouchInterval(5*time.Minute))
		sess, err := mgr.GetByToken(ctx, stored.Token)
		require.NoError(t, err)

		require.NoError(t, mgr.Store(ctx, &sess))
		assert.WithinDuration(t, time.Now().Add(24*time.Hour), sess.ExpiresAt, time.Second)
		store.AssertCalled(t, "Save", ctx, mock.Anything)
	})

	t.Run("deleted session signals cleanup", func(t *testing.T) {
		t.Parallel()

		store := &mockStore{}
		sess := newSession(t, time.Hour)
		sess.Logout()
		store.On("Delete", ctx, sess.ID).Return(nil)

		mgr := session.NewManager[testData](store)
		err := mgr.Store(ctx, &sess)

		assert.ErrorIs(t, err, session.ErrNotAuthenticated)
		store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("wraps save errors", func(t *testing.T) {
		t.Parallel()

		store := &mockStore{}
		store.On("Save", ctx, mock.Anything).Return(errors.New("db down"))

		mgr := session.NewManager[testData](store)
		sess := newSession(t, time.Hour)

		assert.ErrorIs(t, mgr.Store(ctx, &sess), session.ErrSaveSession)
	})
}

func TestConfig(t *testing.T) {
	t.Parallel()

	cfg := session.DefaultConfig()
	assert.Equal(t, 168*time.Hour, cfg.TTL)
	assert.Equal(t, 5*time.Minute, cfg.TouchInterval)

	mgr := session.NewManager[testData](&mockStore{}, session.WithConfig(session.Config{TTL: time.Hour, TouchInterval: time.Minute}))
	assert.Equal(t, time.Hour, mgr.TTL())

	mgr = session.NewManager[testData](&mockStore{}, session.WithTTL(0))
	assert.Equal(t, 168*time.Hour, mgr.TTL())
}
