package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/nodepop/core/session"
)

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := session.NewMemoryStore[testData]()

	sess := newSession(t, time.Hour)
	require.NoError(t, store.Save(ctx, &sess))

	got, err := store.GetByToken(ctx, sess.Token)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, got.ID)
	assert.False(t, got.IsModified())

	oldToken := sess.Token
	require.NoError(t, sess.Authenticate("user-1", testData{UserEmail: "a@example.com"}))
	require.NoError(t, store.Save(ctx, &sess))

	_, err = store.GetByToken(ctx, oldToken)
	assert.ErrorIs(t, err, session.ErrNotFound)

	got, err = store.GetByID(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "user-1", got.UserID)
	assert.Equal(t, 1, store.Len())

	require.NoError(t, store.Delete(ctx, sess.ID))
	assert.ErrorIs(t, store.Delete(ctx, sess.ID), session.ErrNotFound)
	assert.Equal(t, 0, store.Len())

	expired := newSession(t, -time.Minute)
	require.NoError(t, store.Save(ctx, &expired))
	_, err = store.GetByID(ctx, expired.ID)
	assert.ErrorIs(t, err, session.ErrNotFound)
}
