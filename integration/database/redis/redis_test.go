package redis_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/nodepop/core/session"
	"github.com/dmitrymomot/nodepop/integration/database/redis"
)

func TestConnect_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
		err  error
	}{
		{"empty", "", redis.ErrEmptyConnectionURL},
		{"wrong scheme", "http://localhost:6379", redis.ErrFailedToParseRedisConnString},
		{"bad db", "redis://localhost:6379/abc", redis.ErrFailedToParseRedisConnString},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := redis.Connect(context.Background(), redis.Config{ConnectionURL: tt.url})
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

type sessionData struct {
	UserEmail string `json:"user_email"`
}

// Runs against a live server when REDIS_TEST_URL is set.
func TestSessionStore(t *testing.T) {
	t.Parallel()

	url := os.Getenv("REDIS_TEST_URL")
	if url == "" {
		t.Skip("REDIS_TEST_URL not set")
	}

	ctx := context.Background()
	client, err := redis.Connect(ctx, redis.Config{ConnectionURL: url, RetryAttempts: 1, ConnectTimeout: 5 * time.Second})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, redis.Healthcheck(client)(ctx))

	store := redis.NewSessionStore[sessionData](client, redis.WithPrefix("nodepop_test:session:"))
	t.Cleanup(func() { _, _ = store.DeleteAll(context.Background()) })

	sess, err := session.New[sessionData](session.NewSessionParams{IP: "127.0.0.1"}, time.Hour)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, &sess))

	oldToken := sess.Token
	require.NoError(t, sess.Authenticate("user-1", sessionData{UserEmail: "user1@example.com"}))
	require.NoError(t, store.Save(ctx, &sess))

	_, err = store.GetByToken(ctx, oldToken)
	assert.ErrorIs(t, err, session.ErrNotFound)

	got, err := store.GetByToken(ctx, sess.Token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", got.UserID)
	assert.Equal(t, "user1@example.com", got.Data.UserEmail)

	require.NoError(t, store.Delete(ctx, sess.ID))
	_, err = store.GetByID(ctx, sess.ID)
	assert.ErrorIs(t, err, session.ErrNotFound)
}
