package mongo_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/nodepop/core/session"
	"github.com/dmitrymomot/nodepop/integration/database/mongo"
)

func TestConfig_DatabaseName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  mongo.Config
		want string
	}{
		{"explicit", mongo.Config{ConnectionURL: "mongodb://localhost/other", Database: "explicit"}, "explicit"},
		{"from url path", mongo.Config{ConnectionURL: "mongodb://localhost:27017/shop?retryWrites=true"}, "shop"},
		{"default", mongo.Config{ConnectionURL: "mongodb://localhost:27017"}, mongo.DefaultDatabase},
		{"default from default config", mongo.DefaultConfig(), "nodepop"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.cfg.DatabaseName())
		})
	}
}

func TestNew_Errors(t *testing.T) {
	t.Parallel()

	_, err := mongo.New(context.Background(), mongo.Config{})
	assert.ErrorIs(t, err, mongo.ErrEmptyConnectionURL)

	cfg := mongo.DefaultConfig()
	cfg.ConnectionURL = "postgres://localhost"
	cfg.RetryAttempts = 2
	cfg.RetryInterval = time.Millisecond
	_, err = mongo.New(context.Background(), cfg)
	assert.ErrorIs(t, err, mongo.ErrFailedToConnectToMongo)
}

type sessionData struct {
	UserEmail string
}

// Runs against a live server when MONGODB_TEST_URL is set.
func TestSessionStore(t *testing.T) {
	t.Parallel()

	uri := os.Getenv("MONGODB_TEST_URL")
	if uri == "" {
		t.Skip("MONGODB_TEST_URL not set")
	}

	ctx := context.Background()
	cfg := mongo.DefaultConfig()
	cfg.ConnectionURL = uri
	cfg.Database = "nodepop_test_" + uuid.NewString()[:8]
	cfg.RetryAttempts = 1

	db, err := mongo.NewWithDatabase(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = db.Client().Disconnect(context.Background())
	})

	require.NoError(t, mongo.Healthcheck(db.Client())(ctx))

	store := mongo.NewSessionStore[sessionData](db)
	require.NoError(t, store.EnsureIndexes(ctx))

	sess, err := session.New[sessionData](session.NewSessionParams{IP: "127.0.0.1"}, time.Hour)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, &sess))

	got, err := store.GetByToken(ctx, sess.Token)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, got.ID)

	oldToken := sess.Token
	require.NoError(t, sess.Authenticate("64b7f1f4a1b2c3d4e5f60718", sessionData{UserEmail: "admin@example.com"}))
	require.NoError(t, store.Save(ctx, &sess))

	_, err = store.GetByToken(ctx, oldToken)
	assert.ErrorIs(t, err, session.ErrNotFound)

	got, err = store.GetByID(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", got.Data.UserEmail)
	assert.Equal(t, "64b7f1f4a1b2c3d4e5f60718", got.UserID)

	require.NoError(t, store.Delete(ctx, sess.ID))
	assert.ErrorIs(t, store.Delete(ctx, sess.ID), session.ErrNotFound)
}
