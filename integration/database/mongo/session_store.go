package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/nodepop/core/session"
)

// SessionsCollection is the default collection for SessionStore.
const SessionsCollection = "sessions"

type sessionDoc[Data any] struct {
	ID        string    `bson:"_id"`
	Token     string    `bson:"token"`
	UserID    string    `bson:"user_id,omitempty"`
	IP        string    `bson:"ip"`
	UserAgent string    `bson:"user_agent,omitempty"`
	Data      Data      `bson:"data"`
	ExpiresAt time.Time `bson:"expires_at"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// SessionStore implements session.Store over a MongoDB collection.
type SessionStore[Data any] struct {
	coll *mongo.Collection
}

// NewSessionStore returns a store over db.Collection(SessionsCollection).
func NewSessionStore[Data any](db *mongo.Database) *SessionStore[Data] {
	return &SessionStore[Data]{coll: db.Collection(SessionsCollection)}
}

// EnsureIndexes creates the expiry TTL index and the unique token index.
func (s *SessionStore[Data]) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0).SetName("expires_at_ttl"),
		},
		{
			Keys:    bson.D{{Key: "token", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("token_unique"),
		},
	})
	if err != nil {
		return fmt.Errorf("create session indexes: %w", err)
	}
	return nil
}

func (s *SessionStore[Data]) GetByID(ctx context.Context, id uuid.UUID) (*session.Session[Data], error) {
	return s.findOne(ctx, bson.D{{Key: "_id", Value: id.String()}})
}

func (s *SessionStore[Data]) GetByToken(ctx context.Context, token string) (*session.Session[Data], error) {
	return s.findOne(ctx, bson.D{{Key: "token", Value: token}})
}

// Save upserts the session by id. A rotated token replaces the old one.
func (s *SessionStore[Data]) Save(ctx context.Context, sess *session.Session[Data]) error {
	doc := sessionDoc[Data]{
		ID:        sess.ID.String(),
		Token:     sess.Token,
		UserID:    sess.UserID,
		IP:        sess.IP,
		UserAgent: sess.UserAgent,
		Data:      sess.Data,
		ExpiresAt: sess.ExpiresAt,
		CreatedAt: sess.CreatedAt,
		UpdatedAt: sess.UpdatedAt,
	}
	_, err := s.coll.ReplaceOne(ctx, bson.D{{Key: "_id", Value: doc.ID}}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *SessionStore[Data]) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id.String()}})
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if res.DeletedCount == 0 {
		return session.ErrNotFound
	}
	return nil
}

// DeleteAll removes every session. Used by the seed command.
func (s *SessionStore[Data]) DeleteAll(ctx context.Context) (int64, error) {
	res, err := s.coll.DeleteMany(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("delete sessions: %w", err)
	}
	return res.DeletedCount, nil
}

func (s *SessionStore[Data]) findOne(ctx context.Context, filter bson.D) (*session.Session[Data], error) {
	var doc sessionDoc[Data]
	if err := s.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, session.ErrNotFound
		}
		return nil, fmt.Errorf("find session: %w", err)
	}

	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("decode session id: %w", err)
	}

	return &session.Session[Data]{
		ID:        id,
		Token:     doc.Token,
		UserID:    doc.UserID,
		IP:        doc.IP,
		UserAgent: doc.UserAgent,
		Data:      doc.Data,
		ExpiresAt: doc.ExpiresAt,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}, nil
}
