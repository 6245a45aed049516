package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/nodepop/core/session"
)

// DefaultSessionPrefix namespaces session keys.
const DefaultSessionPrefix = "nodepop:session:"

// SessionStore implements session.Store on Redis. A session lives under
// <prefix><id> as JSON; <prefix>token:<token> maps the token to the id. Both
// keys expire with the session.
type SessionStore[Data any] struct {
	client redis.UniversalClient
	prefix string
}

// SessionStoreOption configures SessionStore.
type SessionStoreOption func(*sessionStoreOptions)

type sessionStoreOptions struct {
	prefix string
}

// WithPrefix overrides DefaultSessionPrefix.
func WithPrefix(prefix string) SessionStoreOption {
	return func(o *sessionStoreOptions) {
		if prefix != "" {
			o.prefix = prefix
		}
	}
}

func NewSessionStore[Data any](client redis.UniversalClient, opts ...SessionStoreOption) *SessionStore[Data] {
	o := sessionStoreOptions{prefix: DefaultSessionPrefix}
	for _, opt := range opts {
		opt(&o)
	}
	return &SessionStore[Data]{client: client, prefix: o.prefix}
}

func (s *SessionStore[Data]) idKey(id uuid.UUID) string { return s.prefix + id.String() }
func (s *SessionStore[Data]) tokenKey(token string) string {
	return s.prefix + "token:" + token
}

func (s *SessionStore[Data]) GetByID(ctx context.Context, id uuid.UUID) (*session.Session[Data], error) {
	raw, err := s.client.Get(ctx, s.idKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, session.ErrNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	var sess session.Session[Data]
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &sess, nil
}

func (s *SessionStore[Data]) GetByToken(ctx context.Context, token string) (*session.Session[Data], error) {
	raw, err := s.client.Get(ctx, s.tokenKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, session.ErrNotFound
		}
		return nil, fmt.Errorf("get session token: %w", err)
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("decode session id: %w", err)
	}
	return s.GetByID(ctx, id)
}

// Save writes both keys with the session's remaining lifetime and drops the
// index key of a rotated token. An already expired session is removed.
func (s *SessionStore[Data]) Save(ctx context.Context, sess *session.Session[Data]) error {
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		if err := s.Delete(ctx, sess.ID); err != nil && !errors.Is(err, session.ErrNotFound) {
			return err
		}
		return nil
	}

	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	prev, err := s.GetByID(ctx, sess.ID)
	if err != nil && !errors.Is(err, session.ErrNotFound) {
		return err
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if prev != nil && prev.Token != sess.Token {
			pipe.Del(ctx, s.tokenKey(prev.Token))
		}
		pipe.Set(ctx, s.idKey(sess.ID), raw, ttl)
		pipe.Set(ctx, s.tokenKey(sess.Token), sess.ID.String(), ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *SessionStore[Data]) Delete(ctx context.Context, id uuid.UUID) error {
	sess, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.client.Del(ctx, s.idKey(id), s.tokenKey(sess.Token)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteAll removes every key under the prefix.
func (s *SessionStore[Data]) DeleteAll(ctx context.Context) (int64, error) {
	var (
		cursor  uint64
		deleted int64
	)
	for {
		keys, next, err := s.client.Scan(ctx, cursor, s.prefix+"*", 1000).Result()
		if err != nil {
			return deleted, fmt.Errorf("scan sessions: %w", err)
		}
		if len(keys) > 0 {
			n, err := s.client.Del(ctx, keys...).Result()
			if err != nil {
				return deleted, fmt.Errorf("delete sessions: %w", err)
			}
			deleted += n
		}
		if next == 0 {
			return deleted, nil
		}
		cursor = next
	}
}
