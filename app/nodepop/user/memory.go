package user

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// MemoryRepository is a Repository kept in a map, keyed by normalized email.
type MemoryRepository struct {
	mu      sync.RWMutex
	byEmail map[string]User
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byEmail: make(map[string]User)}
}

func (r *MemoryRepository) FindByEmail(_ context.Context, email string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byEmail[NormalizeEmail(email)]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (r *MemoryRepository) FindByID(_ context.Context, id bson.ObjectID) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *MemoryRepository) Create(_ context.Context, u User) (User, error) {
	if u.ID.IsZero() {
		u.ID = bson.NewObjectID()
	}
	u.Email = NormalizeEmail(u.Email)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[u.Email]; ok {
		return User{}, ErrEmailTaken
	}
	r.byEmail[u.Email] = u
	return u, nil
}

func (r *MemoryRepository) DeleteAll(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := int64(len(r.byEmail))
	clear(r.byEmail)
	return n, nil
}
