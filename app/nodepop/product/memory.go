package product

import (
	"context"
	"slices"
	"sync"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// MemoryRepository is a Repository kept in a map. It evaluates queries with
// Query.Matches and orders by creation time, newest first.
type MemoryRepository struct {
	mu    sync.RWMutex
	items map[bson.ObjectID]memoryItem
	seq   int
}

type memoryItem struct {
	product Product
	seq     int
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[bson.ObjectID]memoryItem)}
}

func (r *MemoryRepository) Count(_ context.Context, q Query) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var n int64
	for _, it := range r.items {
		if q.Matches(it.product) {
			n++
		}
	}
	return n, nil
}

func (r *MemoryRepository) CountAll(context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.items)), nil
}

func (r *MemoryRepository) Find(_ context.Context, q Query) ([]Product, error) {
	r.mu.RLock()
	matched := make([]memoryItem, 0, len(r.items))
	for _, it := range r.items {
		if q.Matches(it.product) {
			matched = append(matched, it)
		}
	}
	r.mu.RUnlock()

	// Insertion order breaks ties between equal timestamps.
	slices.SortFunc(matched, func(a, b memoryItem) int {
		if c := b.product.CreatedAt.Compare(a.product.CreatedAt); c != 0 {
			return c
		}
		return b.seq - a.seq
	})

	products := make([]Product, 0, q.Limit)
	for i := q.Skip; i < len(matched) && len(products) < q.Limit; i++ {
		products = append(products, clone(matched[i].product))
	}
	return products, nil
}

func (r *MemoryRepository) FindByID(_ context.Context, id bson.ObjectID) (Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	it, ok := r.items[id]
	if !ok {
		return Product{}, ErrNotFound
	}
	return clone(it.product), nil
}

func (r *MemoryRepository) Create(_ context.Context, p Product) (Product, error) {
	if p.ID.IsZero() {
		p.ID = bson.NewObjectID()
	}

	r.mu.Lock()
	r.seq++
	r.items[p.ID] = memoryItem{product: clone(p), seq: r.seq}
	r.mu.Unlock()

	return p, nil
}

func (r *MemoryRepository) Delete(_ context.Context, id bson.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *MemoryRepository) DeleteAll(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := int64(len(r.items))
	clear(r.items)
	return n, nil
}

func clone(p Product) Product {
	p.Tags = slices.Clone(p.Tags)
	return p
}
