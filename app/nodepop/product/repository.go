package product

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Repository persists products. FindByID and Delete return ErrNotFound for
// unknown ids.
type Repository interface {
	Count(ctx context.Context, q Query) (int64, error)
	CountAll(ctx context.Context) (int64, error)
	Find(ctx context.Context, q Query) ([]Product, error)
	FindByID(ctx context.Context, id bson.ObjectID) (Product, error)
	Create(ctx context.Context, p Product) (Product, error)
	Delete(ctx context.Context, id bson.ObjectID) error
	DeleteAll(ctx context.Context) (int64, error)
}
