package seed_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/nodepop/app/nodepop/product"
	"github.com/dmitrymomot/nodepop/app/nodepop/seed"
	"github.com/dmitrymomot/nodepop/app/nodepop/user"
)

type purger struct {
	n   int64
	err error
}

func (p *purger) DeleteAll(context.Context) (int64, error) { return p.n, p.err }

func TestSeeder_Run(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	users := user.NewMemoryRepository()
	products := product.NewMemoryRepository()

	_, err := products.Create(ctx, product.Product{Name: "stale", Owner: "x"})
	require.NoError(t, err)

	s := &seed.Seeder{Users: users, Products: products, Sessions: &purger{n: 3}}
	res, err := s.Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(1), res.DeletedProducts)
	assert.Equal(t, int64(3), res.DeletedSessions)
	assert.Equal(t, 2, res.Users)
	assert.Equal(t, 5, res.Products)

	svc := user.NewService(users)
	admin, err := svc.Authenticate(ctx, seed.AdminEmail, "1234")
	require.NoError(t, err)
	user1, err := svc.Authenticate(ctx, seed.User1Email, "1234")
	require.NoError(t, err)

	list := product.NewService(products)
	l, err := list.List(ctx, admin.ID.Hex(), product.RawQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), l.Total)

	l, err = list.List(ctx, user1.ID.Hex(), product.RawQuery{Tags: "motor"})
	require.NoError(t, err)
	require.Len(t, l.Products, 1)
	assert.Equal(t, "Tesla Model 3", l.Products[0].Name)

	// Seeding twice replaces everything.
	res, err = s.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), res.DeletedProducts)
	assert.Equal(t, int64(2), res.DeletedUsers)
}

func TestSeeder_Run_PurgeError(t *testing.T) {
	t.Parallel()

	errDB := errors.New("boom")
	s := &seed.Seeder{
		Users:    user.NewMemoryRepository(),
		Products: product.NewMemoryRepository(),
		Sessions: &purger{err: errDB},
	}
	res, err := s.Run(context.Background())
	assert.ErrorIs(t, err, errDB)
	assert.Zero(t, res.Users)
}
