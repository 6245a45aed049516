// Package seed resets the database to the demo data set: two users and a
// handful of products.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/nodepop/app/nodepop/product"
	"github.com/dmitrymomot/nodepop/app/nodepop/user"
	"github.com/dmitrymomot/nodepop/core/logger"
)

// UserSeed is a demo account.
type UserSeed struct {
	Email    string
	Password string
}

// ProductSeed is a demo product owned by the user with OwnerEmail.
type ProductSeed struct {
	Name       string
	Price      float64
	Tags       []string
	OwnerEmail string
}

const (
	AdminEmail = "admin@example.com"
	User1Email = "user1@example.com"
)

var Users = []UserSeed{
	{Email: AdminEmail, Password: "1234"},
	{Email: User1Email, Password: "1234"},
}

var Products = []ProductSeed{
	{Name: "Bicicleta", Price: 230.15, Tags: []string{"lifestyle", "motor"}, OwnerEmail: AdminEmail},
	{Name: "iPhone 15 Pro", Price: 999.99, Tags: []string{"mobile", "lifestyle"}, OwnerEmail: AdminEmail},
	{Name: "MacBook Pro", Price: 2500, Tags: []string{"work", "lifestyle"}, OwnerEmail: AdminEmail},
	{Name: "Tesla Model 3", Price: 45000, Tags: []string{"motor"}, OwnerEmail: User1Email},
	{Name: "Silla Gaming", Price: 350, Tags: []string{"work"}, OwnerEmail: User1Email},
}

// Purger empties a collection.
type Purger interface {
	DeleteAll(ctx context.Context) (int64, error)
}

// Seeder wipes and reloads users, products and sessions.
type Seeder struct {
	Users    user.Repository
	Products product.Repository
	// Sessions is optional.
	Sessions Purger
	Logger   *slog.Logger
}

// Result summarizes a Run.
type Result struct {
	DeletedProducts int64
	DeletedUsers    int64
	DeletedSessions int64
	Users           int
	Products        int
}

// Run deletes every product, user and session, then inserts Users and
// Products. It stops at the first failure.
func (s *Seeder) Run(ctx context.Context) (Result, error) {
	log := s.Logger
	if log == nil {
		log = logger.Discard()
	}

	var (
		res Result
		err error
	)

	if res.DeletedProducts, err = s.Products.DeleteAll(ctx); err != nil {
		return res, fmt.Errorf("seed: %w", err)
	}
	if res.DeletedUsers, err = s.Users.DeleteAll(ctx); err != nil {
		return res, fmt.Errorf("seed: %w", err)
	}
	if s.Sessions != nil {
		if res.DeletedSessions, err = s.Sessions.DeleteAll(ctx); err != nil {
			return res, fmt.Errorf("seed: %w", err)
		}
	}
	log.InfoContext(ctx, "old data deleted",
		slog.Int64("products", res.DeletedProducts),
		slog.Int64("users", res.DeletedUsers),
		slog.Int64("sessions", res.DeletedSessions),
	)

	users := user.NewService(s.Users)
	owners := make(map[string]string, len(Users))
	for _, us := range Users {
		u, err := users.Register(ctx, us.Email, us.Password)
		if err != nil {
			return res, fmt.Errorf("seed user %s: %w", us.Email, err)
		}
		owners[u.Email] = u.ID.Hex()
		res.Users++
		log.InfoContext(ctx, "user created", logger.Email(u.Email), logger.UserID(u.ID.Hex()))
	}

	products := product.NewService(s.Products)
	for _, ps := range Products {
		owner, ok := owners[user.NormalizeEmail(ps.OwnerEmail)]
		if !ok {
			return res, fmt.Errorf("seed product %s: unknown owner %s", ps.Name, ps.OwnerEmail)
		}
		p, err := products.Create(ctx, owner, product.NewProduct{Name: ps.Name, Price: ps.Price, Tags: ps.Tags})
		if err != nil {
			return res, fmt.Errorf("seed product %s: %w", ps.Name, err)
		}
		res.Products++
		log.DebugContext(ctx, "product created", logger.ProductID(p.ID.Hex()), slog.String("name", p.Name))
	}

	log.InfoContext(ctx, "seed complete", logger.Count("products", int64(res.Products)))
	return res, nil
}
