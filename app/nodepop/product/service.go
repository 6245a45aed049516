package product

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Service implements listing, creation and deletion over a Repository.
type Service struct {
	repo Repository
	now  func() time.Time
}

// ServiceOption configures Service.
type ServiceOption func(*Service)

// WithClock overrides time.Now for creation timestamps.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(repo Repository, opts ...ServiceOption) *Service {
	s := &Service{repo: repo, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns one page of owner's products matching raw. The count ignores
// pagination. Count and fetch run one after the other; the first failure is
// returned and nothing partial is.
func (s *Service) List(ctx context.Context, owner string, raw RawQuery) (Listing, error) {
	q := BuildQuery(owner, raw)

	total, err := s.repo.Count(ctx, q)
	if err != nil {
		return Listing{}, fmt.Errorf("list products: %w", err)
	}

	products, err := s.repo.Find(ctx, q)
	if err != nil {
		return Listing{}, fmt.Errorf("list products: %w", err)
	}

	return Listing{
		Products: products,
		Query:    q.Raw,
		Skip:     q.Skip,
		Limit:    q.Limit,
		Total:    total,
	}, nil
}

// NewProduct is validated input for Create.
type NewProduct struct {
	Name  string
	Price float64
	Tags  []string
}

// Create stores a product owned by owner. Tags are normalized and each must
// be one of AllowedTags.
func (s *Service) Create(ctx context.Context, owner string, in NewProduct) (Product, error) {
	if owner == "" {
		return Product{}, ErrMissingOwner
	}

	tags := NormalizeTags(in.Tags)
	for _, t := range tags {
		if !IsAllowedTag(t) {
			return Product{}, fmt.Errorf("%w: %q", ErrInvalidTag, t)
		}
	}

	now := s.now()
	p, err := s.repo.Create(ctx, Product{
		Name:      in.Name,
		Price:     in.Price,
		Tags:      tags,
		Owner:     owner,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return Product{}, fmt.Errorf("create product: %w", err)
	}
	return p, nil
}

// Delete removes product id if owner owns it. The product is looked up
// first: a missing one gives ErrNotFound, someone else's gives ErrForbidden
// and is left in place.
func (s *Service) Delete(ctx context.Context, owner, id string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	p, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		return err
	}
	if owner == "" || p.Owner != owner {
		return ErrForbidden
	}

	return s.repo.Delete(ctx, oid)
}
