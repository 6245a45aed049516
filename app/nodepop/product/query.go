package product

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Pagination bounds.
const (
	DefaultLimit = 6
	MaxLimit     = 20
)

// RawQuery holds the listing parameters exactly as received. It is echoed
// back to the filter form.
type RawQuery struct {
	Tags     string `query:"tags"`
	Name     string `query:"name"`
	PriceMin string `query:"priceMin"`
	PriceMax string `query:"priceMax"`
	Skip     string `query:"skip"`
	Limit    string `query:"limit"`
}

// Query is a normalized listing request scoped to one owner.
type Query struct {
	Owner    string
	Tags     []string
	Name     string
	PriceMin *float64
	PriceMax *float64
	Skip     int
	Limit    int
	Raw      RawQuery
}

// BuildQuery normalizes raw into a Query for owner. It never fails: values
// that do not parse are dropped and pagination falls back to defaults.
func BuildQuery(owner string, raw RawQuery) Query {
	q := Query{
		Owner:    owner,
		Tags:     ParseTags(raw.Tags),
		Name:     strings.TrimSpace(raw.Name),
		PriceMin: parsePrice(raw.PriceMin),
		PriceMax: parsePrice(raw.PriceMax),
		Limit:    DefaultLimit,
		Raw:      raw,
	}

	if n, err := strconv.Atoi(strings.TrimSpace(raw.Skip)); err == nil && n > 0 {
		q.Skip = n
	}
	if n, err := strconv.Atoi(strings.TrimSpace(raw.Limit)); err == nil && n > 0 {
		q.Limit = min(n, MaxLimit)
	}

	return q
}

func parsePrice(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// Filter renders the query as a MongoDB filter. Pagination is not part of it.
func (q Query) Filter() bson.D {
	filter := bson.D{{Key: "owner", Value: q.Owner}}

	if len(q.Tags) > 0 {
		filter = append(filter, bson.E{Key: "tags", Value: bson.D{{Key: "$in", Value: q.Tags}}})
	}
	if q.Name != "" {
		filter = append(filter, bson.E{Key: "name", Value: bson.Regex{Pattern: "^" + regexp.QuoteMeta(q.Name), Options: "i"}})
	}

	var price bson.D
	if q.PriceMin != nil {
		price = append(price, bson.E{Key: "$gte", Value: *q.PriceMin})
	}
	if q.PriceMax != nil {
		price = append(price, bson.E{Key: "$lte", Value: *q.PriceMax})
	}
	if len(price) > 0 {
		filter = append(filter, bson.E{Key: "price", Value: price})
	}

	return filter
}

// FindOptions sorts newest first and applies skip and limit.
func (q Query) FindOptions() *options.FindOptionsBuilder {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(q.Limit))
	if q.Skip > 0 {
		opts.SetSkip(int64(q.Skip))
	}
	return opts
}

// Matches evaluates the filter against p in memory, with the same semantics
// as Filter.
func (q Query) Matches(p Product) bool {
	if p.Owner != q.Owner {
		return false
	}
	if len(q.Tags) > 0 && !anyTag(p.Tags, q.Tags) {
		return false
	}
	if q.Name != "" && !strings.HasPrefix(strings.ToLower(p.Name), strings.ToLower(q.Name)) {
		return false
	}
	if q.PriceMin != nil && p.Price < *q.PriceMin {
		return false
	}
	if q.PriceMax != nil && p.Price > *q.PriceMax {
		return false
	}
	return true
}

func anyTag(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}
