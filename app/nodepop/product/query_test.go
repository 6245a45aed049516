package product_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/nodepop/app/nodepop/product"
)

const owner = "64b7f1f4a1b2c3d4e5f60718"

func ptr(f float64) *float64 { return &f }

func TestBuildQuery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  product.RawQuery
		want product.Query
	}{
		{
			name: "empty",
			raw:  product.RawQuery{},
			want: product.Query{Owner: owner, Tags: []string{}, Limit: 6},
		},
		{
			name: "tags with blanks and duplicates",
			raw:  product.RawQuery{Tags: " work, ,work,mobile "},
			want: product.Query{Owner: owner, Tags: []string{"work", "work", "mobile"}, Limit: 6},
		},
		{
			name: "whitespace name",
			raw:  product.RawQuery{Name: "   "},
			want: product.Query{Owner: owner, Tags: []string{}, Limit: 6},
		},
		{
			name: "prices",
			raw:  product.RawQuery{PriceMin: "10.5", PriceMax: "200"},
			want: product.Query{Owner: owner, Tags: []string{}, PriceMin: ptr(10.5), PriceMax: ptr(200), Limit: 6},
		},
		{
			name: "invalid prices",
			raw:  product.RawQuery{PriceMin: "abc", PriceMax: "NaN"},
			want: product.Query{Owner: owner, Tags: []string{}, Limit: 6},
		},
		{
			name: "infinite price",
			raw:  product.RawQuery{PriceMax: "+Inf"},
			want: product.Query{Owner: owner, Tags: []string{}, Limit: 6},
		},
		{
			name: "name trimmed",
			raw:  product.RawQuery{Name: " Bici "},
			want: product.Query{Owner: owner, Tags: []string{}, Name: "Bici", Limit: 6},
		},
		{
			name: "pagination",
			raw:  product.RawQuery{Skip: "12", Limit: "3"},
			want: product.Query{Owner: owner, Tags: []string{}, Skip: 12, Limit: 3},
		},
		{
			name: "limit clamped",
			raw:  product.RawQuery{Limit: "100"},
			want: product.Query{Owner: owner, Tags: []string{}, Limit: 20},
		},
		{
			name: "non-positive and invalid pagination",
			raw:  product.RawQuery{Skip: "-5", Limit: "0"},
			want: product.Query{Owner: owner, Tags: []string{}, Limit: 6},
		},
		{
			name: "garbage limit",
			raw:  product.RawQuery{Skip: "x", Limit: "ten"},
			want: product.Query{Owner: owner, Tags: []string{}, Limit: 6},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tt.want.Raw = tt.raw
			assert.Equal(t, tt.want, product.BuildQuery(owner, tt.raw))
		})
	}
}

func TestQuery_Filter(t *testing.T) {
	t.Parallel()

	t.Run("owner only", func(t *testing.T) {
		t.Parallel()
		q := product.BuildQuery(owner, product.RawQuery{})
		assert.Equal(t, bson.D{{Key: "owner", Value: owner}}, q.Filter())
	})

	t.Run("all filters", func(t *testing.T) {
		t.Parallel()
		q := product.BuildQuery(owner, product.RawQuery{
			Tags:     "work,mobile",
			Name:     " Mac ",
			PriceMin: "10",
			PriceMax: "3000",
		})
		want := bson.D{
			{Key: "owner", Value: owner},
			{Key: "tags", Value: bson.D{{Key: "$in", Value: []string{"work", "mobile"}}}},
			{Key: "name", Value: bson.Regex{Pattern: "^Mac", Options: "i"}},
			{Key: "price", Value: bson.D{{Key: "$gte", Value: 10.0}, {Key: "$lte", Value: 3000.0}}},
		}
		assert.Equal(t, want, q.Filter())
	})

	t.Run("name is quoted", func(t *testing.T) {
		t.Parallel()
		q := product.BuildQuery(owner, product.RawQuery{Name: "a.b(c"})
		assert.Equal(t, bson.E{Key: "name", Value: bson.Regex{Pattern: `^a\.b\(c`, Options: "i"}}, q.Filter()[1])
	})

	t.Run("only max price", func(t *testing.T) {
		t.Parallel()
		q := product.BuildQuery(owner, product.RawQuery{PriceMax: "50"})
		assert.Equal(t, bson.E{Key: "price", Value: bson.D{{Key: "$lte", Value: 50.0}}}, q.Filter()[1])
	})
}

func TestQuery_FindOptions(t *testing.T) {
	t.Parallel()

	apply := func(b *options.FindOptionsBuilder) options.FindOptions {
		var fo options.FindOptions
		for _, set := range b.List() {
			require.NoError(t, set(&fo))
		}
		return fo
	}

	fo := apply(product.BuildQuery(owner, product.RawQuery{Skip: "6", Limit: "3"}).FindOptions())
	require.NotNil(t, fo.Limit)
	require.NotNil(t, fo.Skip)
	assert.Equal(t, int64(3), *fo.Limit)
	assert.Equal(t, int64(6), *fo.Skip)
	assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}}, fo.Sort)

	fo = apply(product.BuildQuery(owner, product.RawQuery{}).FindOptions())
	assert.Nil(t, fo.Skip)
	assert.Equal(t, int64(product.DefaultLimit), *fo.Limit)
}

func TestQuery_Matches(t *testing.T) {
	t.Parallel()

	p := product.Product{Name: "MacBook Pro", Price: 2500, Tags: []string{"work", "lifestyle"}, Owner: owner}

	tests := []struct {
		name string
		raw  product.RawQuery
		want bool
	}{
		{"no filters", product.RawQuery{}, true},
		{"tag hit", product.RawQuery{Tags: "motor,work"}, true},
		{"tag miss", product.RawQuery{Tags: "motor"}, false},
		{"prefix any case", product.RawQuery{Name: "macb"}, true},
		{"not a prefix", product.RawQuery{Name: "Pro"}, false},
		{"inclusive bounds", product.RawQuery{PriceMin: "2500", PriceMax: "2500"}, true},
		{"below min", product.RawQuery{PriceMin: "2500.01"}, false},
		{"above max", product.RawQuery{PriceMax: "100"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, product.BuildQuery(owner, tt.raw).Matches(p))
		})
	}

	assert.False(t, product.BuildQuery("someone-else", product.RawQuery{}).Matches(p))
}
