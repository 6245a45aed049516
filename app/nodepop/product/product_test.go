package product_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/nodepop/app/nodepop/product"
)

func TestParseTags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{}},
		{" , ,", []string{}},
		{"work", []string{"work"}},
		{" work , mobile ", []string{"work", "mobile"}},
		{"work,work", []string{"work", "work"}},
		{"work,,motor,", []string{"work", "motor"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, product.ParseTags(tt.in))
		})
	}
}

func TestNormalizeTags(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"work", "mobile", "motor"}, product.NormalizeTags([]string{"work, mobile", " motor ", ""}))
	assert.Empty(t, product.NormalizeTags(nil))
}

func TestIsAllowedTag(t *testing.T) {
	t.Parallel()

	for _, tag := range []string{"work", "lifestyle", "motor", "mobile"} {
		assert.True(t, product.IsAllowedTag(tag), tag)
	}
	assert.False(t, product.IsAllowedTag("Work"))
	assert.False(t, product.IsAllowedTag("food"))
}

func TestTagList_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	var in struct {
		Tags product.TagList `json:"tags"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"tags":"work, mobile"}`), &in))
	assert.Equal(t, product.TagList{"work", "mobile"}, in.Tags)

	require.NoError(t, json.Unmarshal([]byte(`{"tags":["motor","lifestyle"]}`), &in))
	assert.Equal(t, product.TagList{"motor", "lifestyle"}, in.Tags)

	assert.Error(t, json.Unmarshal([]byte(`{"tags":42}`), &in))
}
