// Package product holds the product catalog of a single owner: the listing
// query builder, the listing orchestrator, creation and the ownership-gated
// deletion.
package product

import (
	"encoding/json"
	"slices"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Product is a classified ad owned by one user.
type Product struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string        `bson:"name" json:"name"`
	Price     float64       `bson:"price" json:"price"`
	Tags      []string      `bson:"tags" json:"tags"`
	Owner     string        `bson:"owner" json:"owner"`
	CreatedAt time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// Allowed product tags.
const (
	TagWork      = "work"
	TagLifestyle = "lifestyle"
	TagMotor     = "motor"
	TagMobile    = "mobile"
)

// AllowedTags lists the tags a product may carry, in display order.
var AllowedTags = []string{TagWork, TagLifestyle, TagMotor, TagMobile}

// IsAllowedTag reports whether tag is one of AllowedTags.
func IsAllowedTag(tag string) bool {
	return slices.Contains(AllowedTags, tag)
}

// ParseTags splits a comma separated list, trims every token and drops empty
// ones. Duplicates are kept.
func ParseTags(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// NormalizeTags runs ParseTags over every element, so repeated form values
// and comma separated strings give the same result.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		out = append(out, ParseTags(t)...)
	}
	return out
}

// TagList decodes from a JSON array of strings or from one comma separated
// string.
type TagList []string

func (l *TagList) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*l = TagList(ParseTags(s))
		return nil
	}
	var list []string
	if err := json.Unmarshal(b, &list); err != nil {
		return err
	}
	*l = TagList(list)
	return nil
}
