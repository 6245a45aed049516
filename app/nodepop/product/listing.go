package product

import (
	"net/url"
	"strconv"
)

// Listing is one page of an owner's products.
type Listing struct {
	Products []Product
	Query    RawQuery
	Skip     int
	Limit    int
	Total    int64
}

// Page is 1-based.
func (l Listing) Page() int {
	if l.Limit <= 0 {
		return 1
	}
	return l.Skip/l.Limit + 1
}

func (l Listing) Pages() int {
	if l.Limit <= 0 || l.Total == 0 {
		return 1
	}
	return int((l.Total + int64(l.Limit) - 1) / int64(l.Limit))
}

func (l Listing) HasPrev() bool { return l.Skip > 0 }
func (l Listing) HasNext() bool { return int64(l.Skip+l.Limit) < l.Total }

func (l Listing) PrevSkip() int { return max(l.Skip-l.Limit, 0) }
func (l Listing) NextSkip() int { return l.Skip + l.Limit }

// PrevURL and NextURL link to the neighbouring pages keeping the filters.
func (l Listing) PrevURL() string { return l.pageURL(l.PrevSkip()) }
func (l Listing) NextURL() string { return l.pageURL(l.NextSkip()) }

func (l Listing) pageURL(skip int) string {
	v := url.Values{}
	set := func(key, val string) {
		if val != "" {
			v.Set(key, val)
		}
	}
	set("tags", l.Query.Tags)
	set("name", l.Query.Name)
	set("priceMin", l.Query.PriceMin)
	set("priceMax", l.Query.PriceMax)
	set("limit", l.Query.Limit)
	if skip > 0 {
		v.Set("skip", strconv.Itoa(skip))
	}
	if len(v) == 0 {
		return "/"
	}
	return "/?" + v.Encode()
}
