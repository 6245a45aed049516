// Package binder maps HTTP request data onto structs.
//
// Form and Query read `form`/`query` tags (lowercased field name by default)
// into string, bool, numeric, pointer and slice fields. JSON decodes the body
// with encoding/json. Every binder runs sanitizer.SanitizeStruct afterwards,
// so `sanitize` tags apply uniformly.
package binder

import (
	"mime"
	"net/http"
	"strings"

	"github.com/dmitrymomot/nodepop/core/sanitizer"
)

// Binder binds request data to v, which must be a pointer to struct.
type Binder func(r *http.Request, v any) error

// Body selects JSON or Form from the Content-Type header.
func Body() Binder {
	form, js := Form(), JSON()
	return func(r *http.Request, v any) error {
		if mediaType(r) == "application/json" {
			return js(r, v)
		}
		return form(r, v)
	}
}

func mediaType(r *http.Request) string {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(strings.Split(ct, ";")[0]))
	}
	return mt
}

func sanitize(v any, bindErr error) error {
	if err := sanitizer.SanitizeStruct(v); err != nil {
		return wrap(bindErr, err)
	}
	return nil
}
