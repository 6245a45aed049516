package binder

import (
	"net/http"
)

// Query binds URL query parameters.
func Query() Binder {
	return func(r *http.Request, v any) error {
		if err := bindValues(v, "query", r.URL.Query()); err != nil {
			return wrap(ErrFailedToParseQuery, err)
		}
		return sanitize(v, ErrFailedToParseQuery)
	}
}
