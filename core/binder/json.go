package binder

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// DefaultMaxJSONSize bounds the JSON body.
const DefaultMaxJSONSize = 1 << 20

// JSON decodes an application/json body. Trailing data after the first value
// is rejected.
func JSON() Binder {
	return func(r *http.Request, v any) error {
		switch mt := mediaType(r); mt {
		case "application/json":
		case "":
			return fmt.Errorf("%w: expected application/json", ErrMissingContentType)
		default:
			return fmt.Errorf("%w: got %s, expected application/json", ErrUnsupportedMediaType, mt)
		}

		dec := json.NewDecoder(io.LimitReader(r.Body, DefaultMaxJSONSize))
		if err := dec.Decode(v); err != nil {
			if errors.Is(err, io.EOF) {
				return fmt.Errorf("%w: empty body", ErrFailedToParseJSON)
			}
			return wrap(ErrFailedToParseJSON, err)
		}
		if dec.More() {
			return fmt.Errorf("%w: unexpected data after JSON value", ErrFailedToParseJSON)
		}
		return sanitize(v, ErrFailedToParseJSON)
	}
}
