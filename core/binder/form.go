package binder

import (
	"fmt"
	"net/http"
)

// DefaultMaxMemory bounds in-memory multipart parsing.
const DefaultMaxMemory = 10 << 20

// Form binds application/x-www-form-urlencoded and multipart/form-data bodies.
// Only the body is read; query parameters are ignored.
func Form() Binder {
	return func(r *http.Request, v any) error {
		switch mt := mediaType(r); mt {
		case "":
			return fmt.Errorf("%w: expected application/x-www-form-urlencoded or multipart/form-data", ErrMissingContentType)
		case "application/x-www-form-urlencoded":
			if err := r.ParseForm(); err != nil {
				return wrap(ErrFailedToParseForm, err)
			}
			if err := bindValues(v, "form", r.PostForm); err != nil {
				return wrap(ErrFailedToParseForm, err)
			}
		case "multipart/form-data":
			if err := r.ParseMultipartForm(DefaultMaxMemory); err != nil {
				return wrap(ErrFailedToParseForm, err)
			}
			if err := bindValues(v, "form", r.MultipartForm.Value); err != nil {
				return wrap(ErrFailedToParseForm, err)
			}
		default:
			return fmt.Errorf("%w: got %s", ErrUnsupportedMediaType, mt)
		}
		return sanitize(v, ErrFailedToParseForm)
	}
}
