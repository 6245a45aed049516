package binder

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrMissingContentType   = errors.New("missing content type")
	ErrFailedToParseJSON    = errors.New("failed to parse JSON request body")
	ErrFailedToParseForm    = errors.New("failed to parse form data")
	ErrFailedToParseQuery   = errors.New("failed to parse query parameters")
)

func wrap(sentinel, err error) error {
	return fmt.Errorf("%w: %v", sentinel, err)
}
