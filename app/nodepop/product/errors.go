package product

import (
	"errors"
	"net/http"
)

// Error is a product failure that carries its HTTP status.
type Error struct {
	msg    string
	status int
}

func (e Error) Error() string   { return e.msg }
func (e Error) StatusCode() int { return e.status }

var (
	ErrNotFound   error = Error{"product not found", http.StatusNotFound}
	ErrForbidden  error = Error{"you do not have permission to delete this product", http.StatusForbidden}
	ErrInvalidID  error = Error{"invalid product id", http.StatusBadRequest}
	ErrInvalidTag error = Error{"invalid product tag", http.StatusBadRequest}

	ErrMissingOwner = errors.New("product owner is required")
)
