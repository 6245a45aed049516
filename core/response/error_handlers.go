package response

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/nodepop/core/handler"
)

// statusCode is an interface that errors can implement
// to provide a custom HTTP status code.
type statusCode interface {
	StatusCode() int
}

// ToHTTPError converts any error to an HTTPError.
// An HTTPError in the chain is returned as is. Otherwise the status comes from
// the first error in the chain implementing StatusCode() int, defaulting to 500,
// and the original error is attached as the cause.
func ToHTTPError(err error) HTTPError {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	status := http.StatusInternalServerError
	var sc statusCode
	if errors.As(err, &sc) {
		status = sc.StatusCode()
	}

	base, ok := httpErrorsByStatus[status]
	if !ok {
		base = HTTPError{Status: status, Code: "error", Message: http.StatusText(status)}
	}

	return base.WithError(err)
}

// ErrorHandler is a plain text error handler.
func ErrorHandler[C handler.Context](ctx C, err error) {
	httpErr := ToHTTPError(err)
	Render(ctx, StringWithStatus(httpErr.Error(), httpErr.Status))
}

// JSONErrorHandler returns errors as JSON responses.
// Validation errors keep their own envelope.
func JSONErrorHandler[C handler.Context](ctx C, err error) {
	var verr ValidationError
	if errors.As(err, &verr) {
		Render(ctx, JSONWithStatus(verr, verr.StatusCode()))
		return
	}
	httpErr := ToHTTPError(err)
	Render(ctx, JSONWithStatus(httpErr, httpErr.Status))
}
