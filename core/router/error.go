package router

import (
	"fmt"
	"net/http"

	"github.com/dmitrymomot/nodepop/core/handler"
)

// routeError is a router failure that carries its HTTP status.
type routeError struct {
	msg    string
	status int
}

func (e routeError) Error() string   { return e.msg }
func (e routeError) StatusCode() int { return e.status }

var (
	// ErrNotFound is passed to the error handler when no route matches.
	ErrNotFound error = routeError{"not found", http.StatusNotFound}
	// ErrMethodNotAllowed is passed when the path matches but the method does not.
	ErrMethodNotAllowed error = routeError{"method not allowed", http.StatusMethodNotAllowed}
	// ErrNilResponse is passed when a handler returns a nil response.
	ErrNilResponse error = routeError{"nil response", http.StatusInternalServerError}
	// ErrNoContextFactory is raised at request time for custom contexts without a factory.
	ErrNoContextFactory = fmt.Errorf("router: no context factory provided")
)

// statusCode is an unexported interface that errors can implement
// to provide a custom HTTP status code.
type statusCode interface {
	StatusCode() int
}

// defaultErrorHandler writes a plain text error unless the response was already started.
func defaultErrorHandler[C handler.Context](ctx C, err error) {
	w := ctx.ResponseWriter()
	if ww, ok := w.(*responseWriter); ok && ww.Written() {
		return
	}

	status := http.StatusInternalServerError
	if sc, ok := err.(statusCode); ok {
		status = sc.StatusCode()
	}

	http.Error(w, err.Error(), status)
}

// PanicError is the error handed to the error handler when a handler panics.
type PanicError interface {
	error
	// Value returns the original panic value.
	Value() any
	// Stack returns the stack trace captured at the panic point.
	Stack() []byte
}

type panicError struct {
	value any
	stack []byte
}

func (e *panicError) Error() string { return fmt.Sprintf("panic: %v", e.value) }
func (e *panicError) Value() any    { return e.value }
func (e *panicError) Stack() []byte { return e.stack }

// Unwrap allows errors.Is/As to see a panicked error value.
func (e *panicError) Unwrap() error {
	if err, ok := e.value.(error); ok {
		return err
	}
	return nil
}
