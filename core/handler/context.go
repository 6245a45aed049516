package handler

import (
	"context"
	"net/http"
)

// Context defines the contract for request contexts in the framework.
// Handlers, middlewares and error handlers are generic over it so an
// application can attach its own helpers to the request context.
type Context interface {
	context.Context
	Request() *http.Request
	ResponseWriter() http.ResponseWriter
	// Param returns the route parameter for key, or "" if the route has none.
	Param(key string) string
	// SetValue stores val in the request context under key.
	SetValue(key, val any)
}
