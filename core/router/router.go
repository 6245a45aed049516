// Package router adapts go-chi/chi to the generic handler types of this
// module. Routes register handler.HandlerFunc[C] values. The router turns
// every request into a C through a context factory, runs the returned
// handler.Response, and sends every error or panic to one ErrorHandler.
package router

import (
	"net/http"

	"github.com/dmitrymomot/nodepop/core/handler"
)

// Router is the main routing interface for handling HTTP requests.
// It supports middleware chaining, route grouping, and sub-router mounting.
type Router[C handler.Context] interface {
	http.Handler

	Get(pattern string, h handler.HandlerFunc[C])
	Post(pattern string, h handler.HandlerFunc[C])
	Put(pattern string, h handler.HandlerFunc[C])
	Delete(pattern string, h handler.HandlerFunc[C])
	Patch(pattern string, h handler.HandlerFunc[C])
	Head(pattern string, h handler.HandlerFunc[C])
	Options(pattern string, h handler.HandlerFunc[C])

	// Handle registers h for every HTTP method.
	Handle(pattern string, h handler.HandlerFunc[C])
	// Method registers h for a single HTTP method.
	Method(method, pattern string, h handler.HandlerFunc[C])

	// Use appends middlewares applied to routes registered afterwards.
	Use(middlewares ...handler.Middleware[C])
	// With returns an inline router sharing the route tree with extra middlewares.
	With(middlewares ...handler.Middleware[C]) Router[C]
	// Group creates an inline router and passes it to fn.
	Group(fn func(r Router[C])) Router[C]
	// Route creates a sub-router mounted at pattern.
	Route(pattern string, fn func(r Router[C])) Router[C]
	// Mount attaches a plain http.Handler, such as a file server, at pattern.
	Mount(pattern string, h http.Handler)

	Routes() []Route
}

// Route describes a single route in the router with its HTTP method and pattern.
type Route struct {
	Method  string
	Pattern string
}

// New creates a new router with the given options.
func New[C handler.Context](opts ...Option[C]) Router[C] {
	return newMux(opts...)
}
