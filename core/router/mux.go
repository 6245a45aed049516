package router

import (
	"io"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/nodepop/core/handler"
)

// mux is the private implementation of Router interface on top of chi.
// Inline routers created by With and Group share the chi tree of their parent
// and only differ in the middleware slice chained at registration time.
type mux[C handler.Context] struct {
	tree         chi.Router
	middlewares  []handler.Middleware[C]
	errorHandler handler.ErrorHandler[C]
	newContext   func(http.ResponseWriter, *http.Request, map[string]string) C
	logger       *slog.Logger
}

func newMux[C handler.Context](opts ...Option[C]) *mux[C] {
	m := &mux[C]{
		tree:         chi.NewRouter(),
		errorHandler: defaultErrorHandler[C],
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.newContext == nil {
		m.newContext = func(w http.ResponseWriter, r *http.Request, params map[string]string) C {
			var zero C
			if _, ok := any(zero).(*Context); ok {
				return any(NewContext(w, r, params)).(C)
			}
			panic(ErrNoContextFactory)
		}
	}

	m.registerFallbacks()

	return m
}

// registerFallbacks routes chi's not-found and method-not-allowed cases
// through the middleware chain and the error handler. The middleware slice
// is read per request, so middlewares added with Use still apply.
func (m *mux[C]) registerFallbacks() {
	m.tree.NotFound(func(w http.ResponseWriter, r *http.Request) {
		m.serve(handler.Chain(fail[C](ErrNotFound), m.middlewares...)).ServeHTTP(w, r)
	})
	m.tree.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		m.serve(handler.Chain(fail[C](ErrMethodNotAllowed), m.middlewares...)).ServeHTTP(w, r)
	})
}

func fail[C handler.Context](err error) handler.HandlerFunc[C] {
	return func(C) handler.Response {
		return func(http.ResponseWriter, *http.Request) error { return err }
	}
}

// ServeHTTP implements http.Handler interface.
func (m *mux[C]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	m.tree.ServeHTTP(w, r)
}

// serve adapts a generic handler to net/http. It builds the context, recovers
// panics and sends every failure to the error handler.
func (m *mux[C]) serve(h handler.HandlerFunc[C]) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := newResponseWriter(w)
		ctx := m.newContext(ww, r, urlParams(r))

		defer func() {
			if p := recover(); p != nil {
				if p == http.ErrAbortHandler {
					panic(p)
				}
				perr := &panicError{value: p, stack: debug.Stack()}
				if ww.Written() {
					m.logger.Error("panic after response written",
						"value", perr.value,
						"stack", string(perr.stack),
						"path", r.URL.Path,
						"method", r.Method,
						"status", ww.Status(),
					)
					return
				}
				m.errorHandler(ctx, perr)
			}
		}()

		resp := h(ctx)
		if resp == nil {
			m.errorHandler(ctx, ErrNilResponse)
			return
		}

		if err := resp(ww, ctx.Request()); err != nil {
			m.errorHandler(ctx, err)
		}
	})
}

func urlParams(r *http.Request) map[string]string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil || len(rctx.URLParams.Keys) == 0 {
		return nil
	}
	params := make(map[string]string, len(rctx.URLParams.Keys))
	for i, key := range rctx.URLParams.Keys {
		if i < len(rctx.URLParams.Values) {
			params[key] = rctx.URLParams.Values[i]
		}
	}
	return params
}

func (m *mux[C]) Get(pattern string, h handler.HandlerFunc[C]) {
	m.Method(http.MethodGet, pattern, h)
}

func (m *mux[C]) Post(pattern string, h handler.HandlerFunc[C]) {
	m.Method(http.MethodPost, pattern, h)
}

func (m *mux[C]) Put(pattern string, h handler.HandlerFunc[C]) {
	m.Method(http.MethodPut, pattern, h)
}

func (m *mux[C]) Delete(pattern string, h handler.HandlerFunc[C]) {
	m.Method(http.MethodDelete, pattern, h)
}

func (m *mux[C]) Patch(pattern string, h handler.HandlerFunc[C]) {
	m.Method(http.MethodPatch, pattern, h)
}

func (m *mux[C]) Head(pattern string, h handler.HandlerFunc[C]) {
	m.Method(http.MethodHead, pattern, h)
}

func (m *mux[C]) Options(pattern string, h handler.HandlerFunc[C]) {
	m.Method(http.MethodOptions, pattern, h)
}

func (m *mux[C]) Handle(pattern string, h handler.HandlerFunc[C]) {
	m.tree.Handle(pattern, m.serve(handler.Chain(h, m.middlewares...)))
}

func (m *mux[C]) Method(method, pattern string, h handler.HandlerFunc[C]) {
	m.tree.Method(method, pattern, m.serve(handler.Chain(h, m.middlewares...)))
}

func (m *mux[C]) Use(middlewares ...handler.Middleware[C]) {
	m.middlewares = append(m.middlewares, middlewares...)
}

func (m *mux[C]) With(middlewares ...handler.Middleware[C]) Router[C] {
	mws := make([]handler.Middleware[C], 0, len(m.middlewares)+len(middlewares))
	mws = append(mws, m.middlewares...)
	mws = append(mws, middlewares...)

	return &mux[C]{
		tree:         m.tree,
		middlewares:  mws,
		errorHandler: m.errorHandler,
		newContext:   m.newContext,
		logger:       m.logger,
	}
}

func (m *mux[C]) Group(fn func(r Router[C])) Router[C] {
	im := m.With()
	if fn != nil {
		fn(im)
	}
	return im
}

func (m *mux[C]) Route(pattern string, fn func(r Router[C])) Router[C] {
	sub := &mux[C]{
		tree:         chi.NewRouter(),
		middlewares:  append([]handler.Middleware[C](nil), m.middlewares...),
		errorHandler: m.errorHandler,
		newContext:   m.newContext,
		logger:       m.logger,
	}
	sub.registerFallbacks()

	if fn != nil {
		fn(sub)
	}
	m.tree.Mount(pattern, sub.tree)
	return sub
}

func (m *mux[C]) Mount(pattern string, h http.Handler) {
	m.tree.Mount(pattern, h)
}

func (m *mux[C]) Routes() []Route {
	var routes []Route
	_ = chi.Walk(m.tree, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes = append(routes, Route{Method: method, Pattern: route})
		return nil
	})
	return routes
}
