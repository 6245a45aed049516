package nodepop

import (
	"time"

	"github.com/dmitrymomot/nodepop/core/handler"
	"github.com/dmitrymomot/nodepop/core/health"
	"github.com/dmitrymomot/nodepop/core/response"
	"github.com/dmitrymomot/nodepop/core/static"
	"github.com/dmitrymomot/nodepop/middleware"
)

func (a *App) routes() {
	r := a.router
	r.Use(
		middleware.RequestID[*Context](),
		middleware.LoggingWithConfig[*Context](middleware.LoggingConfig{
			Logger:   a.logger,
			LogStart: true,
		}),
		middleware.SecurityHeadersWithConfig[*Context](devHeaders(a.config.IsDevelopment())),
	)

	r.Get("/health/live", health.Liveness[*Context])
	r.Get("/health/ready", health.Readiness[*Context](a.logger, a.checks...))
	r.Get("/assets/*", static.FS[*Context](staticFS,
		static.WithSubFS("static"),
		static.WithStripPrefix("/assets/"),
		static.WithMaxAge(time.Hour),
	))

	web := r.With(
		middleware.BodyLimit[*Context](middleware.MB),
		middleware.SessionWithConfig[*Context, SessionData](middleware.SessionConfig[*Context, SessionData]{
			Transport: a.transport,
			Logger:    a.logger,
		}),
	)
	web.Get("/login", a.showLogin)
	web.Post("/login", a.login)
	web.Get("/logout", a.logout)

	auth := r.With(
		middleware.BodyLimit[*Context](middleware.MB),
		middleware.SessionWithConfig[*Context, SessionData](middleware.SessionConfig[*Context, SessionData]{
			Transport:    a.transport,
			Logger:       a.logger,
			RequireAuth:  true,
			ErrorHandler: a.requireLogin,
		}),
	)
	auth.Get("/", a.listProducts)
	auth.Get("/products/new", a.showNewProduct)
	auth.Post("/products", a.createProduct)
	auth.Post("/products/delete/{id}", a.deleteProduct)

	if a.config.IsDevelopment() {
		r.Get("/test-error", a.testError)
	}
}

func devHeaders(dev bool) middleware.SecurityHeadersConfig {
	cfg := middleware.DefaultSecurityHeaders
	cfg.IsDevelopment = dev
	return cfg
}

// GET /test-error, development only.
func (a *App) testError(*Context) handler.Response {
	return response.Error(ErrTestError)
}
