// Package nodepop is the classifieds web application: login, a per-user
// product listing with filters and pagination, product creation and
// ownership-checked deletion.
//
//	app, err := nodepop.NewApp(ctx)
//	if err != nil {
//		return err
//	}
//	defer app.Close(context.Background())
//	return app.Run(ctx)
package nodepop

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/dmitrymomot/nodepop/app/nodepop/product"
	"github.com/dmitrymomot/nodepop/app/nodepop/user"
	"github.com/dmitrymomot/nodepop/core/config"
	"github.com/dmitrymomot/nodepop/core/cookie"
	"github.com/dmitrymomot/nodepop/core/health"
	"github.com/dmitrymomot/nodepop/core/logger"
	"github.com/dmitrymomot/nodepop/core/router"
	"github.com/dmitrymomot/nodepop/core/server"
	"github.com/dmitrymomot/nodepop/core/session"
	"github.com/dmitrymomot/nodepop/core/sessiontransport"
	"github.com/dmitrymomot/nodepop/integration/database/mongo"
	"github.com/dmitrymomot/nodepop/integration/database/redis"
)

type App struct {
	config     Config
	configured bool

	logger    *slog.Logger
	router    router.Router[*Context]
	server    *server.Server
	cookie    *cookie.Manager
	sessions  *session.Manager[SessionData]
	transport *sessiontransport.Cookie[SessionData]
	views     *views
	validate  *validator.Validate

	sessionStore session.Store[SessionData]
	userRepo     user.Repository
	productRepo  product.Repository
	users        *user.Service
	products     *product.Service

	checks  []health.Check
	closers []func(context.Context) error
}

type AppOption func(*App) error

// NewApp loads the configuration (unless WithConfig is given), connects to
// the backing stores that were not injected and registers the routes.
func NewApp(ctx context.Context, opts ...AppOption) (*App, error) {
	app := &App{}
	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	if !app.configured {
		if err := config.Load(&app.config); err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
	}
	if err := app.config.Validate(); err != nil {
		return nil, err
	}

	if app.logger == nil {
		app.logger = newLogger(app.config)
	}

	if err := app.init(ctx); err != nil {
		return nil, errors.Join(err, app.Close(context.WithoutCancel(ctx)))
	}
	return app, nil
}

func newLogger(cfg Config) *slog.Logger {
	preset := logger.WithProduction(cfg.AppName)
	if cfg.IsDevelopment() {
		preset = logger.WithDevelopment(cfg.AppName)
	}
	return logger.New(preset, logger.WithLevel(logger.ParseLevel(cfg.LogLevel)))
}

func (a *App) init(ctx context.Context) error {
	if err := a.connect(ctx); err != nil {
		return err
	}

	cm, err := cookie.NewFromConfig(a.config.Cookie)
	if err != nil {
		return fmt.Errorf("cookie manager: %w", err)
	}
	a.cookie = cm

	a.sessions = session.NewManager(a.sessionStore, session.WithConfig(a.config.Session))
	a.transport = sessiontransport.NewCookieFromConfig(a.config.Transport, a.sessions, a.cookie)

	a.users = user.NewService(a.userRepo)
	a.products = product.NewService(a.productRepo)

	if a.views, err = newViews(); err != nil {
		return err
	}
	a.validate = newValidator()

	a.router = router.New[*Context](
		router.WithContextFactory[*Context](newContext),
		router.WithErrorHandler[*Context](a.errorHandler),
		router.WithLogger[*Context](a.logger),
	)
	a.routes()

	srv, err := server.NewFromConfig(a.config.Server, server.WithLogger(a.logger))
	if err != nil {
		return err
	}
	a.server = srv

	return nil
}

// connect opens MongoDB when any repository or the mongo session store is
// still missing, and Redis when it backs sessions.
func (a *App) connect(ctx context.Context) error {
	needMongo := a.userRepo == nil || a.productRepo == nil ||
		(a.sessionStore == nil && a.config.SessionStore == SessionStoreMongo)

	if needMongo {
		db, err := mongo.NewWithDatabase(ctx, a.config.Mongo)
		if err != nil {
			return err
		}
		a.closers = append(a.closers, db.Client().Disconnect)
		a.checks = append(a.checks, health.Check{Name: "mongo", Fn: mongo.Healthcheck(db.Client())})
		a.logger.InfoContext(ctx, "connected to mongo", logger.Component("mongo"), slog.String("database", db.Name()))

		if a.userRepo == nil {
			repo := user.NewMongoRepository(db)
			if err := repo.EnsureIndexes(ctx); err != nil {
				return err
			}
			a.userRepo = repo
		}
		if a.productRepo == nil {
			repo := product.NewMongoRepository(db)
			if err := repo.EnsureIndexes(ctx); err != nil {
				return err
			}
			a.productRepo = repo
		}
		if a.sessionStore == nil && a.config.SessionStore == SessionStoreMongo {
			store := mongo.NewSessionStore[SessionData](db)
			if err := store.EnsureIndexes(ctx); err != nil {
				return err
			}
			a.sessionStore = store
		}
	}

	if a.sessionStore == nil && a.config.SessionStore == SessionStoreRedis {
		client, err := redis.Connect(ctx, a.config.Redis)
		if err != nil {
			return err
		}
		a.closers = append(a.closers, func(context.Context) error { return client.Close() })
		a.checks = append(a.checks, health.Check{Name: "redis", Fn: redis.Healthcheck(client)})
		a.sessionStore = redis.NewSessionStore[SessionData](client)
		a.logger.InfoContext(ctx, "connected to redis", logger.Component("redis"))
	}

	return nil
}

// Handler returns the root HTTP handler.
func (a *App) Handler() http.Handler {
	return a.router
}

// Run serves HTTP until ctx is canceled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	a.logger.InfoContext(ctx, "server starting",
		logger.Component("server"),
		slog.String("addr", a.config.Server.Addr),
		slog.String("env", a.config.Environment()),
	)
	return a.server.Run(ctx, a.router)
}

// Close releases the connections opened by NewApp, newest first.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// WithConfig skips loading the configuration from the environment.
func WithConfig(cfg Config) AppOption {
	return func(app *App) error {
		app.config = cfg
		app.configured = true
		return nil
	}
}

func WithLogger(logger *slog.Logger) AppOption {
	return func(app *App) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		app.logger = logger
		return nil
	}
}

func WithSessionStore(store session.Store[SessionData]) AppOption {
	return func(app *App) error {
		if store == nil {
			return errors.New("session store cannot be nil")
		}
		app.sessionStore = store
		return nil
	}
}

func WithUserRepository(repo user.Repository) AppOption {
	return func(app *App) error {
		if repo == nil {
			return errors.New("user repository cannot be nil")
		}
		app.userRepo = repo
		return nil
	}
}

func WithProductRepository(repo product.Repository) AppOption {
	return func(app *App) error {
		if repo == nil {
			return errors.New("product repository cannot be nil")
		}
		app.productRepo = repo
		return nil
	}
}

// WithHealthCheck adds a readiness probe.
func WithHealthCheck(name string, fn func(context.Context) error) AppOption {
	return func(app *App) error {
		if fn == nil {
			return errors.New("health check cannot be nil")
		}
		app.checks = append(app.checks, health.Check{Name: name, Fn: fn})
		return nil
	}
}

func (a *App) Logger() *slog.Logger {
	return a.logger
}
