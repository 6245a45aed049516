package middleware

import (
	"io"
	"log/slog"

	"github.com/dmitrymomot/nodepop/core/handler"
	"github.com/dmitrymomot/nodepop/core/logger"
	"github.com/dmitrymomot/nodepop/core/response"
	"github.com/dmitrymomot/nodepop/core/session"
)

type sessionKey struct{}

// SessionTransport loads and stores sessions for a request.
type SessionTransport[Data any] interface {
	Load(handler.Context) (session.Session[Data], error)
	Store(handler.Context, session.Session[Data]) error
}

// SessionConfig configures the session middleware.
type SessionConfig[C handler.Context, Data any] struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx C) bool
	// Transport implements Load and Store methods for session management
	Transport SessionTransport[Data]
	// Logger for structured logging (default: discard)
	Logger *slog.Logger
	// RequireAuth rejects anonymous sessions through ErrorHandler
	RequireAuth bool
	// RequireGuest rejects authenticated sessions through ErrorHandler
	RequireGuest bool
	// ErrorHandler builds the response for auth failures and store errors
	// (default: response.Error(err))
	ErrorHandler func(ctx C, err error) handler.Response
}

// Session creates middleware that loads the session, puts it in the context
// and stores it after the handler ran.
func Session[C handler.Context, Data any](transport SessionTransport[Data]) handler.Middleware[C] {
	return SessionWithConfig(SessionConfig[C, Data]{Transport: transport})
}

// SessionWithConfig creates a session middleware with custom configuration.
//
// A load failure other than context cancellation is logged and the request
// continues with an empty session. The session read back from the context
// after the handler is what gets stored, so handlers replace it with
// SetSession. Store failures go to ErrorHandler.
func SessionWithConfig[C handler.Context, Data any](cfg SessionConfig[C, Data]) handler.Middleware[C] {
	if cfg.Transport == nil {
		panic("session middleware: transport is required")
	}
	if cfg.RequireAuth && cfg.RequireGuest {
		panic("session middleware: RequireAuth and RequireGuest cannot both be true")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = func(_ C, err error) handler.Response {
			return response.Error(err)
		}
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			sess, err := cfg.Transport.Load(ctx)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return response.Error(ctxErr)
				}
				cfg.Logger.ErrorContext(ctx, "failed to load session", logger.Error(err))
				sess = session.Session[Data]{}
			}

			if cfg.RequireAuth && !sess.IsAuthenticated() {
				return cfg.ErrorHandler(ctx, response.ErrUnauthorized)
			}
			if cfg.RequireGuest && sess.IsAuthenticated() {
				return cfg.ErrorHandler(ctx, response.ErrForbidden)
			}

			ctx.SetValue(sessionKey{}, sess)

			resp := next(ctx)

			current, ok := GetSession[Data](ctx)
			if !ok || current.Token == "" {
				return resp
			}

			if err := cfg.Transport.Store(ctx, current); err != nil {
				cfg.Logger.ErrorContext(ctx, "failed to store session",
					logger.Error(err),
					logger.SessionID(current.ID.String()),
				)
				return cfg.ErrorHandler(ctx, err)
			}

			return resp
		}
	}
}

// GetSession retrieves session from context.
func GetSession[Data any](ctx handler.Context) (session.Session[Data], bool) {
	if ctx == nil {
		return session.Session[Data]{}, false
	}
	sess, ok := ctx.Value(sessionKey{}).(session.Session[Data])
	return sess, ok
}

// MustGetSession retrieves session from context or panics if not found.
func MustGetSession[Data any](ctx handler.Context) session.Session[Data] {
	sess, ok := GetSession[Data](ctx)
	if !ok {
		panic("session not found in context")
	}
	return sess
}

// SetSession replaces the session in context. The replacement is what the
// middleware stores after the handler returns.
func SetSession[Data any](ctx handler.Context, sess session.Session[Data]) {
	ctx.SetValue(sessionKey{}, sess)
}
