// Package health provides liveness and readiness handlers.
//
//	r.Get("/health/live", health.Liveness[*nodepop.Context])
//	r.Get("/health/ready", health.Readiness[*nodepop.Context](log,
//		health.Check{Name: "mongo", Fn: mongo.Healthcheck(client)},
//	))
package health

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/nodepop/core/handler"
	"github.com/dmitrymomot/nodepop/core/logger"
	"github.com/dmitrymomot/nodepop/core/response"
)

// Liveness always returns "ALIVE" with 200 OK. No dependency checks.
func Liveness[C handler.Context](C) handler.Response {
	return response.String("ALIVE")
}

// Check is a named dependency probe.
type Check struct {
	Name string
	Fn   func(context.Context) error
}

// CheckTimeout bounds each readiness probe.
const CheckTimeout = 2 * time.Second

// Readiness returns "READY" when every check passes and 503 naming the
// failed checks otherwise.
func Readiness[C handler.Context](log *slog.Logger, checks ...Check) handler.HandlerFunc[C] {
	return func(ctx C) handler.Response {
		var failed []string
		for _, c := range checks {
			checkCtx, cancel := context.WithTimeout(ctx, CheckTimeout)
			err := c.Fn(checkCtx)
			cancel()
			if err != nil {
				log.ErrorContext(ctx, "readiness check failed",
					logger.Component("health"),
					slog.String("check", c.Name),
					logger.Error(err),
				)
				failed = append(failed, c.Name)
			}
		}

		if len(failed) > 0 {
			return response.Error(response.ErrServiceUnavailable.WithDetails(map[string]any{"failed": failed}))
		}
		return response.String("READY")
	}
}
