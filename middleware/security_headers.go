package middleware

import (
	"github.com/dmitrymomot/nodepop/core/handler"
)

// SecurityHeadersConfig lists the security headers set on every response.
// Empty values are not sent.
type SecurityHeadersConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx handler.Context) bool

	ContentTypeOptions      string
	FrameOptions            string
	ReferrerPolicy          string
	ContentSecurityPolicy   string
	StrictTransportSecurity string
	CrossOriginOpenerPolicy string

	// IsDevelopment suppresses HSTS.
	IsDevelopment bool
}

// DefaultSecurityHeaders suits a server-rendered app that serves its own
// scripts and styles.
var DefaultSecurityHeaders = SecurityHeadersConfig{
	ContentTypeOptions:      "nosniff",
	FrameOptions:            "DENY",
	ReferrerPolicy:          "strict-origin-when-cross-origin",
	ContentSecurityPolicy:   "default-src 'self'; img-src 'self' data:; style-src 'self'; script-src 'self'; form-action 'self'; frame-ancestors 'none'",
	StrictTransportSecurity: "max-age=31536000; includeSubDomains",
	CrossOriginOpenerPolicy: "same-origin",
}

// SecurityHeaders applies DefaultSecurityHeaders.
func SecurityHeaders[C handler.Context]() handler.Middleware[C] {
	return SecurityHeadersWithConfig[C](DefaultSecurityHeaders)
}

// SecurityHeadersWithConfig sets the configured headers before the handler runs.
func SecurityHeadersWithConfig[C handler.Context](cfg SecurityHeadersConfig) handler.Middleware[C] {
	headers := map[string]string{
		"X-Content-Type-Options":     cfg.ContentTypeOptions,
		"X-Frame-Options":            cfg.FrameOptions,
		"Referrer-Policy":            cfg.ReferrerPolicy,
		"Content-Security-Policy":    cfg.ContentSecurityPolicy,
		"Cross-Origin-Opener-Policy": cfg.CrossOriginOpenerPolicy,
	}
	if !cfg.IsDevelopment {
		headers["Strict-Transport-Security"] = cfg.StrictTransportSecurity
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			h := ctx.ResponseWriter().Header()
			for k, v := range headers {
				if v != "" {
					h.Set(k, v)
				}
			}

			return next(ctx)
		}
	}
}
