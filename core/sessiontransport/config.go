package sessiontransport

import (
	"github.com/dmitrymomot/nodepop/core/cookie"
	"github.com/dmitrymomot/nodepop/core/session"
)

// DefaultCookieName is used when no cookie name is configured.
const DefaultCookieName = "nodepop-session"

// CookieConfig provides environment-based configuration for cookie-based session transport.
type CookieConfig struct {
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"nodepop-session"`
}

// DefaultCookieConfig returns a CookieConfig with default values.
func DefaultCookieConfig() CookieConfig {
	return CookieConfig{CookieName: DefaultCookieName}
}

// NewCookieFromConfig creates a cookie-based session transport from configuration.
func NewCookieFromConfig[Data any](cfg CookieConfig, mgr *session.Manager[Data], cookieMgr *cookie.Manager) *Cookie[Data] {
	return NewCookie[Data](mgr, cookieMgr, cfg.CookieName)
}
