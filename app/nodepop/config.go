package nodepop

import (
	"fmt"
	"strings"

	"github.com/dmitrymomot/nodepop/core/cookie"
	"github.com/dmitrymomot/nodepop/core/server"
	"github.com/dmitrymomot/nodepop/core/session"
	"github.com/dmitrymomot/nodepop/core/sessiontransport"
	"github.com/dmitrymomot/nodepop/integration/database/mongo"
	"github.com/dmitrymomot/nodepop/integration/database/redis"
)

// Session store backends.
const (
	SessionStoreMongo = "mongo"
	SessionStoreRedis = "redis"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Mongo     mongo.Config
	Redis     redis.Config
	Cookie    cookie.Config
	Session   session.Config
	Transport sessiontransport.CookieConfig
	Server    server.Config

	AppName      string `env:"APP_NAME" envDefault:"nodepop"`
	Env          string `env:"APP_ENV"`
	NodeEnv      string `env:"NODE_ENV"`
	LogLevel     string `env:"LOG_LEVEL" envDefault:"info"`
	SessionStore string `env:"SESSION_STORE" envDefault:"mongo"`
}

// Environment returns APP_ENV, then NODE_ENV, then "development".
func (c Config) Environment() string {
	for _, env := range []string{c.Env, c.NodeEnv} {
		if env = strings.ToLower(strings.TrimSpace(env)); env != "" {
			return env
		}
	}
	return EnvDevelopment
}

func (c Config) IsDevelopment() bool {
	return c.Environment() == EnvDevelopment
}

// Validate checks values the env tags cannot express.
func (c Config) Validate() error {
	switch c.SessionStore {
	case SessionStoreMongo, SessionStoreRedis:
	default:
		return fmt.Errorf("%w: SESSION_STORE must be %q or %q, got %q", ErrInvalidConfig, SessionStoreMongo, SessionStoreRedis, c.SessionStore)
	}
	if strings.TrimSpace(c.AppName) == "" {
		return fmt.Errorf("%w: APP_NAME is empty", ErrInvalidConfig)
	}
	return nil
}
