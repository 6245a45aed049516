package mongo

import (
	"net/url"
	"strings"
	"time"
)

// DefaultDatabase is used when neither MONGODB_DATABASE nor the URL path names one.
const DefaultDatabase = "nodepop"

// Config holds MongoDB connection settings. Defaults suit a local instance and
// tolerate Atlas cold starts through the retry settings.
type Config struct {
	ConnectionURL   string        `env:"MONGODB_URL" envDefault:"mongodb://localhost:27017/nodepop"`
	Database        string        `env:"MONGODB_DATABASE"`
	ConnectTimeout  time.Duration `env:"MONGODB_CONNECT_TIMEOUT" envDefault:"10s"`
	MaxPoolSize     uint64        `env:"MONGODB_MAX_POOL_SIZE" envDefault:"100"`
	MinPoolSize     uint64        `env:"MONGODB_MIN_POOL_SIZE" envDefault:"1"`
	MaxConnIdleTime time.Duration `env:"MONGODB_MAX_CONN_IDLE_TIME" envDefault:"300s"`
	RetryWrites     bool          `env:"MONGODB_RETRY_WRITES" envDefault:"true"`
	RetryReads      bool          `env:"MONGODB_RETRY_READS" envDefault:"true"`
	RetryAttempts   int           `env:"MONGODB_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval   time.Duration `env:"MONGODB_RETRY_INTERVAL" envDefault:"5s"`
}

// DefaultConfig returns the same values as the env defaults.
func DefaultConfig() Config {
	return Config{
		ConnectionURL:   "mongodb://localhost:27017/nodepop",
		ConnectTimeout:  10 * time.Second,
		MaxPoolSize:     100,
		MinPoolSize:     1,
		MaxConnIdleTime: 300 * time.Second,
		RetryWrites:     true,
		RetryReads:      true,
		RetryAttempts:   3,
		RetryInterval:   5 * time.Second,
	}
}

// DatabaseName resolves the database: the explicit setting, then the URL
// path, then DefaultDatabase.
func (c Config) DatabaseName() string {
	if name := strings.TrimSpace(c.Database); name != "" {
		return name
	}
	if u, err := url.Parse(c.ConnectionURL); err == nil {
		if name := strings.Trim(u.Path, "/"); name != "" {
			return name
		}
	}
	return DefaultDatabase
}
