// Package config loads environment variables into typed structs with
// caarlos0/env. A .env file in the working directory is read once on first
// use, and every configuration type is parsed once and cached.
//
//	var cfg nodepop.Config
//	config.MustLoad(&cfg)
package config

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	dotenvOnce sync.Once
	cache      sync.Map // reflect.Type -> value of that type
)

// Load fills cfg from the environment. Later calls with the same type return
// the cached value.
func Load[T any](cfg *T) error {
	dotenvOnce.Do(func() {
		// a missing .env file is normal outside development
		_ = godotenv.Load()
	})

	key := reflect.TypeFor[T]()
	if cached, ok := cache.Load(key); ok {
		*cfg = cached.(T)
		return nil
	}

	var loaded T
	if err := env.Parse(&loaded); err != nil {
		return fmt.Errorf("config: parse %s: %w", key, err)
	}

	actual, _ := cache.LoadOrStore(key, loaded)
	*cfg = actual.(T)
	return nil
}

// MustLoad is Load that panics on error. Use it during startup.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}

// Parse fills cfg from the given variables only, without caching or .env
// loading.
func Parse[T any](cfg *T, environ map[string]string) error {
	var parsed T
	if err := env.ParseWithOptions(&parsed, env.Options{Environment: environ}); err != nil {
		return fmt.Errorf("config: parse %s: %w", reflect.TypeFor[T](), err)
	}
	*cfg = parsed
	return nil
}

// Reset clears the cache. Tests use it between scenarios.
func Reset() {
	cache.Clear()
}
