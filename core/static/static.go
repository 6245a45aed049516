// Package static serves files from an fs.FS, typically an embed.FS compiled
// into the binary. Directories are never listed. Missing files are returned
// as response.ErrNotFound so the router error handler renders them.
//
//	//go:embed static
//	var staticFS embed.FS
//
//	r.Get("/assets/*", static.FS[*Context](staticFS,
//		static.WithSubFS("static"),
//		static.WithStripPrefix("/assets/"),
//	))
package static

import (
	"fmt"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/dmitrymomot/nodepop/core/handler"
	"github.com/dmitrymomot/nodepop/core/response"
)

type config struct {
	fs          fs.FS
	stripPrefix string
	subPath     string
	maxAge      time.Duration
}

// Option configures FS.
type Option func(*config)

// WithStripPrefix removes prefix from the URL path before the file lookup,
// so "/assets/css/app.css" with prefix "/assets/" serves "css/app.css".
func WithStripPrefix(prefix string) Option {
	return func(c *config) {
		c.stripPrefix = prefix
	}
}

// WithSubFS serves only the given directory of the filesystem.
// The path uses forward slashes regardless of OS.
func WithSubFS(path string) Option {
	return func(c *config) {
		c.subPath = path
	}
}

// WithMaxAge sets a public Cache-Control max-age on served files.
func WithMaxAge(d time.Duration) Option {
	return func(c *config) {
		c.maxAge = d
	}
}

// FS creates a handler serving files from fsys. Range requests and
// conditional GETs are handled by http.ServeFileFS.
//
// Panics at startup if the sub-path is invalid or the root cannot be opened.
func FS[C handler.Context](fsys fs.FS, opts ...Option) handler.HandlerFunc[C] {
	cfg := &config{fs: fsys}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.subPath != "" {
		sub, err := fs.Sub(fsys, cfg.subPath)
		if err != nil {
			panic("static.FS: invalid sub-path '" + cfg.subPath + "': " + err.Error())
		}
		cfg.fs = sub
	}
	if _, err := fs.Stat(cfg.fs, "."); err != nil {
		panic("static.FS: filesystem is not accessible: " + err.Error())
	}

	var cacheControl string
	if cfg.maxAge > 0 {
		cacheControl = fmt.Sprintf("public, max-age=%d", int(cfg.maxAge.Seconds()))
	}

	return func(ctx C) handler.Response {
		return func(w http.ResponseWriter, r *http.Request) error {
			name, ok := resolve(r.URL.Path, cfg.stripPrefix)
			if !ok {
				return response.ErrNotFound
			}

			info, err := fs.Stat(cfg.fs, name)
			if err != nil || info.IsDir() {
				return response.ErrNotFound
			}

			if cacheControl != "" {
				w.Header().Set("Cache-Control", cacheControl)
			}
			http.ServeFileFS(w, r, cfg.fs, name)
			return nil
		}
	}
}

// resolve maps a request path to a cleaned, rooted-relative file name.
func resolve(urlPath, prefix string) (string, bool) {
	if prefix != "" {
		trimmed, found := strings.CutPrefix(urlPath, prefix)
		if !found {
			return "", false
		}
		urlPath = trimmed
	}

	name := strings.TrimPrefix(path.Clean("/"+urlPath), "/")
	if name == "" || !fs.ValidPath(name) {
		return "", false
	}
	return name, true
}
