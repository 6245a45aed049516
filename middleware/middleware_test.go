package middleware_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/nodepop/core/cookie"
	"github.com/dmitrymomot/nodepop/core/handler"
	"github.com/dmitrymomot/nodepop/core/logger"
	"github.com/dmitrymomot/nodepop/core/response"
	"github.com/dmitrymomot/nodepop/core/router"
	"github.com/dmitrymomot/nodepop/core/session"
	"github.com/dmitrymomot/nodepop/core/sessiontransport"
	"github.com/dmitrymomot/nodepop/middleware"
)

type ctx = *router.Context

func TestRequestID(t *testing.T) {
	t.Parallel()

	t.Run("generates id", func(t *testing.T) {
		t.Parallel()

		r := router.New[ctx](router.WithMiddleware(middleware.RequestID[ctx]()))
		var seen string
		r.Get("/", func(c ctx) handler.Response {
			seen, _ = middleware.GetRequestID(c)
			return response.String("ok")
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Len(t, seen, 36)
		assert.Equal(t, seen, w.Header().Get("X-Request-ID"))
	})

	t.Run("keeps existing id when configured", func(t *testing.T) {
		t.Parallel()

		r := router.New[ctx](router.WithMiddleware(middleware.RequestIDWithConfig[ctx](middleware.RequestIDConfig{UseExisting: true})))
		r.Get("/", func(c ctx) handler.Response {
			return response.String(middleware.RequestIDFromRequest(c.Request()))
		})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "abc-123")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, "abc-123", w.Body.String())
		assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
	})
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		var rec map[string]any
		require.NoError(t, json.Unmarshal(line, &rec))
		out = append(out, rec)
	}
	return out
}

func TestLogging(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithLevel(-4))

	r := router.New[ctx](router.WithMiddleware(
		middleware.RequestID[ctx](),
		middleware.Logging[ctx](log),
	))
	r.Get("/ok", func(ctx) handler.Response { return response.String("ok") })
	r.Get("/missing", func(ctx) handler.Response { return response.Error(response.ErrNotFound) })
	r.Get("/boom", func(ctx) handler.Response { return response.Error(errors.New("boom")) })

	for _, path := range []string{"/ok", "/missing", "/boom"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	var completed []map[string]any
	for _, rec := range decodeLines(t, &buf) {
		if rec["msg"] == "HTTP request completed" {
			completed = append(completed, rec)
		}
	}
	require.Len(t, completed, 3)

	assert.Equal(t, "INFO", completed[0]["level"])
	assert.Equal(t, float64(200), completed[0]["status_code"])
	assert.NotEmpty(t, completed[0]["request_id"])

	assert.Equal(t, "WARN", completed[1]["level"])
	assert.Equal(t, float64(404), completed[1]["status_code"])

	assert.Equal(t, "ERROR", completed[2]["level"])
	assert.Equal(t, float64(500), completed[2]["status_code"])
	assert.Equal(t, "boom", completed[2]["error"])
}

func TestBodyLimit(t *testing.T) {
	t.Parallel()

	r := router.New[ctx](router.WithMiddleware(middleware.BodyLimit[ctx](8)))
	r.Post("/", func(c ctx) handler.Response {
		b, err := io.ReadAll(c.Request().Body)
		if err != nil {
			return response.Error(response.ErrPayloadTooLarge.WithError(err))
		}
		return response.String(string(b))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("small")))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "small", w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("much too large")))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestSecurityHeaders(t *testing.T) {
	t.Parallel()

	cfg := middleware.DefaultSecurityHeaders
	cfg.IsDevelopment = true

	r := router.New[ctx](router.WithMiddleware(middleware.SecurityHeadersWithConfig[ctx](cfg)))
	r.Get("/", func(ctx) handler.Response { return response.String("ok") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Empty(t, w.Header().Get("Strict-Transport-Security"))
}

type sessionData struct {
	UserEmail string
}

func newTransport(t *testing.T) *sessiontransport.Cookie[sessionData] {
	t.Helper()
	cm, err := cookie.New([]string{"test-secret-key-32-characters!!!"})
	require.NoError(t, err)
	mgr := session.NewManager[sessionData](session.NewMemoryStore[sessionData](), session.WithTTL(time.Hour))
	return sessiontransport.NewCookie(mgr, cm, "")
}

func TestSession(t *testing.T) {
	t.Parallel()

	transport := newTransport(t)

	r := router.New[ctx]()
	r.Use(middleware.Session[ctx, sessionData](transport))
	r.Post("/login", func(c ctx) handler.Response {
		sess := middleware.MustGetSession[sessionData](c)
		authed, err := transport.Authenticate(c, sess, "user-1", sessionData{UserEmail: "admin@example.com"})
		if err != nil {
			return response.Error(err)
		}
		middleware.SetSession(c, authed)
		return response.String("logged in")
	})

	protected := r.With(middleware.SessionWithConfig(middleware.SessionConfig[ctx, sessionData]{
		Transport:   transport,
		RequireAuth: true,
		ErrorHandler: func(c ctx, _ error) handler.Response {
			return response.Redirect("/login?redir=" + c.Request().URL.RequestURI())
		},
	}))
	protected.Get("/me", func(c ctx) handler.Response {
		sess := middleware.MustGetSession[sessionData](c)
		return response.String(sess.Data.UserEmail)
	})

	// anonymous access is redirected
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me?x=1", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login?redir=/me?x=1", w.Header().Get("Location"))

	// login sets the cookie
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(cookies[len(cookies)-1])
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin@example.com", w.Body.String())
}

func TestSession_Panics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		middleware.SessionWithConfig(middleware.SessionConfig[ctx, sessionData]{})
	})
	assert.Panics(t, func() {
		middleware.SessionWithConfig(middleware.SessionConfig[ctx, sessionData]{
			Transport:    newTransport(t),
			RequireAuth:  true,
			RequireGuest: true,
		})
	})
}
