package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/nodepop/core/cookie"
)

const (
	testSecret  = "test-secret-key-32-characters!!!"
	testSecret2 = "another-secret-key-32-chars!!!!!"
)

// replay copies Set-Cookie headers from a recorder into a new request.
func replay(t *testing.T, w *httptest.ResponseRecorder) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestNew(t *testing.T) {
	t.Parallel()

	_, err := cookie.New(nil)
	assert.ErrorIs(t, err, cookie.ErrNoSecret)

	_, err = cookie.New([]string{"", ""})
	assert.ErrorIs(t, err, cookie.ErrNoSecret)

	_, err = cookie.New([]string{"short"})
	assert.ErrorIs(t, err, cookie.ErrSecretTooShort)

	_, err = cookie.New([]string{testSecret})
	assert.NoError(t, err)
}

func TestManager_Signed(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		m, err := cookie.New([]string{testSecret})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		require.NoError(t, m.SetSigned(w, "nodepop-session", "token-123", cookie.WithMaxAge(60)))

		set := w.Result().Cookies()
		require.Len(t, set, 1)
		assert.True(t, set[0].HttpOnly)
		assert.Equal(t, http.SameSiteLaxMode, set[0].SameSite)
		assert.Equal(t, "/", set[0].Path)
		assert.Equal(t, 60, set[0].MaxAge)
		assert.NotContains(t, set[0].Value, "token-123")

		got, err := m.GetSigned(replay(t, w), "nodepop-session")
		require.NoError(t, err)
		assert.Equal(t, "token-123", got)
	})

	t.Run("tampered value", func(t *testing.T) {
		t.Parallel()

		m, err := cookie.New([]string{testSecret})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		require.NoError(t, m.SetSigned(w, "s", "token-123"))
		value := w.Result().Cookies()[0].Value
		_, sig, _ := strings.Cut(value, ".")

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "s", Value: "dG9rZW4tNDU2." + sig})

		_, err = m.GetSigned(r, "s")
		assert.ErrorIs(t, err, cookie.ErrInvalidSignature)
	})

	t.Run("malformed value", func(t *testing.T) {
		t.Parallel()

		m, err := cookie.New([]string{testSecret})
		require.NoError(t, err)

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "s", Value: "no-separator"})

		_, err = m.GetSigned(r, "s")
		assert.ErrorIs(t, err, cookie.ErrInvalidFormat)
	})

	t.Run("missing cookie", func(t *testing.T) {
		t.Parallel()

		m, err := cookie.New([]string{testSecret})
		require.NoError(t, err)

		_, err = m.GetSigned(httptest.NewRequest(http.MethodGet, "/", nil), "s")
		assert.ErrorIs(t, err, cookie.ErrCookieNotFound)
	})

	t.Run("rotated secret still verifies", func(t *testing.T) {
		t.Parallel()

		old, err := cookie.New([]string{testSecret2})
		require.NoError(t, err)
		rotated, err := cookie.New([]string{testSecret, testSecret2})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		require.NoError(t, old.SetSigned(w, "s", "v"))

		got, err := rotated.GetSigned(replay(t, w), "s")
		require.NoError(t, err)
		assert.Equal(t, "v", got)
	})
}

func TestManager_Delete(t *testing.T) {
	t.Parallel()

	m, err := cookie.New([]string{testSecret}, cookie.WithSecure(true))
	require.NoError(t, err)

	w := httptest.NewRecorder()
	m.Delete(w, "s")

	set := w.Result().Cookies()
	require.Len(t, set, 1)
	assert.Equal(t, -1, set[0].MaxAge)
	assert.True(t, set[0].Secure)
}

func TestManager_TooLarge(t *testing.T) {
	t.Parallel()

	m, err := cookie.New([]string{testSecret})
	require.NoError(t, err)

	err = m.Set(httptest.NewRecorder(), "big", strings.Repeat("x", cookie.MaxCookieSize))
	var tooLarge cookie.ErrCookieTooLarge
	assert.ErrorAs(t, err, &tooLarge)
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	m, err := cookie.NewFromConfig(cookie.Config{Secrets: " " + testSecret + " , ", Path: "/", Secure: true})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	require.NoError(t, m.Set(w, "plain", "v"))
	assert.True(t, w.Result().Cookies()[0].Secure)

	_, err = cookie.NewFromConfig(cookie.Config{})
	assert.ErrorIs(t, err, cookie.ErrNoSecret)
}
