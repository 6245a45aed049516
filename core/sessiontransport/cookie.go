// Package sessiontransport moves session tokens between HTTP clients and a
// session.Manager.
//
// Cookie keeps Session.Token in a signed cookie. Load always yields a usable
// session: a missing, forged or expired cookie produces a new anonymous one.
package sessiontransport

import (
	"errors"
	"net/http"
	"time"

	"github.com/dmitrymomot/nodepop/core/cookie"
	"github.com/dmitrymomot/nodepop/core/handler"
	"github.com/dmitrymomot/nodepop/core/session"
	"github.com/dmitrymomot/nodepop/pkg/clientip"
)

// Cookie provides HTTP cookie-based session transport.
type Cookie[Data any] struct {
	manager   *session.Manager[Data]
	cookieMgr *cookie.Manager
	name      string
}

// NewCookie creates a new cookie-based session transport.
func NewCookie[Data any](mgr *session.Manager[Data], cookieMgr *cookie.Manager, name string) *Cookie[Data] {
	if name == "" {
		name = DefaultCookieName
	}
	return &Cookie[Data]{
		manager:   mgr,
		cookieMgr: cookieMgr,
		name:      name,
	}
}

// Name returns the cookie name.
func (c *Cookie[Data]) Name() string {
	return c.name
}

// Load returns the session referenced by the request cookie, or a new
// anonymous session when there is none. Only context cancellation and
// session creation failures are returned as errors.
func (c *Cookie[Data]) Load(ctx handler.Context) (session.Session[Data], error) {
	token, err := c.cookieMgr.GetSigned(ctx.Request(), c.name)
	if err != nil {
		return c.manager.New(ctx, newParams(ctx.Request()))
	}

	sess, err := c.manager.GetByToken(ctx, token)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return session.Session[Data]{}, ctxErr
		}
		return c.manager.New(ctx, newParams(ctx.Request()))
	}

	return sess, nil
}

// Store persists sess and refreshes the cookie so its Max-Age follows the
// session expiry. A session marked deleted clears the cookie.
func (c *Cookie[Data]) Store(ctx handler.Context, sess session.Session[Data]) error {
	if err := c.manager.Store(ctx, &sess); err != nil {
		if errors.Is(err, session.ErrNotAuthenticated) {
			c.cookieMgr.Delete(ctx.ResponseWriter(), c.name)
			return nil
		}
		return err
	}
	return c.setCookie(ctx, sess)
}

// Authenticate binds sess to userID, stores it with a rotated token and
// writes the new cookie.
func (c *Cookie[Data]) Authenticate(ctx handler.Context, sess session.Session[Data], userID string, data Data) (session.Session[Data], error) {
	authed, err := c.manager.Authenticate(ctx, sess, userID, data)
	if err != nil {
		return session.Session[Data]{}, err
	}
	if err := c.setCookie(ctx, authed); err != nil {
		return session.Session[Data]{}, err
	}
	return authed, nil
}

// Logout deletes sess and returns a fresh anonymous session. The new session
// is persisted by the next Store call.
func (c *Cookie[Data]) Logout(ctx handler.Context, sess session.Session[Data]) (session.Session[Data], error) {
	return c.manager.Logout(ctx, sess, newParams(ctx.Request()))
}

// Delete removes the session from the store and clears the cookie.
func (c *Cookie[Data]) Delete(ctx handler.Context, sess session.Session[Data]) error {
	if err := c.manager.Delete(ctx, sess.ID); err != nil {
		return err
	}
	c.cookieMgr.Delete(ctx.ResponseWriter(), c.name)
	return nil
}

func (c *Cookie[Data]) setCookie(ctx handler.Context, sess session.Session[Data]) error {
	until := time.Until(sess.ExpiresAt)
	if until <= 0 {
		return ErrExpiredSession
	}

	return c.cookieMgr.SetSigned(ctx.ResponseWriter(), c.name, sess.Token,
		cookie.WithHTTPOnly(true),
		cookie.WithSameSite(http.SameSiteLaxMode),
		cookie.WithMaxAge(int(until.Seconds())),
	)
}

func newParams(r *http.Request) session.NewSessionParams {
	return session.NewSessionParams{
		IP:        clientip.GetIP(r),
		UserAgent: r.UserAgent(),
	}
}
