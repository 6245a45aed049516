package nodepop

import (
	"net/http"

	"github.com/dmitrymomot/nodepop/core/router"
	"github.com/dmitrymomot/nodepop/core/session"
	"github.com/dmitrymomot/nodepop/middleware"
)

// SessionData is the application payload of a session.
type SessionData struct {
	UserEmail string `json:"user_email" bson:"user_email"`
}

// Context is the request context of every nodepop handler.
type Context struct {
	*router.Context
}

func newContext(w http.ResponseWriter, r *http.Request, params map[string]string) *Context {
	return &Context{Context: router.NewContext(w, r, params)}
}

// Session returns the session loaded by the session middleware.
func (c *Context) Session() (session.Session[SessionData], bool) {
	return middleware.GetSession[SessionData](c)
}

// UserID is empty for anonymous requests.
func (c *Context) UserID() string {
	sess, _ := c.Session()
	return sess.UserID
}

func (c *Context) UserEmail() string {
	sess, _ := c.Session()
	if !sess.IsAuthenticated() {
		return ""
	}
	return sess.Data.UserEmail
}

func (c *Context) RequestID() string {
	id, _ := middleware.GetRequestID(c)
	return id
}
