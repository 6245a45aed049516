package nodepop

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrymomot/nodepop/app/nodepop/user"
	"github.com/dmitrymomot/nodepop/core/binder"
	"github.com/dmitrymomot/nodepop/core/handler"
	"github.com/dmitrymomot/nodepop/core/logger"
	"github.com/dmitrymomot/nodepop/core/response"
	"github.com/dmitrymomot/nodepop/middleware"
)

const msgInvalidCredentials = "Invalid credentials."

type loginRequest struct {
	Email    string `form:"email" json:"email" validate:"required,email" sanitize:"email"`
	Password string `form:"password" json:"password" validate:"required,min=4"`
}

// safeRedirect accepts local absolute paths only.
func safeRedirect(target string) string {
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return "/"
	}
	return target
}

func loginAction(redir string) string {
	if redir == "" {
		return "/login"
	}
	return "/login?redir=" + url.QueryEscape(redir)
}

func (a *App) renderLogin(ctx *Context, form loginRequest, errMsg string, fieldErrs map[string]string, status int) handler.Response {
	redir := ctx.Request().URL.Query().Get("redir")
	return a.views.render(pageLogin, loginPage{
		layout: a.layout(ctx, "Login"),
		Action: loginAction(redir),
		Email:  form.Email,
		Error:  errMsg,
		Errors: fieldErrs,
	}, status)
}

// GET /login
func (a *App) showLogin(ctx *Context) handler.Response {
	q := ctx.Request().URL.Query()
	return a.renderLogin(ctx, loginRequest{Email: q.Get("email")}, q.Get("error"), nil, http.StatusOK)
}

// POST /login
func (a *App) login(ctx *Context) handler.Response {
	var form loginRequest
	if err := binder.Body()(ctx.Request(), &form); err != nil {
		return response.Error(response.ErrBadRequest.WithError(err))
	}

	if err := a.validateStruct(form, response.LocationBody); err != nil {
		var verr response.ValidationError
		if !errors.As(err, &verr) {
			return response.Error(err)
		}
		if response.PrefersJSON(ctx.Request()) {
			return response.JSONWithStatus(verr, http.StatusBadRequest)
		}
		return a.renderLogin(ctx, form, "", verr.Fields(), http.StatusBadRequest)
	}

	u, err := a.users.Authenticate(ctx, form.Email, form.Password)
	if err != nil {
		if !errors.Is(err, user.ErrInvalidCredentials) {
			return response.Error(err)
		}
		a.logger.WarnContext(ctx, "login failed", logger.Component("auth"), logger.Email(form.Email))
		if response.PrefersJSON(ctx.Request()) {
			return response.JSONWithStatus(map[string]any{
				"success": false,
				"message": msgInvalidCredentials,
			}, http.StatusUnauthorized)
		}
		return a.renderLogin(ctx, form, msgInvalidCredentials, nil, http.StatusUnauthorized)
	}

	sess := middleware.MustGetSession[SessionData](ctx)
	authed, err := a.transport.Authenticate(ctx, sess, u.ID.Hex(), SessionData{UserEmail: u.Email})
	if err != nil {
		return response.Error(err)
	}
	middleware.SetSession(ctx, authed)

	a.logger.InfoContext(ctx, "login succeeded",
		logger.Component("auth"),
		logger.UserID(u.ID.Hex()),
		logger.Email(u.Email),
	)

	return response.RedirectSeeOther(safeRedirect(ctx.Request().URL.Query().Get("redir")))
}

// GET /logout
func (a *App) logout(ctx *Context) handler.Response {
	sess := middleware.MustGetSession[SessionData](ctx)
	userID := sess.UserID

	fresh, err := a.transport.Logout(ctx, sess)
	if err != nil {
		return response.Error(err)
	}
	middleware.SetSession(ctx, fresh)

	a.logger.InfoContext(ctx, "logout", logger.Component("auth"), logger.UserID(userID))
	return response.Redirect("/")
}

// requireLogin answers the authentication gate: anonymous requests go to the
// login form, which returns them to where they started.
func (a *App) requireLogin(ctx *Context, err error) handler.Response {
	var httpErr response.HTTPError
	if errors.As(err, &httpErr) && httpErr.Status == http.StatusUnauthorized {
		return response.Redirect("/login?redir=" + url.QueryEscape(ctx.Request().URL.RequestURI()))
	}
	return response.Error(err)
}
