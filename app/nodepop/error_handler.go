package nodepop

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/nodepop/core/handler"
	"github.com/dmitrymomot/nodepop/core/logger"
	"github.com/dmitrymomot/nodepop/core/response"
	"github.com/dmitrymomot/nodepop/core/router"
)

const (
	msgRouteNotFound = "The requested route does not exist"
	msgUnexpected    = "An unexpected error occurred"
)

type errorBody struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
	Status  int    `json:"status,omitempty"`
}

// errorHandler renders every error returned by a handler or raised by the
// router. Browsers get an HTML page, everything else JSON.
func (a *App) errorHandler(ctx *Context, err error) {
	if w, ok := ctx.ResponseWriter().(interface{ Written() bool }); ok && w.Written() {
		a.logger.ErrorContext(ctx, "error after response started",
			logger.RequestID(ctx.RequestID()),
			logger.Path(ctx.Request().URL.Path),
			logger.Error(err),
		)
		return
	}

	r := ctx.Request()
	dev := a.config.IsDevelopment()

	var verr response.ValidationError
	if errors.As(err, &verr) && (response.PrefersJSON(r) || !response.AcceptsHTML(r)) {
		response.Render(ctx, response.JSONWithStatus(verr, http.StatusBadRequest))
		return
	}

	status, message := classify(err)
	if status >= http.StatusInternalServerError {
		attrs := []any{
			logger.RequestID(ctx.RequestID()),
			logger.Method(r.Method),
			logger.Path(r.URL.Path),
			logger.StatusCode(status),
			logger.Error(err),
		}
		var perr router.PanicError
		if errors.As(err, &perr) {
			attrs = append(attrs, slog.String("stack", string(perr.Stack())))
		}
		a.logger.ErrorContext(ctx, "request failed", attrs...)

		if !dev {
			message = msgUnexpected
		}
	}

	if response.AcceptsHTML(r) {
		response.Render(ctx, a.renderError(ctx, status, message, err))
		return
	}

	body := errorBody{Success: false, Error: errorTitle(status), Message: message}
	if dev {
		body.Detail = err.Error()
		body.Status = status
	}
	response.Render(ctx, response.JSONWithStatus(body, status))
}

func (a *App) renderError(ctx *Context, status int, message string, err error) handler.Response {
	page := pageError
	if status == http.StatusNotFound {
		page = pageNotFound
	}

	data := errorPage{
		layout:  a.layout(ctx, errorTitle(status)),
		Status:  status,
		Heading: errorTitle(status),
		Message: message,
	}
	if a.config.IsDevelopment() {
		data.Detail = err.Error()
	}
	return a.views.render(page, data, status)
}

// classify resolves the status and the client message of err. Panics are
// always 500 whatever value they carry.
func classify(err error) (int, string) {
	var perr router.PanicError
	if errors.As(err, &perr) {
		return http.StatusInternalServerError, err.Error()
	}

	if errors.Is(err, router.ErrNotFound) {
		return http.StatusNotFound, msgRouteNotFound
	}

	status := response.ToHTTPError(err).Status

	var httpErr response.HTTPError
	if errors.As(err, &httpErr) {
		return status, httpErr.Message
	}
	return status, err.Error()
}

func errorTitle(status int) string {
	switch {
	case status == http.StatusNotFound:
		return "Resource not found"
	case status == http.StatusForbidden:
		return "Forbidden"
	case status >= http.StatusInternalServerError:
		return "Internal server error"
	}
	return http.StatusText(status)
}
