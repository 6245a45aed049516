package response

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"

	"github.com/dmitrymomot/nodepop/core/handler"
)

// ErrNilTemplate is returned when a template response is built without a template.
var ErrNilTemplate = errors.New("template is nil")

// Template renders tmpl with data and 200 OK status.
func Template(tmpl *template.Template, data any) handler.Response {
	return TemplateNameWithStatus(tmpl, "", data, http.StatusOK)
}

// TemplateWithStatus renders tmpl with data and a custom status code.
func TemplateWithStatus(tmpl *template.Template, data any, status int) handler.Response {
	return TemplateNameWithStatus(tmpl, "", data, status)
}

// TemplateName renders the named template from a template set.
func TemplateName(tmpl *template.Template, name string, data any) handler.Response {
	return TemplateNameWithStatus(tmpl, name, data, http.StatusOK)
}

// TemplateNameWithStatus renders the named template with a custom status code.
// Output is buffered, so a template error leaves the writer untouched and
// reaches the error handler instead of a half-written page.
func TemplateNameWithStatus(tmpl *template.Template, name string, data any, status int) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		if tmpl == nil {
			return ErrNilTemplate
		}

		var buf bytes.Buffer
		var err error
		if name != "" {
			err = tmpl.ExecuteTemplate(&buf, name, data)
		} else {
			err = tmpl.Execute(&buf, data)
		}
		if err != nil {
			return err
		}

		if status == 0 {
			status = http.StatusOK
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		_, err = w.Write(buf.Bytes())
		return err
	}
}
