package nodepop

import (
	"embed"
	"fmt"
	"html/template"
	"slices"
	"strconv"
	"strings"

	"github.com/dmitrymomot/nodepop/app/nodepop/product"
	"github.com/dmitrymomot/nodepop/core/handler"
	"github.com/dmitrymomot/nodepop/core/response"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Page names. Each page file defines "content" and is rendered in "layout".
const (
	pageLogin    = "login"
	pageIndex    = "index"
	pageNew      = "new"
	pageError    = "error"
	pageNotFound = "not_found"
)

var templateFuncs = template.FuncMap{
	"join":      strings.Join,
	"hasTag":    slices.Contains[[]string, string],
	"price":     func(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) },
	"deleteURL": func(p product.Product) string { return "/products/delete/" + p.ID.Hex() },
}

type views struct {
	pages map[string]*template.Template
}

func newViews() (*views, error) {
	v := &views{pages: make(map[string]*template.Template)}
	for _, name := range []string{pageLogin, pageIndex, pageNew, pageError, pageNotFound} {
		t, err := template.New(name).Funcs(templateFuncs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse view %s: %w", name, err)
		}
		v.pages[name] = t
	}
	return v, nil
}

func (v *views) render(name string, data any, status int) handler.Response {
	t, ok := v.pages[name]
	if !ok {
		return response.Error(fmt.Errorf("unknown view %q", name))
	}
	return response.TemplateNameWithStatus(t, "layout", data, status)
}

// layout is shared by every page.
type layout struct {
	Title     string
	AppName   string
	UserEmail string
	Dev       bool
}

func (a *App) layout(ctx *Context, title string) layout {
	return layout{
		Title:     title,
		AppName:   a.config.AppName,
		UserEmail: ctx.UserEmail(),
		Dev:       a.config.IsDevelopment(),
	}
}

type loginPage struct {
	layout
	Action string
	Email  string
	Error  string
	Errors map[string]string
}

type indexPage struct {
	layout
	Listing     product.Listing
	Deleted     bool
	AllowedTags []string
}

type newProductPage struct {
	layout
	Name        string
	Price       string
	Tags        []string
	AllowedTags []string
	Errors      map[string]string
}

type errorPage struct {
	layout
	Status  int
	Heading string
	Message string
	Detail  string
}
