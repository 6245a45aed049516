package response

import (
	"net/http"
	"strings"
)

// AcceptsHTML reports whether the Accept header lists text/html.
func AcceptsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}

// PrefersJSON reports whether the client asked for JSON ahead of HTML.
// A request without an Accept preference that sent a JSON body also counts.
func PrefersJSON(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	jsonIdx := strings.Index(accept, "application/json")
	htmlIdx := strings.Index(accept, "text/html")

	switch {
	case jsonIdx >= 0:
		return htmlIdx < 0 || jsonIdx < htmlIdx
	case htmlIdx >= 0:
		return false
	}

	if accept == "" || strings.Contains(accept, "*/*") {
		return strings.HasPrefix(r.Header.Get("Content-Type"), "application/json")
	}
	return false
}
