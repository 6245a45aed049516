package response

import (
	"net/http"

	"github.com/dmitrymomot/nodepop/core/handler"
)

const (
	// HeaderHXRequest is sent by htmx on every request it issues.
	HeaderHXRequest = "HX-Request"
	// HeaderHXLocation asks htmx to perform a client-side redirect.
	HeaderHXLocation = "HX-Location"
)

// Redirect creates a 302 Found response.
// For htmx requests it answers 200 with HX-Location instead.
func Redirect(url string) handler.Response {
	return RedirectWithStatus(url, http.StatusFound)
}

// RedirectSeeOther creates a 303 See Other response, the usual answer to a
// successful form POST.
func RedirectSeeOther(url string) handler.Response {
	return RedirectWithStatus(url, http.StatusSeeOther)
}

// RedirectWithStatus creates a redirect with a custom status code.
// Status codes outside the 3xx range fall back to 302.
func RedirectWithStatus(url string, status int) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		if r.Header.Get(HeaderHXRequest) == "true" {
			w.Header().Set(HeaderHXLocation, url)
			w.WriteHeader(http.StatusOK)
			return nil
		}

		if status < 300 || status >= 400 {
			status = http.StatusFound
		}

		http.Redirect(w, r, url, status)
		return nil
	}
}
