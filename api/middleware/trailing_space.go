package middleware

import (
	"net/http"
	"strings"
)

// TrailingSpaceRedirect permanently redirects request paths that end in
// whitespace to the trimmed path. Mobile clients following copy-pasted
// links produce these regularly.
func TrailingSpaceRedirect() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			trimmed := strings.TrimRight(path, " ")
			if trimmed == path {
				next.ServeHTTP(w, r)
				return
			}
			if trimmed == "" {
				trimmed = "/"
			}

			target := trimmed
			if r.URL.RawQuery != "" {
				target += "?" + r.URL.RawQuery
			}
			http.Redirect(w, r, target, http.StatusMovedPermanently)
		})
	}
}
