package ui

import (
	"net/http"
	"strings"
)

// APIVersionQuery names the query parameter selecting the REST API version.
const APIVersionQuery = "apiVersion"

// RestVersionRedirect sends REST reference pages with an unknown apiVersion to
// the same page at the default version.
func (h *Handlers) RestVersionRedirect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if len(h.apiVersions) == 0 || !strings.Contains(r.URL.Path, "/rest/") {
			next.ServeHTTP(w, r)
			return
		}
		query := r.URL.Query()
		requested := query.Get(APIVersionQuery)
		if requested == "" || h.knownAPIVersion(requested) {
			next.ServeHTTP(w, r)
			return
		}
		query.Set(APIVersionQuery, h.apiVersions[0])
		http.Redirect(w, r, withQuery(r.URL.Path, query), http.StatusFound)
	})
}

func (h *Handlers) knownAPIVersion(version string) bool {
	for _, v := range h.apiVersions {
		if v == version {
			return true
		}
	}
	return false
}
