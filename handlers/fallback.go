package handlers

import (
	"net/http"
	"strings"

	"github.com/ZacxDev/go-html-pages/pages"
	"github.com/gorilla/mux"
)

var htmlAcceptHeaders = []string{"text/html", "application/xhtml+xml"}

// Fallback rewrites browser navigations using rules so that direct visits
// to client side routes get their page instead of a 404. Only GET and HEAD
// requests that accept HTML are rewritten.
func Fallback(rules pages.Rules) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if (r.Method == http.MethodGet || r.Method == http.MethodHead) && acceptsHTML(r) {
				if target, ok := rules.Resolve(r.URL.Path); ok && target != r.URL.Path {
					rewritten := r.Clone(r.Context())
					rewritten.URL.Path = target
					rewritten.URL.RawPath = ""
					r = rewritten
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func acceptsHTML(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	for _, h := range htmlAcceptHeaders {
		if strings.Contains(accept, h) {
			return true
		}
	}
	return false
}
