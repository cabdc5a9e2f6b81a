package handlers

import (
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"
	"path"
	"strings"

	"github.com/ZacxDev/go-html-pages/pages"
	"github.com/ZacxDev/go-html-pages/plugin"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
)

var scriptExts = map[string]bool{
	".js": true, ".mjs": true, ".jsx": true, ".ts": true, ".tsx": true,
}

// SetupRouter builds the dev server for one resolved configuration. Browser
// navigations are rewritten to page templates before routing. hub may be nil
// to serve pages without live reload.
func SetupRouter(pc *plugin.Context, hub *Hub, logger *slog.Logger) (http.Handler, error) {
	if logger == nil {
		logger = slog.Default()
	}

	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(NotFoundHandler)

	if hub != nil {
		router.Handle(LiveReloadPath, hub)
	}

	// Proxied prefixes go straight to their backend
	for _, key := range pc.Config.ProxyKeys() {
		target, err := url.Parse(pc.Config.Proxy[key])
		if err != nil {
			return nil, errors.Wrapf(err, "error parsing proxy target for %s", key)
		}
		prefix := pages.ResolveURLPath(pc.Config.Base, key)
		router.PathPrefix(prefix).Handler(httputil.NewSingleHostReverseProxy(target))
	}

	router.MatcherFunc(hasExt(".html")).Methods(http.MethodGet, http.MethodHead).Handler(PageHandler(pc, hub, logger))
	router.MatcherFunc(isScript).Methods(http.MethodGet, http.MethodHead).Handler(ScriptHandler(pc, logger))

	// Everything else is a file under the project root
	base := pc.Config.Base
	router.PathPrefix(base).Handler(http.StripPrefix(strings.TrimSuffix(base, "/"), http.FileServer(http.Dir(pc.Config.Root))))

	return Fallback(pc.ConfigureServer())(router), nil
}

func hasExt(ext string) mux.MatcherFunc {
	return func(r *http.Request, rm *mux.RouteMatch) bool {
		return path.Ext(r.URL.Path) == ext
	}
}

func isScript(r *http.Request, rm *mux.RouteMatch) bool {
	return scriptExts[path.Ext(r.URL.Path)]
}
