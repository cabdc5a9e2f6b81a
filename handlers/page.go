package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ZacxDev/go-html-pages/config"
	"github.com/ZacxDev/go-html-pages/javascript"
	"github.com/ZacxDev/go-html-pages/pages"
	"github.com/ZacxDev/go-html-pages/plugin"
	"github.com/ZacxDev/go-html-pages/render"
	"github.com/pkg/errors"
)

// PageHandler serves a template through the HTML transform. With a hub the
// page also gets the live reload client.
func PageHandler(pc *plugin.Context, hub *Hub, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(pages.StripBase(r.URL.Path, pc.Config.Base), "/")

		raw, err := pages.ReadHTML(config.Page{Template: name}, pc.Config.Root)
		if errors.Is(err, pages.ErrTemplateNotFound) {
			NotFoundHandler(w, r)
			return
		}
		if err != nil {
			http.Error(w, fmt.Sprintf("Error reading template: %v", err), http.StatusInternalServerError)
			return
		}

		result, err := pc.TransformHTML(raw, r.URL.Path)
		if err != nil {
			logger.Error("transform failed", "path", r.URL.Path, "error", err)
			http.Error(w, fmt.Sprintf("Error rendering template: %v", err), http.StatusInternalServerError)
			return
		}

		tags := result.Tags
		if hub != nil {
			tags = append(tags[:len(tags):len(tags)], liveReloadTag())
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, err = w.Write([]byte(render.ApplyTags(result.HTML, tags)))
		if err != nil {
			logger.Warn("write failed", "path", r.URL.Path, "error", err)
		}
	}
}

// ScriptHandler bundles a source script on request.
func ScriptHandler(pc *plugin.Context, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entry := pages.StripBase(r.URL.Path, pc.Config.Base)

		out, err := javascript.Serve(pc.Config.Root, entry)
		if err != nil {
			logger.Error("bundle failed", "path", r.URL.Path, "error", err)
			http.Error(w, fmt.Sprintf("Error bundling script: %v", err), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
		w.Write(out)
	}
}
