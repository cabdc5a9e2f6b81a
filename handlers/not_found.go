package handlers

import (
	"net/http"

	"github.com/gobuffalo/plush"
)

const notFoundPage = `<!doctype html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>Not Found</title>
</head>
<body>
  <h1>404</h1>
  <p>Nothing is served at <code><%= path %></code>.</p>
</body>
</html>
`

func NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	ctx := plush.NewContext()
	ctx.Set("path", r.URL.Path)

	template, err := plush.Parse(notFoundPage)
	if err != nil {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	content, err := template.Exec(ctx)
	if err != nil {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(content))
}
