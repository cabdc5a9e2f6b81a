package handlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ZacxDev/go-html-pages/config"
	"github.com/ZacxDev/go-html-pages/plugin"
	"github.com/gorilla/websocket"
)

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		file := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(file), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(file, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func newTestServer(t *testing.T, backendURL string, hub *Hub) http.Handler {
	t.Helper()
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"index.html":       `<html><head></head><body><h1>home <%= MODE %></h1><script type="module" src="/old.js"></script></body></html>`,
		"about/index.html": `<html><head></head><body><h1>about</h1></body></html>`,
		"broken.html":      `<body><%= ( %></body>`,
		"style.css":        `body { color: red; }`,
		"src/main.js":      `console.log("main entry");`,
	})

	bc := &config.BuildConfig{
		Root:  root,
		Proxy: map[string]string{"/api": backendURL},
		HTML: config.HTMLOptions{
			Entry: "/src/main.js",
			Pages: []config.Page{
				{
					Filename: "about.html",
					Template: "about/index.html",
					Entry:    "/src/about.js",
					InjectOptions: config.InjectOptions{
						Tags: []config.Tag{{Tag: "meta", Attrs: map[string]string{"name": "page", "content": "about"}, InjectTo: "head"}},
					},
				},
				{Filename: "broken.html", Template: "broken.html"},
				{Filename: "index.html", Template: "index.html"},
			},
		},
	}

	p := plugin.New(bc.HTML, nil)
	if input := p.Config(bc); input != nil {
		bc.Input = input
	}
	r, err := config.Resolve(bc, "serve")
	if err != nil {
		t.Fatal(err)
	}
	pc, err := p.Resolve(r)
	if err != nil {
		t.Fatal(err)
	}

	router, err := SetupRouter(pc, hub, nil)
	if err != nil {
		t.Fatal(err)
	}
	return router
}

func get(t *testing.T, h http.Handler, target, accept string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

const browserAccept = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"

func TestRouterServesPages(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "backend:"+r.URL.Path)
	}))
	defer backend.Close()

	h := newTestServer(t, backend.URL, nil)

	t.Run("page prefix is rewritten to its template", func(t *testing.T) {
		rec := get(t, h, "/about.html/team", browserAccept)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		body := rec.Body.String()
		if !strings.Contains(body, "<h1>about</h1>") {
			t.Errorf("expected about page, got %s", body)
		}
		if !strings.Contains(body, `<script type="module" src="/src/about.js"></script></body>`) {
			t.Errorf("expected about entry, got %s", body)
		}
		if !strings.Contains(body, `<meta content="about" name="page"></head>`) {
			t.Errorf("expected injected tag, got %s", body)
		}
	})

	t.Run("unknown route falls back to the default page", func(t *testing.T) {
		rec := get(t, h, "/users/42", browserAccept)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		body := rec.Body.String()
		if !strings.Contains(body, "<h1>home development</h1>") {
			t.Errorf("expected rendered home page, got %s", body)
		}
		if strings.Contains(body, "/old.js") || strings.Count(body, `type="module"`) != 1 {
			t.Errorf("expected a single injected entry, got %s", body)
		}
	})

	t.Run("proxied paths reach the backend", func(t *testing.T) {
		rec := get(t, h, "/api/items", browserAccept)
		if body := rec.Body.String(); body != "backend:/api/items" {
			t.Errorf("expected backend response, got %d %q", rec.Code, body)
		}
	})

	t.Run("non html requests are not rewritten", func(t *testing.T) {
		rec := get(t, h, "/missing.html", "")
		if rec.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "/missing.html") {
			t.Errorf("expected path in 404 page, got %s", rec.Body.String())
		}
	})

	t.Run("static files are served from the root", func(t *testing.T) {
		rec := get(t, h, "/style.css", "text/css,*/*;q=0.1")
		if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "color: red") {
			t.Errorf("unexpected response %d %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("scripts are bundled", func(t *testing.T) {
		rec := get(t, h, "/src/main.js", "*/*")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if !strings.Contains(rec.Body.String(), "main entry") {
			t.Errorf("unexpected script %s", rec.Body.String())
		}
		if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/javascript") {
			t.Errorf("unexpected content type %s", ct)
		}
	})

	t.Run("render failures are server errors", func(t *testing.T) {
		rec := get(t, h, "/broken.html", browserAccept)
		if rec.Code != http.StatusInternalServerError {
			t.Errorf("expected 500, got %d", rec.Code)
		}
	})
}

func TestReloadable(t *testing.T) {
	r := NewReloadable(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "first")
	}))

	if body := get(t, r, "/", "").Body.String(); body != "first" {
		t.Errorf("got %q", body)
	}

	r.Store(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "second")
	}))

	if body := get(t, r, "/", "").Body.String(); body != "second" {
		t.Errorf("got %q", body)
	}
}

func TestLiveReload(t *testing.T) {
	hub := NewHub(nil)
	srv := httptest.NewServer(newTestServer(t, "http://127.0.0.1:1", hub))
	defer srv.Close()

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/about.html", nil)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Accept", browserAccept)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.Contains(string(body), LiveReloadPath) {
		t.Errorf("expected live reload client in page, got %s", body)
	}

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+LiveReloadPath, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for hub.Clients() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	hub.Broadcast("reload")

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if string(msg) != "reload" {
		t.Errorf("got %q", msg)
	}
}
