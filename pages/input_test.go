package pages

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/ZacxDev/go-html-pages/config"
)

func TestEntryKey(t *testing.T) {
	tests := []struct {
		template string
		want     string
	}{
		{"index.html", "index"},
		{"./index.html", "index"},
		{"public/login.html", "login"},
		{"about/index.html", "about"},
		{"./about/index.html", "about"},
		{"admin/users/list.html", "admin-users"},
		{"my pages/index.html", "mypages"},
	}

	for _, tt := range tests {
		t.Run(tt.template, func(t *testing.T) {
			if got := EntryKey(tt.template); got != tt.want {
				t.Errorf("EntryKey(%q) = %q, want %q", tt.template, got, tt.want)
			}
		})
	}
}

func TestSinglePageInput(t *testing.T) {
	root := filepath.FromSlash("/project")

	t.Run("root level template produces no input", func(t *testing.T) {
		for _, template := range []string{"index.html", "./index.html", "/index.html"} {
			if got := SinglePageInput(root, template); got != nil {
				t.Errorf("SinglePageInput(%q) = %v, want nil", template, got)
			}
		}
	})

	t.Run("nested template is keyed by file name", func(t *testing.T) {
		got := SinglePageInput(root, "src/app.html")
		want := Input{"app": filepath.Join(root, "src", "app.html")}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})
}

func TestBuildInputMultiPage(t *testing.T) {
	root := filepath.FromSlash("/project")
	opts := config.HTMLOptions{
		Pages: []config.Page{
			{Filename: "index.html", Template: "index.html"},
			{Filename: "about.html", Template: "about/index.html"},
			{Filename: "login.html", Template: "public/login.html"},
		},
	}

	got := BuildInput(root, MultiPage, opts)
	want := Input{
		"index": filepath.Join(root, "index.html"),
		"about": filepath.Join(root, "about", "index.html"),
		"login": filepath.Join(root, "public", "login.html"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	again := BuildInput(root, MultiPage, opts)
	if !reflect.DeepEqual(got, again) {
		t.Errorf("BuildInput is not deterministic: %v vs %v", got, again)
	}

	if keys := got.Keys(); !reflect.DeepEqual(keys, []string{"about", "index", "login"}) {
		t.Errorf("Keys() = %v", keys)
	}
}

func TestMultiPageInputLastWins(t *testing.T) {
	root := filepath.FromSlash("/project")
	got := MultiPageInput(root, []string{"about/a.html", "about/b.html"})

	if len(got) != 1 {
		t.Fatalf("expected one entry, got %v", got)
	}
	if got["about"] != filepath.Join(root, "about", "b.html") {
		t.Errorf("expected last template to win, got %s", got["about"])
	}
}

func TestInputCollisions(t *testing.T) {
	got := InputCollisions([]string{"about/a.html", "about/b.html", "index.html"})
	want := map[string][]string{"about": {"about/a.html", "about/b.html"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	if got := InputCollisions([]string{"index.html", "about/index.html"}); len(got) != 0 {
		t.Errorf("expected no collisions, got %v", got)
	}
}
