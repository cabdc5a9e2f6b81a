package pages

import (
	"reflect"
	"testing"

	"github.com/ZacxDev/go-html-pages/config"
)

func TestDetectMode(t *testing.T) {
	tests := []struct {
		name       string
		input      map[string]string
		configured int
		want       BuildMode
	}{
		{"no input", nil, 0, SinglePage},
		{"single key", map[string]string{"app": "/p/app.html"}, 0, SinglePage},
		{"two keys", map[string]string{"a": "/a.html", "b": "/b.html"}, 0, MultiPage},
		{"configured pages", nil, 1, MultiPage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectMode(tt.input, tt.configured); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSnapshotIsImmutable(t *testing.T) {
	opts := config.HTMLOptions{
		Pages: []config.Page{{Filename: "about.html", Template: "about/index.html"}},
	}
	s := NewSnapshot(opts, MultiPage)

	opts.Pages[0].Template = "changed.html"
	s.Pages()[0].Template = "changed-again.html"

	if got := s.Pages()[0].Template; got != "about/index.html" {
		t.Errorf("snapshot changed: %s", got)
	}
}

func TestEffectiveDefaults(t *testing.T) {
	s := NewSnapshot(config.HTMLOptions{
		Pages: []config.Page{{Template: "home.html"}, {Filename: "about.html"}},
	}, MultiPage)

	want := []config.Page{
		{Filename: "index.html", Template: "home.html"},
		{Filename: "about.html", Template: "index.html"},
	}
	if got := s.Effective(); !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}

	single := NewSnapshot(config.HTMLOptions{Entry: "/src/main.js"}, SinglePage)
	want = []config.Page{{Filename: "index.html", Template: "index.html", Entry: "/src/main.js"}}
	if got := single.Effective(); !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestOutputDirs(t *testing.T) {
	s := NewSnapshot(config.HTMLOptions{
		Pages: []config.Page{
			{Filename: "index.html", Template: "./index.html"},
			{Filename: "about.html", Template: "about/about.html"},
			{Filename: "team.html", Template: "./about/team.html"},
			{Filename: "admin.html", Template: "admin/users/index.html"},
		},
	}, MultiPage)

	want := []string{"about", "admin/users"}
	if got := s.OutputDirs(); !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	single := NewSnapshot(config.HTMLOptions{Template: "src/app.html"}, SinglePage)
	if got := single.OutputDirs(); !reflect.DeepEqual(got, []string{"src"}) {
		t.Errorf("got %v", got)
	}
}
