package pages

import (
	"path"
	"path/filepath"

	"github.com/ZacxDev/go-html-pages/config"
)

// DefaultPage is served when no configured page claims a request.
func DefaultPage() config.Page {
	return config.Page{
		Filename: DefaultFilename,
		Template: "./" + DefaultFilename,
	}
}

// Resolve returns the page whose template is requested, where requested is
// a template path relative to the site root. It never fails: a request no
// page claims gets the synthesized default page.
func Resolve(requested string, s Snapshot) config.Page {
	if s.mode != MultiPage {
		return s.spa
	}

	want := rooted(requested)
	for _, page := range s.pages {
		if rooted(page.Template) == want {
			return page
		}
	}
	return DefaultPage()
}

func rooted(p string) string {
	return path.Clean("/" + filepath.ToSlash(p))
}
