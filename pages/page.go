package pages

import (
	"path"

	"github.com/ZacxDev/go-html-pages/config"
)

// DefaultFilename names the default page. It is served for every path no
// other page claims.
const DefaultFilename = config.DefaultTemplate

// Template directories that do not produce a nested output directory.
var ignoredDirs = map[string]bool{".": true, "": true, "/": true}

type BuildMode int

const (
	SinglePage BuildMode = iota
	MultiPage
)

func (m BuildMode) String() string {
	if m == MultiPage {
		return "multi-page"
	}
	return "single-page"
}

// DetectMode decides the build mode from the bundler input and the number of
// configured pages. A configured page list always means multi-page, even when
// it holds a single page.
func DetectMode(input map[string]string, configured int) BuildMode {
	if len(input) > 1 || configured > 0 {
		return MultiPage
	}
	return SinglePage
}

// Snapshot is the page list for one build or serve invocation. It is built
// once from the user options and is read-only afterwards.
type Snapshot struct {
	mode  BuildMode
	pages []config.Page
	spa   config.Page
}

func NewSnapshot(opts config.HTMLOptions, mode BuildMode) Snapshot {
	template := opts.Template
	if template == "" {
		template = config.DefaultTemplate
	}

	pages := make([]config.Page, len(opts.Pages))
	copy(pages, opts.Pages)

	return Snapshot{
		mode:  mode,
		pages: pages,
		spa:   SPAPage(opts.Entry, template, opts.Inject),
	}
}

// SPAPage synthesizes the only page of a single-page build.
func SPAPage(entry, template string, inject config.InjectOptions) config.Page {
	return config.Page{
		Entry:         entry,
		Filename:      DefaultFilename,
		Template:      template,
		InjectOptions: inject,
	}
}

func (s Snapshot) Mode() BuildMode {
	return s.mode
}

// Pages returns a copy of the configured pages.
func (s Snapshot) Pages() []config.Page {
	out := make([]config.Page, len(s.pages))
	copy(out, s.pages)
	return out
}

// Templates lists the configured page templates in order.
func (s Snapshot) Templates() []string {
	templates := make([]string, 0, len(s.pages))
	for _, page := range s.pages {
		templates = append(templates, page.Template)
	}
	return templates
}

// Effective is the page list the dev server routes: configured pages with
// missing filename or template defaulted, or the synthesized single page.
func (s Snapshot) Effective() []config.Page {
	if s.mode != MultiPage {
		return []config.Page{s.spa}
	}

	out := make([]config.Page, 0, len(s.pages))
	for _, page := range s.pages {
		if page.Filename == "" {
			page.Filename = DefaultFilename
		}
		if page.Template == "" {
			page.Template = config.DefaultTemplate
		}
		out = append(out, page)
	}
	return out
}

// OutputDirs lists the distinct template directories whose generated HTML
// must be moved to the output root after a build.
func (s Snapshot) OutputDirs() []string {
	seen := make(map[string]bool)
	var dirs []string
	for _, page := range s.Effective() {
		dir := path.Dir(page.Template)
		if ignoredDirs[dir] || seen[dir] {
			continue
		}
		seen[dir] = true
		dirs = append(dirs, dir)
	}
	return dirs
}
