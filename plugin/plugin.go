// Package plugin exposes the HTML page hooks a build or dev server calls:
// Config before resolution, Resolve once the configuration is final, and
// the Context methods for the server, per-document transforms and the end
// of a bundle.
package plugin

import (
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZacxDev/go-html-pages/config"
	"github.com/ZacxDev/go-html-pages/flatten"
	"github.com/ZacxDev/go-html-pages/pages"
	"github.com/ZacxDev/go-html-pages/render"
	"github.com/pkg/errors"
)

var ErrEntryKeyCollision = errors.New("templates share an entry key")

type Plugin struct {
	opts   config.HTMLOptions
	logger *slog.Logger
}

func New(opts config.HTMLOptions, logger *slog.Logger) *Plugin {
	if opts.Template == "" {
		opts.Template = config.DefaultTemplate
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Plugin{opts: opts, logger: logger}
}

// Config returns the multi-entry input to merge into the bundler config, or
// nil when the bundler's default input applies.
func (p *Plugin) Config(c *config.BuildConfig) pages.Input {
	root := c.Root
	if root == "" {
		root = "."
	}
	// Input values are absolute whatever the working directory.
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	mode := pages.DetectMode(c.Input, len(p.opts.Pages))
	return pages.BuildInput(root, mode, p.opts)
}

// Resolve builds the read-only Context for one build or serve invocation.
func (p *Plugin) Resolve(r *config.Resolved) (*Context, error) {
	mode := pages.DetectMode(r.Input, len(p.opts.Pages))
	snapshot := pages.NewSnapshot(p.opts, mode)

	if mode == pages.MultiPage {
		if err := checkCollisions(snapshot.Templates()); err != nil {
			return nil, err
		}
	}

	dotEnv, err := config.LoadEnv(r.Mode, r.EnvDir, "")
	if err != nil {
		return nil, err
	}

	return &Context{
		Config:   r,
		Mode:     mode,
		Snapshot: snapshot,
		entry:    p.opts.Entry,
		template: p.opts.Template,
		pipeline: &render.Pipeline{
			Env:     r.Env,
			Define:  r.Define,
			DotEnv:  dotEnv,
			Verbose: p.opts.Verbose,
			Logger:  p.logger,
		},
	}, nil
}

func checkCollisions(templates []string) error {
	collisions := pages.InputCollisions(templates)
	if len(collisions) == 0 {
		return nil
	}

	keys := make([]string, 0, len(collisions))
	for key := range collisions {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	details := make([]string, 0, len(keys))
	for _, key := range keys {
		details = append(details, key+": "+strings.Join(collisions[key], ", "))
	}
	return errors.Wrap(ErrEntryKeyCollision, strings.Join(details, "; "))
}

// Context is the resolved state shared by every hook of one invocation.
// Nothing in it changes after Resolve returns.
type Context struct {
	Config   *config.Resolved
	Mode     pages.BuildMode
	Snapshot pages.Snapshot

	entry    string
	template string
	pipeline *render.Pipeline
}

// ConfigureServer returns the rewrite rules for the dev server.
func (c *Context) ConfigureServer() pages.Rules {
	return pages.BuildRules(c.Snapshot, c.Config.Base, c.Config.ProxyKeys())
}

// Page resolves the page serving the document at urlPath.
func (c *Context) Page(urlPath string) config.Page {
	name := strings.TrimPrefix(pages.StripBase(urlPath, c.Config.Base), "/")
	return pages.Resolve(name, c.Snapshot)
}

// TransformHTML renders the document requested at urlPath.
func (c *Context) TransformHTML(html, urlPath string) (render.Result, error) {
	page := c.Page(urlPath)
	entry := page.Entry
	if entry == "" {
		entry = c.entry
	}
	return c.pipeline.Transform(html, page, entry)
}

// CloseBundle flattens the build output. It runs once, after every file has
// been written.
func (c *Context) CloseBundle() error {
	return flatten.Run(c.Config.OutRoot(), c.Snapshot.OutputDirs())
}

// Inputs is the set of templates a build renders, keyed like the bundler
// input. Without a multi-entry input it is the default template.
func (c *Context) Inputs() pages.Input {
	if len(c.Config.Input) > 0 {
		return pages.Input(c.Config.Input)
	}
	return pages.Input{
		pages.EntryKey(c.template): pages.TemplatePath(config.Page{Template: c.template}, c.Config.Root),
	}
}

// Entries lists the distinct, normalized entry scripts pages inject.
func (c *Context) Entries() []string {
	seen := make(map[string]bool)
	var entries []string
	add := func(entry string) {
		if entry == "" {
			return
		}
		entry = render.NormalizeEntry(entry)
		if !seen[entry] {
			seen[entry] = true
			entries = append(entries, entry)
		}
	}

	add(c.entry)
	for _, page := range c.Snapshot.Effective() {
		add(page.Entry)
	}
	sort.Strings(entries)
	return entries
}

// WithEntryURLs returns a copy of c whose injected scripts point at the
// given URLs instead of the entry sources.
func (c *Context) WithEntryURLs(urls map[string]string) *Context {
	pipeline := *c.pipeline
	pipeline.EntryURL = func(entry string) string {
		if url, ok := urls[entry]; ok {
			return url
		}
		return entry
	}

	next := *c
	next.pipeline = &pipeline
	return &next
}
