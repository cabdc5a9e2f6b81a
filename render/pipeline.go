package render

import (
	"log/slog"
	"strings"

	"github.com/ZacxDev/go-html-pages/config"
	"github.com/gobuffalo/plush"
	"github.com/pkg/errors"
)

var ErrRender = errors.New("template render failed")

// RenderError wraps a failure of the template engine.
type RenderError struct {
	Err error
}

func (e *RenderError) Error() string {
	return "error rendering template: " + e.Err.Error()
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

func (e *RenderError) Is(target error) bool {
	return target == ErrRender
}

// Result is a transformed document. Tags are left for the host to splice.
type Result struct {
	HTML string
	Tags []config.Tag
}

// Pipeline renders page templates. The maps are shared by every call and must
// not be modified once the pipeline is in use.
type Pipeline struct {
	Env     map[string]interface{}
	Define  map[string]interface{}
	DotEnv  map[string]string
	Verbose bool
	Logger  *slog.Logger

	// EntryURL maps a normalized entry path to the URL that serves it.
	// Nil serves the entry path as is.
	EntryURL func(entry string) string
}

// Data merges the template variables for page. Later sources win: build env,
// defines, .env values, page data.
func (p *Pipeline) Data(page config.Page) map[string]interface{} {
	data := make(map[string]interface{})
	for k, v := range p.Env {
		data[k] = v
	}
	for k, v := range p.Define {
		data[k] = v
	}
	for k, v := range p.DotEnv {
		data[k] = v
	}
	for k, v := range page.InjectOptions.Data {
		data[k] = v
	}
	return data
}

// Transform renders raw for page and, when entry is set, replaces the
// document's module scripts with a single script loading entry.
func (p *Pipeline) Transform(raw string, page config.Page, entry string) (Result, error) {
	out, err := Render(raw, p.Data(page), page.InjectOptions.RenderOptions)
	if err != nil {
		return Result{}, err
	}

	if entry != "" {
		var removed []string
		out, removed = RemoveModuleScripts(out)
		if p.Verbose && len(removed) > 0 {
			p.logger().Warn("entry is configured, existing module scripts were removed; you may also delete them from the template",
				"template", page.Template,
				"removed", strings.Join(removed, ", "),
			)
		}

		src := NormalizeEntry(entry)
		if p.EntryURL != nil {
			src = p.EntryURL(src)
		}
		out = InjectEntry(out, src)
	}

	return Result{
		HTML: out,
		Tags: page.InjectOptions.Tags,
	}, nil
}

func (p *Pipeline) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}

// Render executes raw as a plush template. Supported options are
// rmWhitespace, which trims every line and drops blank ones first, and
// localsName, the name the whole data map is exposed under ("locals").
func Render(raw string, data map[string]interface{}, opts map[string]interface{}) (string, error) {
	if trim, _ := opts["rmWhitespace"].(bool); trim {
		raw = trimLines(raw)
	}

	// plush keeps the map it is given, hand it a copy.
	vars := make(map[string]interface{}, len(data)+1)
	for k, v := range data {
		vars[k] = v
	}

	localsName := "locals"
	if name, ok := opts["localsName"].(string); ok && name != "" {
		localsName = name
	}
	if _, taken := vars[localsName]; !taken {
		vars[localsName] = data
	}

	ctx := plush.NewContextWith(vars)
	setHelpers(ctx, data)

	template, err := plush.Parse(raw)
	if err != nil {
		return "", errors.WithStack(&RenderError{Err: err})
	}

	out, err := template.Exec(ctx)
	if err != nil {
		return "", errors.WithStack(&RenderError{Err: err})
	}
	return out, nil
}

func trimLines(raw string) string {
	lines := strings.Split(raw, "\n")
	kept := lines[:0]
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
