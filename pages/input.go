package pages

import (
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/ZacxDev/go-html-pages/config"
)

var whitespace = regexp.MustCompile(`\s+`)

// Input maps entry keys to absolute template paths.
type Input map[string]string

// Keys returns the entry keys sorted.
func (in Input) Keys() []string {
	keys := make([]string, 0, len(in))
	for key := range in {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// BuildInput derives the multi-entry input for the bundler. It returns nil
// for a single-page build whose template sits at the project root, in which
// case the bundler's own default input applies.
func BuildInput(root string, mode BuildMode, opts config.HTMLOptions) Input {
	if mode == MultiPage {
		templates := make([]string, 0, len(opts.Pages))
		for _, page := range opts.Pages {
			templates = append(templates, page.Template)
		}
		return MultiPageInput(root, templates)
	}

	template := opts.Template
	if template == "" {
		template = config.DefaultTemplate
	}
	return SinglePageInput(root, template)
}

// MultiPageInput keys every template by EntryKey. Templates sharing a key
// overwrite one another, last one wins.
func MultiPageInput(root string, templates []string) Input {
	input := make(Input, len(templates))
	for _, template := range templates {
		input[EntryKey(template)] = absTemplate(root, template)
	}
	return input
}

func SinglePageInput(root, template string) Input {
	if ignoredDirs[path.Dir(filepath.ToSlash(template))] {
		return nil
	}
	return Input{stripExt(path.Base(filepath.ToSlash(template))): absTemplate(root, template)}
}

// EntryKey derives the bundler entry key of a template: its directory with
// whitespace removed and slashes turned into dashes, or the bare file name
// when the template lives at the root or in public/.
func EntryKey(template string) string {
	template = filepath.ToSlash(template)
	dir := path.Dir(template)
	dir = whitespace.ReplaceAllString(dir, "")
	dir = strings.ReplaceAll(dir, "/", "-")

	if dir == "" || dir == "." || dir == "public" {
		return stripExt(path.Base(template))
	}
	return dir
}

// InputCollisions returns, per entry key claimed by more than one template,
// the templates that claim it.
func InputCollisions(templates []string) map[string][]string {
	claims := make(map[string][]string)
	for _, template := range templates {
		key := EntryKey(template)
		claims[key] = append(claims[key], template)
	}

	collisions := make(map[string][]string)
	for key, claimed := range claims {
		if len(claimed) > 1 {
			collisions[key] = claimed
		}
	}
	return collisions
}

func absTemplate(root, template string) string {
	if filepath.IsAbs(template) {
		return filepath.Clean(template)
	}
	return filepath.Join(root, filepath.FromSlash(template))
}

func stripExt(file string) string {
	return strings.TrimSuffix(file, path.Ext(file))
}
