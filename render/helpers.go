package render

import (
	"html/template"
	"regexp"
	"strings"

	"github.com/gobuffalo/plush"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
)

var htmlSanitizer = bluemonday.UGCPolicy()

// setHelpers adds the template helpers, replacing plush builtins of the same
// name. Names already used by the page data are left alone.
func setHelpers(ctx *plush.Context, data map[string]interface{}) {
	helpers := map[string]interface{}{
		"startsWith": func(s string, prefix string) bool {
			return strings.HasPrefix(s, prefix)
		},
		"matches": func(s string, pat string) bool {
			ok, err := regexp.MatchString(pat, s)
			return err == nil && ok
		},
		"replace": func(s string, old string, n string) string {
			return strings.Replace(s, old, n, 1)
		},
		"replaceAll": func(s string, old string, n string) string {
			return strings.ReplaceAll(s, old, n)
		},
		"replacePattern": func(s string, pat, n string) string {
			re, err := regexp.Compile(pat)
			if err != nil {
				return s
			}
			return re.ReplaceAllString(s, n)
		},
		"markdown": func(s string) template.HTML {
			extensions := parser.CommonExtensions | parser.AutoHeadingIDs
			p := parser.NewWithExtensions(extensions)
			return template.HTML(htmlSanitizer.SanitizeBytes(markdown.ToHTML([]byte(s), p, nil)))
		},
	}

	for name, helper := range helpers {
		if _, taken := data[name]; !taken {
			ctx.Set(name, helper)
		}
	}
}
