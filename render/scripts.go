package render

import (
	"io"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
)

// RemoveModuleScripts drops every <script type="module"> element from markup
// and returns the cleaned markup together with the removed elements. All
// other bytes are kept exactly as they were.
func RemoveModuleScripts(markup string) (string, []string) {
	z := html.NewTokenizer(strings.NewReader(markup))

	var out strings.Builder
	var removed []string
	var script *strings.Builder

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if z.Err() != io.EOF {
				return markup, nil
			}
			break
		}

		// TagName and TagAttr lower-case the buffer in place, copy first.
		raw := string(z.Raw())

		if script != nil {
			script.WriteString(raw)
			if tt == html.EndTagToken {
				if name, _ := z.TagName(); strings.EqualFold(string(name), "script") {
					removed = append(removed, script.String())
					script = nil
				}
			}
			continue
		}

		if (tt == html.StartTagToken || tt == html.SelfClosingTagToken) && isModuleScript(z) {
			if tt == html.SelfClosingTagToken {
				removed = append(removed, raw)
				continue
			}
			script = &strings.Builder{}
			script.WriteString(raw)
			continue
		}

		out.WriteString(raw)
	}

	// An unterminated script runs to the end of the document.
	if script != nil {
		removed = append(removed, script.String())
	}

	return out.String(), removed
}

func isModuleScript(z *html.Tokenizer) bool {
	name, hasAttr := z.TagName()
	if !strings.EqualFold(string(name), "script") || !hasAttr {
		return false
	}
	for {
		key, val, more := z.TagAttr()
		if strings.EqualFold(string(key), "type") && strings.EqualFold(strings.TrimSpace(string(val)), "module") {
			return true
		}
		if !more {
			return false
		}
	}
}

// InjectEntry inserts a module script for src right before the first
// closing body tag. Markup without one is returned untouched.
func InjectEntry(markup, src string) string {
	loc := bodyClose.FindStringIndex(markup)
	if loc == nil {
		return markup
	}
	tag := `<script type="module" src="` + html.EscapeString(src) + `"></script>`
	return markup[:loc[0]] + tag + markup[loc[0]:]
}

// NormalizeEntry turns an entry path into a slash separated, cleaned path.
func NormalizeEntry(entry string) string {
	return path.Clean(filepath.ToSlash(entry))
}
