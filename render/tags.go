package render

import (
	"regexp"
	"sort"
	"strings"

	"github.com/ZacxDev/go-html-pages/config"
	"golang.org/x/net/html"
)

const (
	InjectHead        = "head"
	InjectHeadPrepend = "head-prepend"
	InjectBody        = "body"
	InjectBodyPrepend = "body-prepend"
)

var (
	headOpen  = regexp.MustCompile(`(?i)<head(\s[^>]*)?>`)
	headClose = regexp.MustCompile(`(?i)</head>`)
	bodyOpen  = regexp.MustCompile(`(?i)<body(\s[^>]*)?>`)
	bodyClose = regexp.MustCompile(`(?i)</body>`)
)

var voidElements = map[string]bool{
	"base": true, "br": true, "hr": true, "img": true,
	"input": true, "link": true, "meta": true,
}

// ApplyTags splices tags into markup at their InjectTo position. A tag whose
// anchor is missing goes to the start of the document for head positions and
// to the end for body positions.
func ApplyTags(markup string, tags []config.Tag) string {
	groups := make(map[string]string)
	for _, tag := range tags {
		to := tag.InjectTo
		if to == "" {
			to = InjectHeadPrepend
		}
		groups[to] += SerializeTag(tag)
	}

	if s := groups[InjectHeadPrepend]; s != "" {
		markup = insertAfter(markup, headOpen, s, true)
	}
	if s := groups[InjectHead]; s != "" {
		markup = insertBefore(markup, headClose, s, true)
	}
	if s := groups[InjectBodyPrepend]; s != "" {
		markup = insertAfter(markup, bodyOpen, s, false)
	}
	if s := groups[InjectBody]; s != "" {
		markup = insertBefore(markup, bodyClose, s, false)
	}
	return markup
}

// SerializeTag renders tag with its attributes sorted by name.
func SerializeTag(tag config.Tag) string {
	var b strings.Builder
	b.WriteString("<")
	b.WriteString(tag.Tag)

	keys := make([]string, 0, len(tag.Attrs))
	for key := range tag.Attrs {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		b.WriteString(" ")
		b.WriteString(key)
		b.WriteString(`="`)
		b.WriteString(html.EscapeString(tag.Attrs[key]))
		b.WriteString(`"`)
	}
	b.WriteString(">")

	if voidElements[strings.ToLower(tag.Tag)] {
		return b.String()
	}
	b.WriteString(tag.Children)
	b.WriteString("</")
	b.WriteString(tag.Tag)
	b.WriteString(">")
	return b.String()
}

func insertAfter(markup string, anchor *regexp.Regexp, s string, prependOnMiss bool) string {
	loc := anchor.FindStringIndex(markup)
	if loc == nil {
		return fallback(markup, s, prependOnMiss)
	}
	return markup[:loc[1]] + s + markup[loc[1]:]
}

func insertBefore(markup string, anchor *regexp.Regexp, s string, prependOnMiss bool) string {
	loc := anchor.FindStringIndex(markup)
	if loc == nil {
		return fallback(markup, s, prependOnMiss)
	}
	return markup[:loc[0]] + s + markup[loc[0]:]
}

func fallback(markup, s string, prepend bool) string {
	if prepend {
		return s + markup
	}
	return markup + s
}
