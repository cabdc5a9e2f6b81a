package pages

import (
	"path"
	"strings"

	"github.com/ZacxDev/go-html-pages/config"
)

type MatchKind int

const (
	MatchPrefix MatchKind = iota
	MatchCatchAll
)

// Matcher decides whether a rewrite rule applies to a request path.
type Matcher struct {
	Kind   MatchKind
	Prefix string
}

func Prefix(p string) Matcher {
	return Matcher{Kind: MatchPrefix, Prefix: p}
}

func CatchAll() Matcher {
	return Matcher{Kind: MatchCatchAll, Prefix: "/"}
}

func (m Matcher) Match(pathname string) bool {
	switch m.Kind {
	case MatchCatchAll:
		return strings.HasPrefix(pathname, "/")
	case MatchPrefix:
		return strings.HasPrefix(pathname, m.Prefix)
	}
	return false
}

func (m Matcher) String() string {
	return m.Prefix + "*"
}

// Rule rewrites a browser navigation to the template of Page.
type Rule struct {
	Match Matcher
	Page  config.Page

	base      string
	proxyKeys []string
}

// Target is the template path the rule rewrites to.
func (r Rule) Target() string {
	return ResolveURLPath(r.base, r.Page.Template)
}

// Resolve returns the path pathname is rewritten to. Paths under a proxy
// prefix are passed through with the base stripped so the proxy sees them.
func (r Rule) Resolve(pathname string) string {
	stripped := StripBase(pathname, r.base)
	target := r.Target()

	if stripped == "/" {
		return target
	}

	for _, key := range r.proxyKeys {
		if strings.HasPrefix(pathname, ResolveURLPath(r.base, key)) {
			return stripped
		}
		if strings.HasPrefix(key, "/") && strings.HasPrefix(stripped, key) {
			return stripped
		}
	}
	return target
}

type Rules []Rule

// Resolve applies the first rule matching pathname.
func (rs Rules) Resolve(pathname string) (string, bool) {
	for _, rule := range rs {
		if rule.Match.Match(pathname) {
			return rule.Resolve(pathname), true
		}
	}
	return "", false
}

// BuildRules creates the dev server rewrite rules: one prefix rule per
// non-default page, in configuration order, then a catch-all for the default
// page. The catch-all is always last so specific pages win.
func BuildRules(s Snapshot, base string, proxyKeys []string) Rules {
	keys := make([]string, len(proxyKeys))
	copy(keys, proxyKeys)

	var rules Rules
	var defaultPage *config.Page
	for _, page := range s.Effective() {
		page := page
		if page.Filename == DefaultFilename {
			defaultPage = &page
			continue
		}
		rules = append(rules, Rule{
			Match:     Prefix("/" + page.Filename),
			Page:      page,
			base:      base,
			proxyKeys: keys,
		})
	}

	if defaultPage != nil {
		rules = append(rules, Rule{
			Match:     CatchAll(),
			Page:      *defaultPage,
			base:      base,
			proxyKeys: keys,
		})
	}
	return rules
}

// StripBase replaces a leading base with "/".
func StripBase(pathname, base string) string {
	if base == "" || base == "/" {
		return pathname
	}
	if strings.HasPrefix(pathname, base) {
		return "/" + strings.TrimPrefix(pathname, base)
	}
	return pathname
}

// ResolveURLPath resolves p against base the way a browser resolves a path:
// absolute paths ignore the base.
func ResolveURLPath(base, p string) string {
	if strings.HasPrefix(p, "/") {
		return path.Clean(p)
	}
	if base == "" {
		base = "/"
	}
	return path.Join(base, p)
}
