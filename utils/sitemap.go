package utils

import (
	"encoding/xml"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
)

type Sitemap struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	Urls    []Url    `xml:"url"`
}

type Url struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// PageRoutes lists the public routes of the HTML files at the top of outRoot.
// index.html is served as the base itself.
func PageRoutes(outRoot, base string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(outRoot, "*.html"))
	if err != nil {
		return nil, errors.WithStack(err)
	}

	routes := make([]string, 0, len(files))
	for _, file := range files {
		name := filepath.Base(file)
		if name == "index.html" {
			routes = append(routes, base)
			continue
		}
		routes = append(routes, path.Join(base, name))
	}
	sort.Strings(routes)
	return routes, nil
}

func GenerateSitemap(outRoot, origin string, routes []string) error {
	xmlOutput, err := GenerateSitemapContent(origin, routes, time.Now())
	if err != nil {
		return err
	}

	err = os.WriteFile(filepath.Join(outRoot, "sitemap.xml"), []byte(xml.Header+xmlOutput), 0644)
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func GenerateSitemapContent(origin string, routes []string, lastMod time.Time) (string, error) {
	sitemap := Sitemap{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
	}

	for _, route := range routes {
		url := Url{
			Loc:     strings.TrimSuffix(origin, "/") + route,
			LastMod: lastMod.Format("2006-01-02"),
		}
		sitemap.Urls = append(sitemap.Urls, url)
	}

	xmlOutput, err := xml.MarshalIndent(sitemap, "", "  ")
	if err != nil {
		return "", errors.WithStack(err)
	}

	return string(xmlOutput), nil
}
