package javascript

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/pkg/errors"
)

var engines = []api.Engine{
	{Name: api.EngineChrome, Version: "100"},
	{Name: api.EngineFirefox, Version: "100"},
	{Name: api.EngineSafari, Version: "15"},
	{Name: api.EngineEdge, Version: "100"},
}

type BundleOptions struct {
	Root      string // project root entry paths are relative to
	OutRoot   string // build output directory
	AssetsDir string // directory under OutRoot receiving the bundles
	Base      string // public base URL
	Minify    bool
}

// BundleEntries bundles every entry script into OutRoot/AssetsDir and returns
// the public URL of each bundle keyed by entry.
func BundleEntries(opts BundleOptions, entries []string) (map[string]string, error) {
	if opts.AssetsDir == "" {
		opts.AssetsDir = "assets"
	}
	outDir := filepath.Join(opts.OutRoot, opts.AssetsDir)
	if err := os.MkdirAll(outDir, os.ModePerm); err != nil {
		return nil, errors.WithStack(err)
	}

	emitted := make(map[string]string, len(entries))
	for _, entry := range entries {
		result := api.Build(api.BuildOptions{
			EntryPoints:       []string{sourcePath(opts.Root, entry)},
			Bundle:            true,
			Format:            api.FormatESModule,
			MinifyWhitespace:  opts.Minify,
			MinifyIdentifiers: opts.Minify,
			MinifySyntax:      opts.Minify,
			Engines:           engines,
			Sourcemap:         api.SourceMapExternal,
			Write:             false,
			Outdir:            outDir,
		})

		if len(result.Errors) > 0 {
			return nil, buildError(entry, result.Errors)
		}

		// Separate files with and without .map extension
		var regularFiles []api.OutputFile
		var mapFiles []api.OutputFile

		for _, out := range result.OutputFiles {
			ext := filepath.Ext(out.Path)
			if strings.EqualFold(ext, ".map") {
				mapFiles = append(mapFiles, out)
			} else {
				regularFiles = append(regularFiles, out)
			}
		}

		// Sources first so every map finds the hash of its source
		sortedFiles := append(regularFiles, mapFiles...)

		srcToHash := make(map[string]string)

		for _, out := range sortedFiles {
			dir := filepath.Dir(out.Path)
			base := filepath.Base(out.Path)
			isMap := strings.EqualFold(filepath.Ext(base), ".map")
			sourceName := base
			if isMap {
				sourceName = base[:len(base)-len(".map")]
			}
			ext := filepath.Ext(sourceName)
			stem := strings.TrimSuffix(sourceName, ext)

			var hashForFileName string
			if isMap {
				hashForFileName = srcToHash[sourceName]
				if hashForFileName == "" {
					return nil, errors.Errorf("source map %s can not find hash for its source file", base)
				}
			} else {
				safeHash := strings.ReplaceAll(out.Hash, "/", "")
				srcToHash[sourceName] = safeHash
				hashForFileName = safeHash
			}

			name := fmt.Sprintf("%s_%s%s", stem, hashForFileName, ext)
			if isMap {
				name += ".map"
			}
			newPath := filepath.Join(dir, name)

			contents := out.Contents
			switch {
			case isMap:
			case ext == ".css":
				contents = append(contents, []byte(fmt.Sprintf("\n/*# sourceMappingURL=%s.map */", name))...)
			default:
				contents = append(contents, []byte(fmt.Sprintf("\n//# sourceMappingURL=%s.map", name))...)
			}

			if err := os.WriteFile(newPath, contents, 0644); err != nil {
				return nil, errors.WithStack(err)
			}

			if !isMap && ext == ".js" {
				emitted[entry] = path.Join(opts.Base, opts.AssetsDir, name)
			}
		}
	}

	return emitted, nil
}

// Serve bundles a single script for the dev server, with an inline source map.
func Serve(root, entry string) ([]byte, error) {
	result := api.Build(api.BuildOptions{
		EntryPoints: []string{sourcePath(root, entry)},
		Bundle:      true,
		Format:      api.FormatESModule,
		Engines:     engines,
		Sourcemap:   api.SourceMapInline,
		Write:       false,
		Outdir:      filepath.Join(root, ".htmlpages"),
	})

	if len(result.Errors) > 0 {
		return nil, buildError(entry, result.Errors)
	}

	for _, out := range result.OutputFiles {
		if filepath.Ext(out.Path) == ".js" {
			return out.Contents, nil
		}
	}
	return nil, errors.Errorf("esbuild produced no script for %s", entry)
}

func sourcePath(root, entry string) string {
	return filepath.Join(root, filepath.FromSlash(strings.TrimPrefix(entry, "/")))
}

func buildError(entry string, messages []api.Message) error {
	msg := messages[0]
	if msg.Location != nil {
		return errors.Errorf("esbuild %s: %s:%d:%d: %s", entry, msg.Location.File, msg.Location.Line, msg.Location.Column, msg.Text)
	}
	return errors.Errorf("esbuild %s: %s", entry, msg.Text)
}
