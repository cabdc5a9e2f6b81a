package config

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// ClientEnvPrefix selects the .env keys exposed through Resolved.Env.
const ClientEnvPrefix = "VITE_"

// Resolved is the project configuration after defaults have been applied.
// It is created once per build or serve invocation and never mutated.
type Resolved struct {
	Command string
	Root    string
	Base    string
	OutDir  string
	Mode    string
	EnvDir  string
	Origin  string
	Input   map[string]string
	Proxy   map[string]string
	Define  map[string]interface{}
	Env     map[string]interface{}
}

// Resolve applies defaults to c for the given command ("build" or "serve").
func Resolve(c *BuildConfig, command string) (*Resolved, error) {
	root := c.Root
	if root == "" {
		root = "."
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	mode := c.Mode
	if mode == "" {
		mode = "development"
		if command == "build" {
			mode = "production"
		}
	}

	outDir := c.OutDir
	if outDir == "" {
		outDir = "dist"
	}

	envDir := root
	if c.EnvDir != "" {
		envDir = c.EnvDir
		if !filepath.IsAbs(envDir) {
			envDir = filepath.Join(root, envDir)
		}
	}

	base := NormalizeBase(c.Base)

	clientEnv, err := LoadEnv(mode, envDir, ClientEnvPrefix)
	if err != nil {
		return nil, err
	}

	env := map[string]interface{}{
		"BASE_URL": base,
		"MODE":     mode,
		"DEV":      mode != "production",
		"PROD":     mode == "production",
		"SSR":      false,
	}
	for key, value := range clientEnv {
		env[key] = value
	}

	return &Resolved{
		Command: command,
		Root:    root,
		Base:    base,
		OutDir:  outDir,
		Mode:    mode,
		EnvDir:  envDir,
		Origin:  strings.TrimSuffix(c.Origin, "/"),
		Input:   copyStrings(c.Input),
		Proxy:   copyStrings(c.Proxy),
		Define:  copyValues(c.Define),
		Env:     env,
	}, nil
}

// NormalizeBase returns base with a leading and trailing slash. Relative
// bases such as "./" are served from the site root.
func NormalizeBase(base string) string {
	if base == "" || strings.HasPrefix(base, ".") {
		return "/"
	}
	if !strings.HasPrefix(base, "/") {
		base = "/" + base
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base
}

// OutRoot is the absolute output directory.
func (r *Resolved) OutRoot() string {
	if filepath.IsAbs(r.OutDir) {
		return r.OutDir
	}
	return filepath.Join(r.Root, r.OutDir)
}

// ProxyKeys returns the reverse-proxy path prefixes in a stable order.
func (r *Resolved) ProxyKeys() []string {
	keys := make([]string, 0, len(r.Proxy))
	for key := range r.Proxy {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func copyStrings(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func copyValues(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
