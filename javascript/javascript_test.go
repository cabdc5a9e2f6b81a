package javascript

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeScripts(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	src := filepath.Join(root, "src")
	if err := os.MkdirAll(src, 0755); err != nil {
		t.Fatal(err)
	}
	files := map[string]string{
		"greet.js": "export const greet = (name) => `hello ${name}`;\n",
		"main.js":  "import { greet } from './greet.js';\nconsole.log(greet('pages'));\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(src, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestServe(t *testing.T) {
	root := writeScripts(t)

	out, err := Serve(root, "/src/main.js")
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if !strings.Contains(string(out), "hello") {
		t.Errorf("expected bundled import, got %s", out)
	}

	if _, err := Serve(root, "/src/missing.js"); err == nil {
		t.Errorf("expected an error for a missing entry")
	}
}

func TestBundleEntries(t *testing.T) {
	root := writeScripts(t)
	outRoot := filepath.Join(root, "dist")

	emitted, err := BundleEntries(BundleOptions{Root: root, OutRoot: outRoot, Base: "/"}, []string{"/src/main.js"})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	url, ok := emitted["/src/main.js"]
	if !ok {
		t.Fatalf("no bundle emitted: %v", emitted)
	}
	if !strings.HasPrefix(url, "/assets/main_") || !strings.HasSuffix(url, ".js") {
		t.Errorf("unexpected url %s", url)
	}

	file := filepath.Join(outRoot, filepath.FromSlash(strings.TrimPrefix(url, "/")))
	content, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("bundle not written: %v", err)
	}
	if !strings.Contains(string(content), "sourceMappingURL="+filepath.Base(file)+".map") {
		t.Errorf("expected source map comment in %s", content)
	}
	if _, err := os.Stat(file + ".map"); err != nil {
		t.Errorf("source map not written: %v", err)
	}
}
