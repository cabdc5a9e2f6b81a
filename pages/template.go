package pages

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ZacxDev/go-html-pages/config"
	"github.com/pkg/errors"
)

var ErrTemplateNotFound = errors.New("template not found")

type TemplateNotFoundError struct {
	Path string
}

func (e *TemplateNotFoundError) Error() string {
	return "template not found at " + e.Path
}

func (e *TemplateNotFoundError) Is(target error) bool {
	return target == ErrTemplateNotFound
}

// TemplatePath is the file a page's template refers to under root.
func TemplatePath(page config.Page, root string) string {
	template := filepath.ToSlash(page.Template)
	if !strings.HasPrefix(template, ".") {
		template = "./" + template
	}
	return filepath.Join(root, filepath.FromSlash(template))
}

// ReadHTML loads a page's template from disk.
func ReadHTML(page config.Page, root string) (string, error) {
	file := TemplatePath(page, root)

	info, err := os.Stat(file)
	if os.IsNotExist(err) || (err == nil && info.IsDir()) {
		return "", errors.WithStack(&TemplateNotFoundError{Path: file})
	}
	if err != nil {
		return "", errors.WithStack(err)
	}

	content, err := os.ReadFile(file)
	if err != nil {
		return "", errors.WithStack(err)
	}
	return string(content), nil
}
