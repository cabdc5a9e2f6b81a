// Package flatten moves generated HTML out of nested template directories
// into the root of the build output.
package flatten

import (
	"os"
	"path"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Run moves every *.html file found directly inside dirs (relative to
// outRoot) up to outRoot, replacing files of the same name, then removes
// the dirs left empty. Moves run concurrently, as do removals; the first
// failure of a wave is returned once the whole wave has finished.
func Run(outRoot string, dirs []string) error {
	files, err := Find(outRoot, dirs)
	if err != nil {
		return err
	}

	var moves errgroup.Group
	for _, file := range files {
		file := file
		moves.Go(func() error {
			src := filepath.Join(outRoot, filepath.FromSlash(file))
			dst := filepath.Join(outRoot, path.Base(file))
			return move(src, dst)
		})
	}
	if err := moves.Wait(); err != nil {
		return err
	}

	var removals errgroup.Group
	for _, dir := range dirs {
		dir := dir
		removals.Go(func() error {
			return removeIfEmpty(filepath.Join(outRoot, filepath.FromSlash(dir)))
		})
	}
	return removals.Wait()
}

// Find lists the HTML files directly inside dirs, as slash separated paths
// relative to outRoot.
func Find(outRoot string, dirs []string) ([]string, error) {
	fsys := os.DirFS(outRoot)

	var files []string
	for _, dir := range dirs {
		pattern := path.Join(filepath.ToSlash(dir), "*.html")
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, errors.Wrapf(err, "error matching %s", pattern)
		}
		files = append(files, matches...)
	}
	return files, nil
}

func move(src, dst string) error {
	if src == dst {
		return nil
	}
	if err := os.Rename(src, dst); err != nil {
		return errors.WithStack(err)
	}
	return nil
}

func removeIfEmpty(dir string) error {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.WithStack(err)
	}
	if !info.IsDir() {
		return nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return errors.WithStack(err)
	}
	if len(entries) > 0 {
		return nil
	}

	if err := os.Remove(dir); err != nil {
		return errors.WithStack(err)
	}
	return nil
}
