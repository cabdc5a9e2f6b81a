package cmd

import (
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/ZacxDev/go-html-pages/config"
	"github.com/ZacxDev/go-html-pages/javascript"
	"github.com/ZacxDev/go-html-pages/pages"
	"github.com/ZacxDev/go-html-pages/plugin"
	"github.com/ZacxDev/go-html-pages/render"
	"github.com/ZacxDev/go-html-pages/utils"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the pages into the output directory",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Building pages...")

		pc, err := loadContext(cmd, "build")
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		err = build(pc)
		if err != nil {
			fmt.Printf("Error building pages: %+v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Pages built successfully in %s\n", pc.Config.OutRoot())
	},
}

func build(pc *plugin.Context) error {
	outRoot := pc.Config.OutRoot()
	err := os.MkdirAll(outRoot, os.ModePerm)
	if err != nil {
		return errors.WithStack(err)
	}

	// Copy public files
	err = copyPublic(filepath.Join(pc.Config.Root, "public"), outRoot)
	if err != nil {
		return err
	}

	// Bundle entry scripts first so pages can point at the hashed files
	urls, err := javascript.BundleEntries(javascript.BundleOptions{
		Root:    pc.Config.Root,
		OutRoot: outRoot,
		Base:    pc.Config.Base,
		Minify:  pc.Config.Mode == "production",
	}, pc.Entries())
	if err != nil {
		return err
	}
	for entry, url := range urls {
		fmt.Printf("Bundled %s -> %s\n", entry, url)
	}
	pc = pc.WithEntryURLs(urls)

	inputs := pc.Inputs()
	for _, key := range inputs.Keys() {
		err := generatePage(pc, inputs[key])
		if err != nil {
			return err
		}
	}

	err = pc.CloseBundle()
	if err != nil {
		return err
	}

	if pc.Config.Origin != "" {
		routes, err := utils.PageRoutes(outRoot, pc.Config.Base)
		if err != nil {
			return err
		}
		err = utils.GenerateSitemap(outRoot, pc.Config.Origin, routes)
		if err != nil {
			return err
		}
		fmt.Println("Generated sitemap.xml")
	}

	return nil
}

// generatePage renders one template into the output directory, at the same
// relative path it has under the project root.
func generatePage(pc *plugin.Context, template string) error {
	rel, err := filepath.Rel(pc.Config.Root, template)
	if err != nil {
		return errors.WithStack(err)
	}
	rel = filepath.ToSlash(rel)

	raw, err := pages.ReadHTML(config.Page{Template: rel}, pc.Config.Root)
	if err != nil {
		return err
	}

	result, err := pc.TransformHTML(raw, path.Join(pc.Config.Base, rel))
	if err != nil {
		return errors.Wrapf(err, "error transforming %s", rel)
	}

	filePath := filepath.Join(pc.Config.OutRoot(), filepath.FromSlash(rel))
	err = os.MkdirAll(filepath.Dir(filePath), os.ModePerm)
	if err != nil {
		return errors.WithStack(err)
	}

	err = os.WriteFile(filePath, []byte(render.ApplyTags(result.HTML, result.Tags)), 0644)
	if err != nil {
		return errors.WithStack(err)
	}

	fmt.Printf("Generated %s\n", filePath)
	return nil
}

func init() {
	rootCmd.AddCommand(buildCmd)
}

func copyPublic(publicDir, outRoot string) error {
	_, err := os.Stat(publicDir)
	if os.IsNotExist(err) {
		return nil
	}

	err = filepath.Walk(publicDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(publicDir, path)
		if err != nil {
			return err
		}
		destPath := filepath.Join(outRoot, rel)
		err = os.MkdirAll(filepath.Dir(destPath), os.ModePerm)
		if err != nil {
			return err
		}
		return copyFile(path, destPath)
	})
	return errors.WithStack(err)
}

func copyFile(src, dst string) error {
	input, err := os.ReadFile(src)
	if err != nil {
		return err
	}

	err = os.WriteFile(dst, input, 0644)
	if err != nil {
		return err
	}

	return nil
}
