package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/ZacxDev/go-html-pages/config"
	"github.com/ZacxDev/go-html-pages/plugin"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "htmlpages",
	Short: "htmlpages - HTML templates as build entry points",
	Long:  `htmlpages renders one or more HTML templates into a site: it serves them during development with route fallbacks and builds them into a flat output directory.`,
}

var logger = slog.New(slog.NewTextHandler(os.Stderr, nil))

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "htmlpages.yaml", "Project configuration file")
}

// loadContext reads the project file named by --config and resolves it for
// command.
func loadContext(cmd *cobra.Command, command string) (*plugin.Context, error) {
	configPath, _ := cmd.Flags().GetString("config")
	return resolveContext(configPath, command)
}

func resolveContext(configPath, command string) (*plugin.Context, error) {
	bc, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("error loading config: %v", err)
	}

	p := plugin.New(bc.HTML, logger)
	if input := p.Config(bc); input != nil {
		bc.Input = input
	}

	resolved, err := config.Resolve(bc, command)
	if err != nil {
		return nil, fmt.Errorf("error resolving config: %v", err)
	}

	return p.Resolve(resolved)
}
