package cmd

import (
	"fmt"
	"log"
	"net/http"
	"path/filepath"

	"github.com/ZacxDev/go-html-pages/handlers"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the development server",
	Run: func(cmd *cobra.Command, args []string) {
		port, _ := cmd.Flags().GetString("port")

		hub := handlers.NewHub(logger)
		router, err := setupRouter(cmd, hub)
		if err != nil {
			log.Fatalf("Error setting up router: %v", err)
		}
		server := handlers.NewReloadable(router)

		configPath, _ := cmd.Flags().GetString("config")
		watcher, err := watchConfig(configPath, func() {
			router, err := setupRouter(cmd, hub)
			if err != nil {
				logger.Error("config reload failed, keeping previous configuration", "error", err)
				return
			}
			server.Store(router)
			hub.Broadcast("reload")
			logger.Info("configuration reloaded", "file", configPath)
		})
		if err != nil {
			log.Fatalf("Error watching %s: %v", configPath, err)
		}
		defer watcher.Close()

		fmt.Printf("Starting server on port %s\n", port)
		log.Fatal(http.ListenAndServe(":"+port, server))
	},
}

func setupRouter(cmd *cobra.Command, hub *handlers.Hub) (http.Handler, error) {
	pc, err := loadContext(cmd, "serve")
	if err != nil {
		return nil, err
	}
	return handlers.SetupRouter(pc, hub, logger)
}

// watchConfig calls reload whenever the project file is written or replaced.
// The parent directory is watched so editors that save by rename are seen.
func watchConfig(configPath string, reload func()) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(configPath)
	if err != nil {
		watcher.Close()
		return nil, err
	}
	err = watcher.Add(filepath.Dir(abs))
	if err != nil {
		watcher.Close()
		return nil, err
	}

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != abs {
					continue
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
					reload()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("config watcher error", "error", err)
			}
		}
	}()

	return watcher, nil
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "9010", "Port to run the server on")
}
