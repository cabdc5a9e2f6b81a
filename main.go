package main

import (
	"github.com/ZacxDev/go-html-pages/cmd"
	"go.uber.org/automaxprocs/maxprocs"
)

func main() {
	// Flattening moves files concurrently; size GOMAXPROCS to the container.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))

	cmd.Execute()
}
