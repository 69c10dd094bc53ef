// Package main is the entry point for the goalpost CLI.
package main

import (
	"fmt"
	"os"

	"github.com/runoshun/goalpost/internal/app"
	"github.com/runoshun/goalpost/internal/cli"
)

// version is set at build time using -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	// Outside a git repository the container falls back to the home data
	// directory, so every command works from anywhere.
	container, err := app.New(cwd)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	rootCmd := cli.NewRootCommand(container, version)
	return rootCmd.Execute()
}
