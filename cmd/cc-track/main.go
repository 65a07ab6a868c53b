// Package main is the entry point for the cc-track CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/cahaseler/cc-track/internal/app"
	"github.com/cahaseler/cc-track/internal/cli"
	"github.com/cahaseler/cc-track/internal/domain"
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
	// Get current working directory
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	// Create dependency injection container. Without one, hooks resolve the
	// repository from their input and the status line prints nothing.
	container, err := app.New(cwd)
	if err != nil {
		if !errors.Is(err, domain.ErrNotGitRepository) {
			fmt.Fprintf(os.Stderr, "Warning: failed to initialize: %v\n", err)
		}
		container = nil
	} else {
		defer func() { _ = container.Close() }()
	}

	// Create and execute root command
	rootCmd := cli.NewRootCommand(container, version)
	return rootCmd.Execute()
}
