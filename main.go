package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	charmlog "github.com/charmbracelet/log"

	"github.com/jjcarstens/nerves-hub-cli/apiclients/nerveshub"
	"github.com/jjcarstens/nerves-hub-cli/config"
	"github.com/jjcarstens/nerves-hub-cli/internal/shell"
	"github.com/jjcarstens/nerves-hub-cli/product"
)

// main is the entry point for the application.
// It loads configuration, wires the interactive shell and API connector
// into the product command handlers, builds the CLI interface and executes
// the command provided by the user.
func main() {
	logger := newLogger()
	sh := shell.New(os.Stdin, os.Stdout, os.Stderr)

	cfg, err := config.Load(config.DefaultUserPath(), ".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// connect authenticates lazily, once per invocation, so commands that
	// never reach the network (bad usage, denied delete) never prompt for
	// credentials either.
	connect := func(ctx context.Context) (product.API, error) {
		token, err := nerveshub.RequestToken(ctx, cfg.APIHost, cfg.TokenPath, sh, logger)
		if err != nil {
			return nil, fmt.Errorf("authentication failed: %w", err)
		}
		return nerveshub.NewClient(token, cfg.APIHost, nil, logger), nil
	}

	runner := product.NewRunner(cfg, sh, connect)

	// Build the CLI command structure, injecting the handlers.
	cmd := BuildCLI(runner)

	// Run the CLI, passing command-line arguments.
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		// Reported errors have already been rendered for the user.
		if !errors.Is(err, product.ErrReported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// newLogger builds the diagnostic logger. Output goes to stderr so it
// never mixes with command output; debug logging is enabled with the
// NERVES_HUB_DEBUG environment variable.
func newLogger() *slog.Logger {
	level := charmlog.WarnLevel
	if os.Getenv("NERVES_HUB_DEBUG") != "" {
		level = charmlog.DebugLevel
	}
	return slog.New(charmlog.NewWithOptions(os.Stderr, charmlog.Options{
		Level:           level,
		ReportTimestamp: false,
	}))
}
