package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// ProductRunner defines the interface for the product command handlers.
// This allows the CLI to be tested independently of the real handlers.
type ProductRunner interface {
	List(ctx context.Context, org string) error
	Create(ctx context.Context, org, name string) error
	Delete(ctx context.Context, org, name string) error
	Update(ctx context.Context, org, name, key, value string) error
}

// BuildCLI creates the full CLI command structure for the application.
// It injects the command handlers (the ProductRunner) into the command
// actions. Parsing is strict: unknown flags and malformed invocations are
// rejected before any handler runs.
func BuildCLI(runner ProductRunner) *cli.Command {
	// The --org flag is common to all product subcommands.
	orgFlag := &cli.StringFlag{
		Name:  "org",
		Usage: "organization to operate on (default: the configured org)",
	}

	listCmd := &cli.Command{
		Name:  "list",
		Usage: "List the organization's products",
		Flags: []cli.Flag{orgFlag},
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() != 0 {
				return usageError("usage: nerves-hub product list")
			}
			return runner.List(ctx, c.String("org"))
		},
	}

	createCmd := &cli.Command{
		Name:  "create",
		Usage: "Create a new product",
		Flags: []cli.Flag{
			orgFlag,
			&cli.StringFlag{
				Name:  "name",
				Usage: "name of the product to create (default: project config, else prompted)",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() != 0 {
				return usageError("usage: nerves-hub product create [--name NAME]")
			}
			return runner.Create(ctx, c.String("org"), c.String("name"))
		},
	}

	deleteCmd := &cli.Command{
		Name:      "delete",
		Usage:     "Delete a product",
		ArgsUsage: "PRODUCT_NAME",
		Flags:     []cli.Flag{orgFlag},
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() != 1 {
				return usageError("usage: nerves-hub product delete PRODUCT_NAME")
			}
			return runner.Delete(ctx, c.String("org"), c.Args().First())
		},
	}

	updateCmd := &cli.Command{
		Name:      "update",
		Usage:     "Update a single field of a product",
		ArgsUsage: "PRODUCT_NAME KEY VALUE",
		Flags:     []cli.Flag{orgFlag},
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() != 3 {
				return usageError("usage: nerves-hub product update PRODUCT_NAME KEY VALUE")
			}
			args := c.Args()
			return runner.Update(ctx, c.String("org"), args.Get(0), args.Get(1), args.Get(2))
		},
	}

	productCmd := &cli.Command{
		Name:     "product",
		Usage:    "Manage products on NervesHub",
		Commands: []*cli.Command{listCmd, createCmd, deleteCmd, updateCmd},
		// Reached with no subcommand or an unrecognized one.
		Action: func(ctx context.Context, c *cli.Command) error {
			return usageError("usage: nerves-hub product <list|create|delete|update>")
		},
	}

	// Assemble the root command.
	rootCmd := &cli.Command{
		Name:     "nerves-hub",
		Usage:    "A CLI tool for interacting with the NervesHub API",
		Commands: []*cli.Command{productCmd},
	}

	return rootCmd
}

// usageError reports a malformed invocation. It surfaces on stderr with a
// non-zero exit and, because parsing fails before dispatch, guarantees no
// network call was attempted.
func usageError(usage string) error {
	return fmt.Errorf("%s", usage)
}
