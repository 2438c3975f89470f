// Package product implements the `product` command handlers: listing,
// creating, deleting and updating the products of an organization on the
// NervesHub API.
package product

import (
	"context"
	"errors"
	"fmt"

	"github.com/jjcarstens/nerves-hub-cli/apiclients/nerveshub"
	"github.com/jjcarstens/nerves-hub-cli/config"
)

// ErrNoOrganization reports that no organization could be resolved from
// the --org flag, the environment or the configuration file.
var ErrNoOrganization = errors.New(
	"no organization given: pass --org or set `org` in the configuration file")

// ErrReported marks an error that has already been rendered to the user.
// The process should exit non-zero without printing it again.
var ErrReported = errors.New("remote error already reported")

// API is the set of remote product operations a Runner needs. It is
// implemented by nerveshub.Client.
type API interface {
	ListProducts(ctx context.Context, org string) ([]nerveshub.Product, error)
	CreateProduct(ctx context.Context, org, name string) (nerveshub.Product, error)
	DeleteProduct(ctx context.Context, org, name string) error
	UpdateProduct(ctx context.Context, org, name string, fields map[string]string) (nerveshub.Product, error)
}

// Interactor is the interactive I/O a Runner needs. It is implemented by
// shell.Shell.
type Interactor interface {
	Prompt(message string) (string, error)
	Confirm(message string) (bool, error)
	Info(message string)
	Error(message string)
}

// ConnectFunc produces an authenticated API, performing credential
// resolution (which may itself prompt the user on first run).
type ConnectFunc func(ctx context.Context) (API, error)

// Runner holds the collaborators of the product command handlers. Each
// handler is one synchronous pass: resolve the organization, authenticate,
// make a single remote call and render the outcome.
type Runner struct {
	cfg     *config.Config
	shell   Interactor
	connect ConnectFunc
}

// NewRunner creates a Runner over the given configuration, interactive
// shell and API connector.
func NewRunner(cfg *config.Config, shell Interactor, connect ConnectFunc) *Runner {
	return &Runner{
		cfg:     cfg,
		shell:   shell,
		connect: connect,
	}
}

// resolveOrg returns the organization to operate on: the --org flag value
// if given, else the configured default (which already reflects the
// NERVES_HUB_ORG environment variable).
func (r *Runner) resolveOrg(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if r.cfg.Org != "" {
		return r.cfg.Org, nil
	}
	return "", ErrNoOrganization
}

// report renders a remote failure for the user and marks it reported.
func (r *Runner) report(err error) error {
	r.shell.Error(renderError(err))
	return ErrReported
}

// List fetches and prints the organization's products in server order.
func (r *Runner) List(ctx context.Context, org string) error {
	org, err := r.resolveOrg(org)
	if err != nil {
		return err
	}

	api, err := r.connect(ctx)
	if err != nil {
		return err
	}

	products, err := api.ListProducts(ctx, org)
	if err != nil {
		return r.report(err)
	}

	if len(products) == 0 {
		r.shell.Info("No products have been created.")
		return nil
	}

	r.shell.Info("Products:")
	for _, p := range products {
		r.shell.Info("-----------")
		r.shell.Info(renderProduct(p))
	}
	return nil
}

// Create creates a new product. When name is empty it is resolved through
// the fallback chain: configured default product, project name, project
// application identifier, and finally an interactive prompt. The chain is
// evaluated lazily so the user is only prompted when nothing else yields a
// name.
func (r *Runner) Create(ctx context.Context, org, name string) error {
	org, err := r.resolveOrg(org)
	if err != nil {
		return err
	}

	name, err = r.resolveName(name)
	if err != nil {
		return err
	}

	api, err := r.connect(ctx)
	if err != nil {
		return err
	}

	created, err := api.CreateProduct(ctx, org, name)
	if err != nil {
		return r.report(err)
	}

	r.shell.Info(fmt.Sprintf("Product '%s' created.", created.Name))
	return nil
}

// resolveName runs the product-name fallback chain, short-circuiting at
// the first source returning a non-empty value.
func (r *Runner) resolveName(flagValue string) (string, error) {
	sources := []func() (string, error){
		func() (string, error) { return flagValue, nil },
		func() (string, error) { return r.cfg.Product, nil },
		func() (string, error) { return r.cfg.Project.Name, nil },
		func() (string, error) { return r.cfg.Project.App, nil },
		func() (string, error) { return r.shell.Prompt("Product name:") },
	}
	for _, source := range sources {
		name, err := source()
		if err != nil {
			return "", err
		}
		if name != "" {
			return name, nil
		}
	}
	return "", errors.New("no product name given")
}

// Delete deletes the named product after a yes/no confirmation. A
// non-affirmative answer is a silent no-op: no output, no remote call.
func (r *Runner) Delete(ctx context.Context, org, name string) error {
	org, err := r.resolveOrg(org)
	if err != nil {
		return err
	}

	confirmed, err := r.shell.Confirm(fmt.Sprintf("Delete product '%s'?", name))
	if err != nil {
		return err
	}
	if !confirmed {
		return nil
	}

	api, err := r.connect(ctx)
	if err != nil {
		return err
	}

	if err := api.DeleteProduct(ctx, org, name); err != nil {
		return r.report(err)
	}

	r.shell.Info("Product deleted successfully.")
	return nil
}

// Update sets a single field on the named product and prints the server's
// post-update representation of the record. The server, not the local
// input, is the source of truth for what is printed.
func (r *Runner) Update(ctx context.Context, org, name, key, value string) error {
	org, err := r.resolveOrg(org)
	if err != nil {
		return err
	}

	api, err := r.connect(ctx)
	if err != nil {
		return err
	}

	updated, err := api.UpdateProduct(ctx, org, name, map[string]string{key: value})
	if err != nil {
		return r.report(err)
	}

	r.shell.Info("Product updated:")
	r.shell.Info(renderProduct(updated))
	return nil
}
