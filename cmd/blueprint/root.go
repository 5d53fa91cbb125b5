package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/venture-blueprint/internal/domain/catalog"
	"github.com/GriffinCanCode/venture-blueprint/internal/infrastructure/logging"
	"github.com/GriffinCanCode/venture-blueprint/internal/presentation/terminal"
)

// options are the persistent flags shared by every command.
type options struct {
	catalogDir string
	width      int
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "blueprint",
		Short:         "Venture blueprints in the terminal",
		Long:          "Browse the idea catalog, inspect deterministic market dashboards and render generated business blueprints.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.catalogDir, "catalog", "", "directory of extra idea files (yaml, toml, json)")
	root.PersistentFlags().IntVar(&opts.width, "width", 80, "terminal width in columns")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")

	root.AddCommand(
		newIdeasCmd(opts),
		newDashboardCmd(opts),
		newShowCmd(opts),
		newParseCmd(opts),
	)
	return root
}

func (o *options) logger() *logging.Logger {
	if o.verbose {
		return logging.NewDevelopment()
	}
	return logging.Nop()
}

func (o *options) renderer() *terminal.Renderer {
	return terminal.NewRenderer(o.width)
}

// loadCatalog returns the built-in ideas plus those seeded from --catalog.
func (o *options) loadCatalog(ctx context.Context, logger *zap.Logger) (*catalog.Catalog, error) {
	cat := catalog.Default()
	if o.catalogDir == "" {
		return cat, nil
	}
	if _, err := catalog.NewSeeder(cat, o.catalogDir, "", logger).Seed(ctx); err != nil {
		return nil, fmt.Errorf("failed to seed catalog: %w", err)
	}
	return cat, nil
}
