package main

import (
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/venture-blueprint/internal/domain/venture"
	"github.com/GriffinCanCode/venture-blueprint/internal/domain/view"
)

func newDashboardCmd(opts *options) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "dashboard <idea-id>",
		Short: "Show the market dashboard of an idea",
		Long:  "Show the market dashboard of an idea. The numbers are derived from the idea id alone, so they are the same on every run.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := opts.logger()
			defer logger.Close()

			cat, err := opts.loadCatalog(cmd.Context(), logger.Logger)
			if err != nil {
				return err
			}

			idea, err := cat.Get(args[0])
			if err != nil {
				return err
			}
			dash := venture.Compute(idea.ID)

			out := cmd.OutOrStdout()
			if asJSON {
				data, err := sonic.ConfigStd.MarshalIndent(dash, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to encode dashboard: %w", err)
				}
				fmt.Fprintln(out, string(data))
				return nil
			}

			r := opts.renderer()
			fmt.Fprintln(out, r.Header(idea, view.StateReady))
			fmt.Fprintln(out)
			fmt.Fprintln(out, r.Dashboard(dash))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the dashboard as JSON")
	return cmd
}
