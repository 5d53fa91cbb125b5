package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newIdeasCmd(opts *options) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "ideas",
		Short: "List the idea catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := opts.logger()
			defer logger.Close()

			cat, err := opts.loadCatalog(cmd.Context(), logger.Logger)
			if err != nil {
				return err
			}

			ideas := cat.List(category)
			if len(ideas) == 0 {
				return fmt.Errorf("no ideas in category %q", category)
			}
			fmt.Fprint(cmd.OutOrStdout(), opts.renderer().Ideas(ideas))
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "only list ideas of this category")
	return cmd
}
