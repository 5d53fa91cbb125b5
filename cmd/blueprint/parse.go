package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/venture-blueprint/internal/domain/blueprint"
	"github.com/GriffinCanCode/venture-blueprint/internal/shared/utils"
)

func newParseCmd(opts *options) *cobra.Command {
	var outline bool

	cmd := &cobra.Command{
		Use:   "parse <file|->",
		Short: "Render a markdown file with the blueprint block parser",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			if err := utils.ValidateText(text); err != nil {
				return err
			}

			blocks := blueprint.Parse(text)
			out := cmd.OutOrStdout()
			if outline {
				fmt.Fprintln(out, strings.Join(blueprint.Outline(blocks), "\n"))
				return nil
			}
			fmt.Fprintln(out, opts.renderer().Blocks(blocks))
			return nil
		},
	}

	cmd.Flags().BoolVar(&outline, "outline", false, "print only the section headers")
	return cmd
}

func readInput(stdin io.Reader, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(io.LimitReader(stdin, utils.MaxParseTextSize+1))
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}
