package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/tome/internal/core/domain"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove the output directory and its build cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			output, _ := cmd.Flags().GetString("output")
			return c.app.Clean(cmd.Context(), output)
		},
	}
	cmd.Flags().StringP("output", "o", domain.DefaultOutputDir, "Output directory")
	return cmd
}
