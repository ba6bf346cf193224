package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/tome/internal/core/domain"
)

func (c *CLI) newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show statistics about the documentation sources",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			source, _ := cmd.Flags().GetString("source")
			_, err := c.app.Stats(cmd.Context(), source)
			return err
		},
	}
	cmd.Flags().StringP("source", "s", domain.DefaultSourceDir, "Source directory")
	return cmd
}
