package commands

import (
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/tome/internal/core/domain"
)

func (c *CLI) newSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <terms...>",
		Short: "Search the pages of a built output directory",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")
			_, err := c.app.Search(output, strings.Join(args, " "))
			return err
		},
	}
	cmd.Flags().StringP("output", "o", domain.DefaultOutputDir, "Output directory")
	return cmd
}
