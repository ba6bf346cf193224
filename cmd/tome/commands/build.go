package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/tome/internal/app"
	"go.trai.ch/tome/internal/core/domain"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the documentation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Build(cmd.Context(), buildOptions(cmd))
		},
	}
	addBuildFlags(cmd)
	return cmd
}

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Build the documentation and rebuild when sources change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Watch(cmd.Context(), buildOptions(cmd))
		},
	}
	addBuildFlags(cmd)
	return cmd
}

func addBuildFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("source", "s", domain.DefaultSourceDir, "Source directory")
	cmd.Flags().StringP("output", "o", domain.DefaultOutputDir, "Output directory")
	cmd.Flags().IntP("jobs", "j", 0, "Number of parallel jobs (0 uses the configuration or all CPUs)")
	cmd.Flags().Bool("clean", false, "Clean the output directory before building")
	cmd.Flags().Bool("incremental", false, "Reuse cached documents from previous builds")
	cmd.Flags().BoolP("fail-on-warning", "W", false, "Turn warnings into errors")
	cmd.Flags().StringP("warning-file", "w", "", "Write warnings (and errors) to the given file")
	cmd.Flags().String("metrics-file", "", "Write build metrics in Prometheus text format to the given file")
}

func buildOptions(cmd *cobra.Command) app.BuildOptions {
	source, _ := cmd.Flags().GetString("source")
	output, _ := cmd.Flags().GetString("output")
	jobs, _ := cmd.Flags().GetInt("jobs")
	clean, _ := cmd.Flags().GetBool("clean")
	incremental, _ := cmd.Flags().GetBool("incremental")
	failOnWarning, _ := cmd.Flags().GetBool("fail-on-warning")
	warningFile, _ := cmd.Flags().GetString("warning-file")
	metricsFile, _ := cmd.Flags().GetString("metrics-file")
	configPath, _ := cmd.Flags().GetString("config")

	return app.BuildOptions{
		SourceDir:     source,
		OutputDir:     output,
		ConfigPath:    configPath,
		Jobs:          jobs,
		Clean:         clean,
		Incremental:   incremental,
		FailOnWarning: failOnWarning,
		WarningFile:   warningFile,
		MetricsFile:   metricsFile,
	}
}
