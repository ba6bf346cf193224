package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/tome/internal/core/domain"
	"go.trai.ch/tome/internal/engine/builder"
	"go.trai.ch/tome/internal/ui/style"
	"go.trai.ch/zerr"
)

// BuildOptions configures a build invocation. Zero values fall back to the
// project configuration.
type BuildOptions struct {
	SourceDir     string
	OutputDir     string
	ConfigPath    string
	Jobs          int
	Clean         bool
	Incremental   bool
	FailOnWarning bool
	WarningFile   string
	MetricsFile   string
}

func (o BuildOptions) withDefaults() BuildOptions {
	if o.SourceDir == "" {
		o.SourceDir = domain.DefaultSourceDir
	}
	if o.OutputDir == "" {
		o.OutputDir = domain.DefaultOutputDir
	}
	return o
}

// Build loads the configuration, runs one build and reports its diagnostics and
// summary. It fails when the build failed, when error reports were produced, or
// when warnings occurred under fail-on-warning.
func (a *App) Build(ctx context.Context, opts BuildOptions) (err error) {
	opts = opts.withDefaults()

	cfg, err := a.configLoader.Load(opts.SourceDir, opts.ConfigPath)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	jobs := cfg.ParallelJobs
	if opts.Jobs != 0 {
		jobs = opts.Jobs
	}
	failOnWarning := opts.FailOnWarning || cfg.FailOnWarning

	if opts.Clean {
		if err := a.Clean(ctx, opts.OutputDir); err != nil {
			return err
		}
	}

	if opts.MetricsFile != "" {
		defer func() {
			if exportErr := a.metrics.Export(opts.MetricsFile); exportErr != nil {
				err = errors.Join(err, exportErr)
			}
		}()
	}

	a.logger.Info(fmt.Sprintf("building %s into %s", opts.SourceDir, opts.OutputDir))
	report, err := a.builder.Build(ctx, builder.Options{
		SourceDir:   opts.SourceDir,
		OutputDir:   opts.OutputDir,
		Jobs:        jobs,
		Incremental: opts.Incremental,
		Config:      cfg,
	})
	if err != nil {
		return zerr.Wrap(err, "build failed")
	}

	a.printDiagnostics(report)
	if opts.WarningFile != "" {
		if err := writeWarningFile(opts.WarningFile, report); err != nil {
			return err
		}
	}
	a.printSummary(report)

	switch {
	case report.HasErrors():
		return zerr.With(zerr.Wrap(domain.ErrBuildExecutionFailed, "build produced errors"), "errors", len(report.Errors))
	case failOnWarning && report.HasWarnings():
		return zerr.Wrap(domain.ErrWarningsAsErrors, fmt.Sprintf("build produced %d warnings", len(report.Warnings)))
	}
	return nil
}

func (a *App) printDiagnostics(report *domain.BuildReport) {
	for _, d := range report.Warnings {
		_, _ = fmt.Fprintln(a.stderr, d.String())
	}
	for _, d := range report.Errors {
		_, _ = fmt.Fprintln(a.stderr, d.String())
	}
}

// writeWarningFile writes every warning followed by every error, one per line.
func writeWarningFile(path string, report *domain.BuildReport) error {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrCreateOutputFailed, err.Error()), "path", path)
	}

	var b strings.Builder
	for _, d := range report.Warnings {
		b.WriteString(d.String())
		b.WriteByte('\n')
	}
	for _, d := range report.Errors {
		b.WriteString(d.String())
		b.WriteByte('\n')
	}

	if err := os.WriteFile(path, []byte(b.String()), domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrWriteOutputFailed, err.Error()), "path", path)
	}
	return nil
}

func (a *App) printSummary(report *domain.BuildReport) {
	warnings, errs := len(report.Warnings), len(report.Errors)

	var headline string
	switch {
	case errs > 0:
		headline = style.Failure(fmt.Sprintf("build finished with problems, %d warnings, %d errors.", warnings, errs))
	case warnings > 0:
		headline = style.Caution(fmt.Sprintf("build succeeded, %d warnings.", warnings))
	default:
		headline = style.Success("build succeeded.")
	}

	rows := [][]string{
		{"Build", report.BuildID},
		{"Files processed", fmt.Sprint(report.FilesProcessed)},
		{"Files skipped", fmt.Sprint(report.FilesSkipped)},
		{"Cache hits", fmt.Sprint(report.CacheHits)},
		{"Warnings", fmt.Sprint(warnings)},
		{"Errors", fmt.Sprint(errs)},
		{"Build time", report.BuildTime.String()},
		{"Output size", fmt.Sprintf("%.2f MB", report.OutputSizeMB)},
	}

	_, _ = fmt.Fprintln(a.stdout, headline)
	_, _ = fmt.Fprintln(a.stdout, renderTable(a.stdout, []string{"Metric", "Value"}, rows, []columnAlignment{alignLeft, alignRight}))
}
