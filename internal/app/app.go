// Package app implements the application layer for tome.
package app

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"go.trai.ch/tome/internal/adapters/watcher" //nolint:depguard // Debounce window shared with the watcher adapter
	"go.trai.ch/tome/internal/core/domain"
	"go.trai.ch/tome/internal/core/ports"
	"go.trai.ch/tome/internal/engine/builder"
)

// DocumentBuilder runs one build of a documentation project.
type DocumentBuilder interface {
	Build(ctx context.Context, opts builder.Options) (*domain.BuildReport, error)
}

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	builder      DocumentBuilder
	walker       ports.SourceWalker
	parser       ports.Parser
	watchers     ports.WatcherFactory
	metrics      ports.MetricsRecorder
	logger       ports.Logger
	stdout       io.Writer
	stderr       io.Writer
	debounce     time.Duration
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	docBuilder DocumentBuilder,
	walker ports.SourceWalker,
	parser ports.Parser,
	watchers ports.WatcherFactory,
	metrics ports.MetricsRecorder,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		builder:      docBuilder,
		walker:       walker,
		parser:       parser,
		watchers:     watchers,
		metrics:      metrics,
		logger:       log,
		stdout:       os.Stdout,
		stderr:       os.Stderr,
		debounce:     watcher.DefaultDebounceWindow,
	}
}

// WithOutput redirects the report output of the App.
// This is primarily used for testing to capture output.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	return a
}

// WithDebounce sets the quiet period the watch mode waits for before rebuilding.
func (a *App) WithDebounce(window time.Duration) *App {
	a.debounce = window
	return a
}

type levelSetter interface {
	SetLevel(level slog.Level)
	SetJSON(enable bool)
}

// ConfigureLogging switches the logger to debug output or JSON records when the
// logger supports it.
func (a *App) ConfigureLogging(verbose, jsonOutput bool) {
	l, ok := a.logger.(levelSetter)
	if !ok {
		return
	}
	if verbose {
		l.SetLevel(slog.LevelDebug)
	}
	l.SetJSON(jsonOutput)
}
