package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"go.trai.ch/tome/internal/adapters/watcher" //nolint:depguard // Debouncer shared with the watcher adapter
	"go.trai.ch/tome/internal/core/ports"
	"go.trai.ch/zerr"
)

// Watch runs an incremental build and rebuilds whenever files below the source
// directory change. Build failures are logged and watching continues. It returns
// when ctx is done.
func (a *App) Watch(ctx context.Context, opts BuildOptions) error {
	opts = opts.withDefaults()
	opts.Incremental = true

	a.rebuild(ctx, opts)
	opts.Clean = false

	w, err := a.watchers.NewWatcher()
	if err != nil {
		return zerr.Wrap(err, "failed to create file watcher")
	}
	if err := w.Start(ctx, opts.SourceDir); err != nil {
		_ = w.Stop()
		return zerr.With(zerr.Wrap(err, "failed to watch source directory"), "path", opts.SourceDir)
	}
	a.logger.Info(fmt.Sprintf("watching %s for changes", opts.SourceDir))

	changes := make(chan []string, 1)
	debouncer := watcher.NewDebouncer(a.debounce, func(paths []string) {
		select {
		case changes <- paths:
		case <-ctx.Done():
		}
	})

	filter := newChangeFilter(opts.OutputDir)
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		for event := range w.Events() {
			if filter.relevant(event) {
				debouncer.Add(event.Path)
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			if err := w.Stop(); err != nil {
				a.logger.Warn(fmt.Sprintf("failed to stop file watcher: %v", err))
			}
			<-drained
			return nil
		case paths := <-changes:
			a.logger.Info(fmt.Sprintf("%d file(s) changed, rebuilding", len(paths)))
			for _, p := range paths {
				a.logger.Debug("changed: " + p)
			}
			a.rebuild(ctx, opts)
		}
	}
}

func (a *App) rebuild(ctx context.Context, opts BuildOptions) {
	if err := a.Build(ctx, opts); err != nil && ctx.Err() == nil {
		a.logger.Error(err)
	}
}

// changeFilter drops events that cannot affect the build: anything inside the
// output directory and editor scratch files.
type changeFilter struct {
	outputAbs string
}

func newChangeFilter(outputDir string) changeFilter {
	abs, err := filepath.Abs(outputDir)
	if err != nil {
		abs = filepath.Clean(outputDir)
	}
	return changeFilter{outputAbs: abs}
}

func (f changeFilter) relevant(event ports.WatchEvent) bool {
	name := filepath.Base(event.Path)
	if strings.HasPrefix(name, ".") || strings.HasSuffix(name, "~") {
		return false
	}
	abs, err := filepath.Abs(event.Path)
	if err != nil {
		return true
	}
	if abs == f.outputAbs || strings.HasPrefix(abs, f.outputAbs+string(filepath.Separator)) {
		return false
	}
	return true
}
