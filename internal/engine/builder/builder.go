// Package builder implements the build orchestrator: it discovers the sources,
// orders them, processes them on a bounded worker pool, validates the document
// set and runs the finishing steps.
package builder

import (
	"bytes"
	"cmp"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.trai.ch/tome/internal/core/domain"
	"go.trai.ch/tome/internal/core/ports"
	"go.trai.ch/tome/internal/engine/extensions"
	"go.trai.ch/tome/internal/engine/validator"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

const bytesPerMB = 1024 * 1024

// Options configures one build invocation.
type Options struct {
	SourceDir string
	OutputDir string
	// Jobs bounds the processing workers. Zero selects the number of CPUs.
	Jobs int
	// Incremental reuses and refreshes the document cache of OutputDir.
	Incremental bool
	Config      domain.Config
}

// Deps are the collaborators of a Builder. Resolver, Registry and Clock are optional.
type Deps struct {
	Walker    ports.SourceWalker
	Resolver  ports.DependencyResolver
	Parser    ports.Parser
	Renderer  ports.Renderer
	Verifier  ports.OutputVerifier
	Caches    ports.CacheFactory
	Finishers []ports.Finisher
	Registry  *extensions.Registry
	Telemetry ports.Telemetry
	Metrics   ports.MetricsRecorder
	Logger    ports.Logger
	Clock     clockwork.Clock
}

// Builder runs documentation builds.
type Builder struct {
	walker    ports.SourceWalker
	resolver  ports.DependencyResolver
	parser    ports.Parser
	renderer  ports.Renderer
	verifier  ports.OutputVerifier
	caches    ports.CacheFactory
	finishers []ports.Finisher
	registry  *extensions.Registry
	validator *validator.Validator
	telemetry ports.Telemetry
	metrics   ports.MetricsRecorder
	logger    ports.Logger
	clock     clockwork.Clock
}

// New creates a Builder from deps.
func New(deps Deps) *Builder {
	b := &Builder{
		walker:    deps.Walker,
		resolver:  deps.Resolver,
		parser:    deps.Parser,
		renderer:  deps.Renderer,
		verifier:  deps.Verifier,
		caches:    deps.Caches,
		finishers: deps.Finishers,
		registry:  deps.Registry,
		validator: validator.New(),
		telemetry: deps.Telemetry,
		metrics:   deps.Metrics,
		logger:    deps.Logger,
		clock:     deps.Clock,
	}
	if b.resolver == nil {
		b.resolver = NoDependencies{}
	}
	if b.registry == nil {
		b.registry = extensions.NewRegistry()
	}
	if b.clock == nil {
		b.clock = clockwork.NewRealClock()
	}
	return b
}

// Build runs all stages and returns the report of a completed build. Any
// document failure aborts the build with an error wrapping domain.ErrProcessingFailed.
func (b *Builder) Build(ctx context.Context, opts Options) (*domain.BuildReport, error) {
	started := b.clock.Now()

	jobs := opts.Jobs
	if jobs == 0 {
		jobs = runtime.NumCPU()
	}
	if jobs < 0 {
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidParallelism, "build"), "jobs", jobs)
	}

	run := &buildRun{
		Builder: b,
		opts:    opts,
		jobs:    jobs,
		report:  &domain.BuildReport{BuildID: uuid.NewString()},
	}
	err := run.execute(ctx)

	b.metrics.ObserveBuildDuration(b.clock.Since(started))
	b.metrics.IncBuildOutcome(buildOutcome(run.report, err))
	if err != nil {
		return nil, err
	}
	run.report.BuildTime = b.clock.Since(started)
	return run.report, nil
}

func buildOutcome(report *domain.BuildReport, err error) string {
	switch {
	case errors.Is(err, context.Canceled):
		return ports.BuildCanceled
	case err != nil || report.HasErrors():
		return ports.BuildFailed
	case report.HasWarnings():
		return ports.BuildWarning
	default:
		return ports.BuildSuccess
	}
}

// buildRun is the state of one Build call.
type buildRun struct {
	*Builder
	opts      Options
	jobs      int
	stages    domain.StageMachine
	report    *domain.BuildReport
	cache     ports.DocumentCache
	selection extensions.Selection
	docs      []*domain.Document
}

func (r *buildRun) execute(ctx context.Context) (err error) {
	selection, diags := r.registry.Select(r.opts.Config.Extensions, r.configFile())
	r.selection = selection
	r.add(diags...)

	if r.opts.Incremental {
		r.cache, err = r.caches.Open(r.opts.OutputDir, r.opts.Config)
		switch {
		case errors.Is(err, domain.ErrCacheLocked):
			r.logger.Warn(fmt.Sprintf("build cache is locked by another process, building without it: %v", err))
			r.cache, err = nil, nil
		case err != nil:
			return err
		}
	}
	if r.cache != nil {
		defer func() {
			if closeErr := r.cache.Close(); closeErr != nil {
				r.logger.Warn(fmt.Sprintf("failed to close build cache: %v", closeErr))
			}
		}()
	}

	var (
		files []string
		graph *domain.DependencyGraph
	)
	steps := []struct {
		stage domain.BuildStage
		fn    func(context.Context) error
	}{
		{domain.StageDiscovering, func(context.Context) error {
			var derr error
			files, derr = r.walker.Discover(r.opts.SourceDir, r.opts.OutputDir)
			r.logger.Debug(fmt.Sprintf("discovered %d source files", len(files)))
			return derr
		}},
		{domain.StageGraphBuilding, func(ctx context.Context) error {
			var gerr error
			graph, gerr = r.resolverFor(r.opts.Config).Resolve(ctx, r.opts.SourceDir, files)
			if gerr != nil {
				return gerr
			}
			return graph.Validate()
		}},
		{domain.StageProcessing, func(ctx context.Context) error {
			return r.processAll(ctx, graph)
		}},
		{domain.StageValidating, func(context.Context) error {
			r.validate()
			return nil
		}},
		{domain.StageFinishing, r.finish},
		{domain.StageDone, func(context.Context) error {
			r.complete()
			return nil
		}},
	}

	for _, step := range steps {
		if err = r.runStage(ctx, step.stage, step.fn); err != nil {
			return err
		}
	}
	return nil
}

func (r *buildRun) configFile() string {
	if r.opts.Config.Source != "" {
		return r.opts.Config.Source
	}
	return "configuration"
}

func (r *buildRun) resolverFor(cfg domain.Config) ports.DependencyResolver {
	if cfg.ResolveIncludes {
		return NewIncludeResolver(r.parser)
	}
	return r.resolver
}

func (r *buildRun) runStage(ctx context.Context, stage domain.BuildStage, fn func(context.Context) error) error {
	if err := r.stages.Advance(stage); err != nil {
		return err
	}
	r.logger.Debug(fmt.Sprintf("stage %s", stage))

	started := r.clock.Now()
	ctx, vertex := r.telemetry.Record(ctx, stage.String())
	err := fn(ctx)
	vertex.Complete(err)
	r.metrics.ObserveStageDuration(stage.String(), r.clock.Since(started))
	return err
}

// add files diagnostics into the report by severity.
func (r *buildRun) add(diags ...domain.Diagnostic) {
	for _, d := range diags {
		r.metrics.IncDiagnostic(string(d.Severity))
		if d.Severity == domain.SeverityError {
			r.report.Errors = append(r.report.Errors, d)
			continue
		}
		r.report.Warnings = append(r.report.Warnings, d)
	}
}

func (r *buildRun) processAll(ctx context.Context, graph *domain.DependencyGraph) error {
	if err := os.MkdirAll(r.opts.OutputDir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrCreateOutputFailed, err.Error()), "path", r.opts.OutputDir)
	}

	outcomes, err := schedule(ctx, graph, r.jobs, func(ctx context.Context, file string) outcome {
		res := r.process(ctx, file)
		recordOutcome(r.metrics, res)
		return res
	})
	if err != nil {
		return err
	}

	r.docs = make([]*domain.Document, 0, len(outcomes))
	for _, res := range outcomes {
		r.docs = append(r.docs, res.doc)
		if res.cached {
			r.report.FilesSkipped++
		}
	}
	slices.SortFunc(outcomes, func(a, b outcome) int { return cmp.Compare(a.doc.SourcePath, b.doc.SourcePath) })
	for _, res := range outcomes {
		r.add(res.diags...)
	}
	slices.SortFunc(r.docs, func(a, b *domain.Document) int { return cmp.Compare(a.SourcePath, b.SourcePath) })

	r.logger.Debug(fmt.Sprintf("processed %d documents, %d reused from cache", len(r.docs), r.report.FilesSkipped))
	return nil
}

// process turns one source file into a rendered document, reusing the cached
// document when it is at least as new as the source.
func (r *buildRun) process(ctx context.Context, rel string) (res outcome) {
	if err := ctx.Err(); err != nil {
		return outcome{err: err}
	}
	_, vertex := r.telemetry.Record(ctx, rel)
	defer func() {
		if res.cached {
			vertex.Cached()
		}
		vertex.Complete(res.err)
	}()

	full := filepath.Join(r.opts.SourceDir, rel)
	info, err := os.Stat(full)
	if err != nil {
		return outcome{err: zerr.With(zerr.Wrap(domain.ErrReadSourceFailed, err.Error()), "path", full)}
	}
	mtime := info.ModTime()

	if r.cache != nil {
		doc, ok, err := r.reuse(full, mtime)
		if err != nil {
			return outcome{err: err}
		}
		if ok {
			return outcome{doc: doc, cached: true}
		}
	}

	content, err := os.ReadFile(full) //nolint:gosec // file was discovered below the source directory
	if err != nil {
		return outcome{err: zerr.With(zerr.Wrap(domain.ErrReadSourceFailed, err.Error()), "path", full)}
	}
	id, err := domain.IdentifySource(bytes.NewReader(content), mtime)
	if err != nil {
		return outcome{err: zerr.With(zerr.Wrap(domain.ErrFingerprintFailed, err.Error()), "path", full)}
	}
	doc, err := r.parser.Parse(rel, content)
	if err != nil {
		return outcome{err: err}
	}
	doc.SourcePath = full
	doc.SourceMtime = mtime
	doc.BuildTime = r.clock.Now()

	for _, t := range r.selection.Transformers {
		if err := t.Transform(doc); err != nil {
			return outcome{err: zerr.With(zerr.Wrap(err, "extension failed"), "extension", t.Name())}
		}
	}
	if err := r.renderer.Render(doc, r.opts.OutputDir); err != nil {
		return outcome{err: err}
	}

	res = outcome{doc: doc}
	if r.cache != nil {
		if err := r.cache.StoreIdentified(full, doc, id); err != nil {
			res.diags = append(res.diags, domain.NewError(domain.KindOther, full, 0,
				fmt.Sprintf("failed to cache document: %v", err)))
		}
	}
	return res
}

// reuse returns the cached document of path when it is usable, restoring its
// output file if that went missing.
func (r *buildRun) reuse(path string, mtime time.Time) (*domain.Document, bool, error) {
	doc, err := r.cache.Lookup(path)
	hit := err == nil && !doc.SourceMtime.Before(mtime)
	r.metrics.IncCacheLookup(hit)
	if !hit {
		return nil, false, nil
	}

	exists, err := r.verifier.OutputExists(r.opts.OutputDir, doc)
	if err != nil {
		return nil, false, err
	}
	if !exists {
		if err := r.renderer.Write(doc, r.opts.OutputDir); err != nil {
			return nil, false, err
		}
	}
	return doc, true, nil
}

func (r *buildRun) validate() {
	validators := append([]ports.DocumentValidator{r.validator}, r.selection.Validators...)
	for _, v := range validators {
		r.add(v.Validate(r.docs, r.opts.Config)...)
	}
}

func (r *buildRun) finish(ctx context.Context) error {
	site := &domain.Site{
		SourceDir: r.opts.SourceDir,
		OutputDir: r.opts.OutputDir,
		Documents: r.docs,
		Config:    r.opts.Config,
	}
	finishers := append(slices.Clone(r.finishers), r.selection.Finishers...)

	g, gctx := errgroup.WithContext(ctx)
	for _, f := range finishers {
		g.Go(func() error {
			_, vertex := r.telemetry.Record(gctx, f.Name())
			err := f.Finish(gctx, site)
			vertex.Complete(err)
			if err != nil {
				return zerr.With(zerr.Wrap(domain.ErrFinishingFailed, err.Error()), "finisher", f.Name())
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if r.cache != nil {
		r.cache.Flush()
	}
	return nil
}

func (r *buildRun) complete() {
	r.report.FilesProcessed = len(r.docs)
	r.report.CacheHits = r.report.FilesSkipped
	size, err := outputSize(r.opts.OutputDir)
	if err != nil {
		r.logger.Warn(fmt.Sprintf("failed to measure output size: %v", err))
	}
	r.report.OutputSizeMB = float64(size) / bytesPerMB
}

// outputSize sums the regular files below dir, excluding the cache directory.
func outputSize(dir string) (int64, error) {
	var total int64
	err := filepath.WalkDir(dir, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && d.Name() == domain.CacheDirName {
			return filepath.SkipDir
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		total += info.Size()
		return nil
	})
	return total, err
}
