package app_test

import (
	"bytes"
	"context"
	"errors"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tome/internal/adapters/fs"
	"go.trai.ch/tome/internal/adapters/logger"
	"go.trai.ch/tome/internal/adapters/metrics"
	"go.trai.ch/tome/internal/adapters/parser"
	"go.trai.ch/tome/internal/adapters/search"
	"go.trai.ch/tome/internal/app"
	"go.trai.ch/tome/internal/core/domain"
	"go.trai.ch/tome/internal/core/ports"
	"go.trai.ch/tome/internal/core/ports/mocks"
	"go.trai.ch/tome/internal/engine/builder"
	"go.uber.org/mock/gomock"
)

type fakeBuilder struct {
	mu      sync.Mutex
	calls   []builder.Options
	report  *domain.BuildReport
	err     error
	onBuild func(call int, opts builder.Options)
}

func (f *fakeBuilder) Build(_ context.Context, opts builder.Options) (*domain.BuildReport, error) {
	f.mu.Lock()
	f.calls = append(f.calls, opts)
	call := len(f.calls)
	f.mu.Unlock()

	if f.onBuild != nil {
		f.onBuild(call, opts)
	}
	if f.err != nil {
		return nil, f.err
	}
	if f.report != nil {
		return f.report, nil
	}
	return &domain.BuildReport{BuildID: "b-1", FilesProcessed: 1}, nil
}

func (f *fakeBuilder) Calls() []builder.Options {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]builder.Options(nil), f.calls...)
}

func quietLogger(ctrl *gomock.Controller) *mocks.MockLogger {
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	log.EXPECT().Error(gomock.Any()).AnyTimes()
	return log
}

type harness struct {
	app     *app.App
	loader  *mocks.MockConfigLoader
	builder *fakeBuilder
	metrics *mocks.MockMetricsRecorder
	watcher *mocks.MockWatcherFactory
	stdout  *bytes.Buffer
	stderr  *bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	ctrl := gomock.NewController(t)
	h := &harness{
		loader:  mocks.NewMockConfigLoader(ctrl),
		builder: &fakeBuilder{},
		metrics: mocks.NewMockMetricsRecorder(ctrl),
		watcher: mocks.NewMockWatcherFactory(ctrl),
		stdout:  &bytes.Buffer{},
		stderr:  &bytes.Buffer{},
	}
	h.app = app.New(h.loader, h.builder, fs.NewWalker(), parser.New(), h.watcher, h.metrics, quietLogger(ctrl)).
		WithOutput(h.stdout, h.stderr)
	return h
}

func sampleReport() *domain.BuildReport {
	return &domain.BuildReport{
		BuildID:        "b-2",
		FilesProcessed: 2,
		Warnings: []domain.Diagnostic{
			domain.NewWarning(domain.KindOrphanedDocument, "docs/a.rst", 0, "document isn't included in any toctree"),
		},
		Errors: []domain.Diagnostic{
			domain.NewError(domain.KindParseError, "docs/b.rst", 4, "bad"),
		},
	}
}

func TestApp_Build(t *testing.T) {
	h := newHarness(t)
	cfg := domain.DefaultConfig()
	cfg.ParallelJobs = 3
	h.loader.EXPECT().Load(domain.DefaultSourceDir, "").Return(cfg, nil)

	require.NoError(t, h.app.Build(context.Background(), app.BuildOptions{Incremental: true}))

	calls := h.builder.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, domain.DefaultSourceDir, calls[0].SourceDir)
	assert.Equal(t, domain.DefaultOutputDir, calls[0].OutputDir)
	assert.Equal(t, 3, calls[0].Jobs)
	assert.True(t, calls[0].Incremental)
	assert.Equal(t, cfg, calls[0].Config)

	out := h.stdout.String()
	assert.Contains(t, out, "build succeeded.")
	assert.Contains(t, out, "Files processed")
	assert.Contains(t, out, "b-1")
	assert.Empty(t, h.stderr.String())
}

func TestApp_Build_JobsFlagOverridesConfig(t *testing.T) {
	h := newHarness(t)
	cfg := domain.DefaultConfig()
	cfg.ParallelJobs = 3
	h.loader.EXPECT().Load("src", "conf.yaml").Return(cfg, nil)

	require.NoError(t, h.app.Build(context.Background(), app.BuildOptions{
		SourceDir:  "src",
		OutputDir:  "out",
		ConfigPath: "conf.yaml",
		Jobs:       5,
	}))

	calls := h.builder.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, 5, calls[0].Jobs)
	assert.Equal(t, "src", calls[0].SourceDir)
	assert.Equal(t, "out", calls[0].OutputDir)
}

func TestApp_Build_ConfigError(t *testing.T) {
	h := newHarness(t)
	h.loader.EXPECT().Load(gomock.Any(), gomock.Any()).Return(domain.Config{}, domain.ErrConfigInvalid)

	err := h.app.Build(context.Background(), app.BuildOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConfigInvalid))
	assert.Empty(t, h.builder.Calls())
}

func TestApp_Build_BuilderError(t *testing.T) {
	h := newHarness(t)
	h.loader.EXPECT().Load(gomock.Any(), gomock.Any()).Return(domain.DefaultConfig(), nil)
	h.builder.err = domain.ErrProcessingFailed

	err := h.app.Build(context.Background(), app.BuildOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrProcessingFailed))
	assert.Empty(t, h.stdout.String())
}

func TestApp_Build_Diagnostics(t *testing.T) {
	h := newHarness(t)
	h.loader.EXPECT().Load(gomock.Any(), gomock.Any()).Return(domain.DefaultConfig(), nil)
	h.builder.report = sampleReport()
	warningFile := filepath.Join(t.TempDir(), "reports", "warnings.txt")

	err := h.app.Build(context.Background(), app.BuildOptions{WarningFile: warningFile})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBuildExecutionFailed))

	want := "docs/a.rst: WARNING: document isn't included in any toctree\n" +
		"docs/b.rst:4: ERROR: bad\n"
	assert.Equal(t, want, h.stderr.String())

	data, readErr := os.ReadFile(warningFile)
	require.NoError(t, readErr)
	assert.Equal(t, want, string(data))

	assert.Contains(t, h.stdout.String(), "build finished with problems, 1 warnings, 1 errors.")
}

func TestApp_Build_FailOnWarning(t *testing.T) {
	for _, tc := range []struct {
		name   string
		flag   bool
		config bool
		fails  bool
	}{
		{name: "flag", flag: true, fails: true},
		{name: "config", config: true, fails: true},
		{name: "off"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t)
			cfg := domain.DefaultConfig()
			cfg.FailOnWarning = tc.config
			h.loader.EXPECT().Load(gomock.Any(), gomock.Any()).Return(cfg, nil)
			report := sampleReport()
			report.Errors = nil
			h.builder.report = report

			err := h.app.Build(context.Background(), app.BuildOptions{FailOnWarning: tc.flag})

			if !tc.fails {
				require.NoError(t, err)
				assert.Contains(t, h.stdout.String(), "build succeeded, 1 warnings.")
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrWarningsAsErrors))
			assert.Contains(t, err.Error(), "Build failed due to warnings (caused by --fail-on-warning)")
		})
	}
}

func TestApp_Build_ExportsMetrics(t *testing.T) {
	h := newHarness(t)
	h.loader.EXPECT().Load(gomock.Any(), gomock.Any()).Return(domain.DefaultConfig(), nil)
	h.metrics.EXPECT().Export("metrics.prom").Return(nil)

	require.NoError(t, h.app.Build(context.Background(), app.BuildOptions{MetricsFile: "metrics.prom"}))
}

func TestApp_Build_ExportsMetricsOnFailure(t *testing.T) {
	h := newHarness(t)
	h.loader.EXPECT().Load(gomock.Any(), gomock.Any()).Return(domain.DefaultConfig(), nil)
	h.builder.err = domain.ErrProcessingFailed
	exportErr := errors.New("disk full")
	h.metrics.EXPECT().Export("metrics.prom").Return(exportErr)

	err := h.app.Build(context.Background(), app.BuildOptions{MetricsFile: "metrics.prom"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrProcessingFailed))
	assert.True(t, errors.Is(err, exportErr))
}

func TestApp_Build_CleanRemovesOutputFirst(t *testing.T) {
	h := newHarness(t)
	out := filepath.Join(t.TempDir(), "_build")
	stale := filepath.Join(out, "stale.html")
	require.NoError(t, os.MkdirAll(out, 0o750))
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0o600))
	h.loader.EXPECT().Load(gomock.Any(), gomock.Any()).Return(domain.DefaultConfig(), nil)
	h.builder.onBuild = func(int, builder.Options) {
		assert.NoFileExists(t, stale)
	}

	require.NoError(t, h.app.Build(context.Background(), app.BuildOptions{OutputDir: out, Clean: true}))
	assert.Len(t, h.builder.Calls(), 1)
}

func TestApp_Clean(t *testing.T) {
	h := newHarness(t)
	out := filepath.Join(t.TempDir(), "_build")
	require.NoError(t, os.MkdirAll(filepath.Join(out, domain.CacheDirName), 0o750))

	require.NoError(t, h.app.Clean(context.Background(), out))
	assert.NoDirExists(t, out)
}

func TestApp_Clean_MissingDirectory(t *testing.T) {
	h := newHarness(t)
	assert.NoError(t, h.app.Clean(context.Background(), filepath.Join(t.TempDir(), "missing")))
}

func writeSource(t *testing.T, dir, rel, content string) {
	t.Helper()
	path := filepath.Join(dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestApp_Stats(t *testing.T) {
	h := newHarness(t)
	dir := t.TempDir()
	writeSource(t, dir, "index.rst", "Home\n====\n\nSee :doc:`guide/intro` and :ref:`intro`.\n")
	writeSource(t, dir, filepath.Join("guide", "intro.rst"), ".. _intro:\n\nIntro\n=====\n")
	writeSource(t, dir, filepath.Join("guide", "deep", "notes.md"), "# Notes\n\nplain")
	writeSource(t, dir, "logo.png", "not a document")
	writeSource(t, dir, filepath.Join("_build", "index.rst"), "skipped\n")

	stats, err := h.app.Stats(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.SourceFiles)
	assert.Equal(t, 11, stats.TotalLines)
	assert.Equal(t, 3, stats.CrossReferences)
	assert.Equal(t, 2, stats.MaxDepth)
	assert.Equal(t, "index.rst", stats.LargestFile)
	assert.InDelta(t, 52.0/1024, stats.LargestFileKB, 1e-9)
	assert.InDelta(t, 90.0/3/1024, stats.AvgFileSizeKB, 1e-9)

	out := h.stdout.String()
	assert.Contains(t, out, "Project Statistics:")
	assert.Contains(t, out, "Cross-references")
}

func TestApp_Stats_Empty(t *testing.T) {
	h := newHarness(t)
	stats, err := h.app.Stats(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.Zero(t, stats.SourceFiles)
	assert.Zero(t, stats.AvgFileSizeKB)
}

func TestApp_Stats_MissingSource(t *testing.T) {
	h := newHarness(t)
	_, err := h.app.Stats(context.Background(), filepath.Join(t.TempDir(), "missing"))
	assert.True(t, errors.Is(err, domain.ErrSourceNotFound))
}

func TestApp_Search(t *testing.T) {
	h := newHarness(t)
	out := t.TempDir()
	idx := search.Build([]*domain.Document{
		{Name: "index", OutputPath: "index.html", Title: "Welcome", Raw: "install the tool"},
		{Name: "guide", OutputPath: "guide.html", Title: "Install Guide", Raw: "steps to install"},
		{Name: "api", OutputPath: "api.html", Title: "API", Raw: "reference"},
	}, "en")
	require.NoError(t, idx.WriteFile(filepath.Join(out, domain.SearchIndexFile)))

	results, err := h.app.Search(out, "install")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "guide", results[0].DocName)
	assert.Equal(t, "index", results[1].DocName)
	assert.Contains(t, h.stdout.String(), "Install Guide")
}

func TestApp_Search_NoMatches(t *testing.T) {
	h := newHarness(t)
	out := t.TempDir()
	require.NoError(t, search.Build(nil, "en").WriteFile(filepath.Join(out, domain.SearchIndexFile)))

	results, err := h.app.Search(out, "nothing")
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Contains(t, h.stdout.String(), `no pages match "nothing"`)
}

func TestApp_Search_MissingIndex(t *testing.T) {
	h := newHarness(t)
	_, err := h.app.Search(t.TempDir(), "install")
	assert.Error(t, err)
}

func TestApp_Watch(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		h := newHarness(t)
		h.app.WithDebounce(50 * time.Millisecond)
		ctrl := gomock.NewController(t)
		w := mocks.NewMockWatcher(ctrl)

		const src = "/project/docs"
		const out = "/project/docs/_build"
		events := make(chan ports.WatchEvent)
		var seq iter.Seq[ports.WatchEvent] = func(yield func(ports.WatchEvent) bool) {
			for e := range events {
				if !yield(e) {
					return
				}
			}
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		h.loader.EXPECT().Load(src, "").Return(domain.DefaultConfig(), nil).Times(2)
		h.watcher.EXPECT().NewWatcher().Return(w, nil)
		w.EXPECT().Start(gomock.Any(), src).Return(nil)
		w.EXPECT().Events().Return(seq)
		w.EXPECT().Stop().DoAndReturn(func() error {
			close(events)
			return nil
		})
		h.builder.onBuild = func(call int, _ builder.Options) {
			if call == 2 {
				cancel()
			}
		}

		go func() {
			events <- ports.WatchEvent{Path: src + "/index.rst", Operation: ports.OpWrite}
			events <- ports.WatchEvent{Path: out + "/index.html", Operation: ports.OpWrite}
			events <- ports.WatchEvent{Path: src + "/.index.rst.swp", Operation: ports.OpCreate}
			events <- ports.WatchEvent{Path: src + "/guide.md", Operation: ports.OpCreate}
		}()

		err := h.app.Watch(ctx, app.BuildOptions{SourceDir: src, OutputDir: out})
		require.NoError(t, err)

		calls := h.builder.Calls()
		require.Len(t, calls, 2)
		for _, c := range calls {
			assert.True(t, c.Incremental)
		}
		assert.Equal(t, 2, strings.Count(h.stdout.String(), "build succeeded."))
	})
}

func TestApp_Watch_StartFailure(t *testing.T) {
	h := newHarness(t)
	ctrl := gomock.NewController(t)
	w := mocks.NewMockWatcher(ctrl)
	h.loader.EXPECT().Load(gomock.Any(), gomock.Any()).Return(domain.DefaultConfig(), nil)
	h.watcher.EXPECT().NewWatcher().Return(w, nil)
	boom := errors.New("too many open files")
	w.EXPECT().Start(gomock.Any(), gomock.Any()).Return(boom)
	w.EXPECT().Stop().Return(nil)

	err := h.app.Watch(context.Background(), app.BuildOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, boom))
}

func TestApp_ConfigureLogging(t *testing.T) {
	log := logger.New()
	var buf bytes.Buffer
	log.(*logger.Logger).SetOutput(&buf)

	a := app.New(nil, &fakeBuilder{}, nil, nil, nil, metrics.NoopRecorder{}, log)
	log.Debug("hidden")
	a.ConfigureLogging(true, false)
	log.Debug("visible")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "visible")
}
