package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tome/cmd/tome/commands"
	"go.trai.ch/tome/internal/adapters/search"
	"go.trai.ch/tome/internal/app"
	"go.trai.ch/tome/internal/build"
)

type mockApp struct {
	buildFunc  func(ctx context.Context, opts app.BuildOptions) error
	watchFunc  func(ctx context.Context, opts app.BuildOptions) error
	cleanFunc  func(ctx context.Context, outputDir string) error
	statsFunc  func(ctx context.Context, sourceDir string) (*app.ProjectStats, error)
	searchFunc func(outputDir, query string) ([]search.Result, error)

	verbose bool
	logJSON bool
}

func (m *mockApp) Build(ctx context.Context, opts app.BuildOptions) error {
	if m.buildFunc != nil {
		return m.buildFunc(ctx, opts)
	}
	return nil
}

func (m *mockApp) Watch(ctx context.Context, opts app.BuildOptions) error {
	if m.watchFunc != nil {
		return m.watchFunc(ctx, opts)
	}
	return nil
}

func (m *mockApp) Clean(ctx context.Context, outputDir string) error {
	if m.cleanFunc != nil {
		return m.cleanFunc(ctx, outputDir)
	}
	return nil
}

func (m *mockApp) Stats(ctx context.Context, sourceDir string) (*app.ProjectStats, error) {
	if m.statsFunc != nil {
		return m.statsFunc(ctx, sourceDir)
	}
	return &app.ProjectStats{}, nil
}

func (m *mockApp) Search(outputDir, query string) ([]search.Result, error) {
	if m.searchFunc != nil {
		return m.searchFunc(outputDir, query)
	}
	return nil, nil
}

func (m *mockApp) ConfigureLogging(verbose, jsonOutput bool) {
	m.verbose = verbose
	m.logJSON = jsonOutput
}

func TestCommands_Build(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		var captured app.BuildOptions
		mock := &mockApp{
			buildFunc: func(_ context.Context, opts app.BuildOptions) error {
				captured = opts
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{
			"build", "-s", "docs", "-o", "site", "-j", "4", "--clean", "--incremental",
			"-W", "-w", "warnings.txt", "--metrics-file", "metrics.prom", "-c", "tome.yaml", "-v",
		})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, app.BuildOptions{
			SourceDir:     "docs",
			OutputDir:     "site",
			ConfigPath:    "tome.yaml",
			Jobs:          4,
			Clean:         true,
			Incremental:   true,
			FailOnWarning: true,
			WarningFile:   "warnings.txt",
			MetricsFile:   "metrics.prom",
		}, captured)
		assert.True(t, mock.verbose)
		assert.False(t, mock.logJSON)
	})

	t.Run("uses defaults", func(t *testing.T) {
		var captured app.BuildOptions
		mock := &mockApp{
			buildFunc: func(_ context.Context, opts app.BuildOptions) error {
				captured = opts
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"build", "--log-json"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, app.BuildOptions{SourceDir: ".", OutputDir: "_build"}, captured)
		assert.True(t, mock.logJSON)
	})

	t.Run("returns error on build failure", func(t *testing.T) {
		mock := &mockApp{
			buildFunc: func(context.Context, app.BuildOptions) error {
				return errors.New("simulated error")
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"build"})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		err := cli.Execute(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})

	t.Run("rejects positional arguments", func(t *testing.T) {
		cli := commands.New(&mockApp{})
		cli.SetArgs([]string{"build", "extra"})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		assert.Error(t, cli.Execute(context.Background()))
	})
}

func TestCommands_Watch(t *testing.T) {
	var captured app.BuildOptions
	mock := &mockApp{
		watchFunc: func(_ context.Context, opts app.BuildOptions) error {
			captured = opts
			return nil
		},
	}

	cli := commands.New(mock)
	cli.SetArgs([]string{"watch", "--source", "docs", "--jobs", "2"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Equal(t, "docs", captured.SourceDir)
	assert.Equal(t, "_build", captured.OutputDir)
	assert.Equal(t, 2, captured.Jobs)
}

func TestCommands_Clean(t *testing.T) {
	var captured string
	mock := &mockApp{
		cleanFunc: func(_ context.Context, outputDir string) error {
			captured = outputDir
			return nil
		},
	}

	cli := commands.New(mock)
	cli.SetArgs([]string{"clean", "-o", "site"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Equal(t, "site", captured)
}

func TestCommands_Stats(t *testing.T) {
	var captured string
	mock := &mockApp{
		statsFunc: func(_ context.Context, sourceDir string) (*app.ProjectStats, error) {
			captured = sourceDir
			return &app.ProjectStats{SourceFiles: 1}, nil
		},
	}

	cli := commands.New(mock)
	cli.SetArgs([]string{"stats"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Equal(t, ".", captured)
}

func TestCommands_Search(t *testing.T) {
	t.Run("joins terms", func(t *testing.T) {
		var output, query string
		mock := &mockApp{
			searchFunc: func(outputDir, q string) ([]search.Result, error) {
				output, query = outputDir, q
				return nil, nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"search", "install", "guide", "-o", "site"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, "site", output)
		assert.Equal(t, "install guide", query)
	})

	t.Run("requires terms", func(t *testing.T) {
		cli := commands.New(&mockApp{})
		cli.SetArgs([]string{"search"})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		assert.Error(t, cli.Execute(context.Background()))
	})
}

func TestCommands_Version(t *testing.T) {
	cli := commands.New(&mockApp{})
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"version"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Equal(t, "tome version "+build.Version+" (commit: "+build.Commit+", date: "+build.Date+")\n", buf.String())
}
