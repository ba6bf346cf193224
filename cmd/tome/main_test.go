package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tome/internal/app"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func quiet(a *app.App) {
	a.WithOutput(io.Discard, io.Discard)
}

func TestRun(t *testing.T) {
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
	}()

	tests := []struct {
		name         string
		files        map[string]string
		args         func(dir string) []string
		expectedExit int
	}{
		{
			name: "Build succeeds",
			files: map[string]string{
				"docs/index.rst": "Home\n====\n\n.. toctree::\n\n   guide\n",
				"docs/guide.md":  "# Guide\n\nText.\n",
			},
			args: func(dir string) []string {
				return []string{"tome", "build", "-s", filepath.Join(dir, "docs"), "-o", filepath.Join(dir, "out")}
			},
			expectedExit: 0,
		},
		{
			name: "Warnings fail with fail-on-warning",
			files: map[string]string{
				"docs/index.rst":  "Home\n====\n",
				"docs/orphan.rst": "Orphan\n======\n",
			},
			args: func(dir string) []string {
				return []string{"tome", "build", "-W", "-s", filepath.Join(dir, "docs"), "-o", filepath.Join(dir, "out")}
			},
			expectedExit: 1,
		},
		{
			name: "Missing source directory",
			args: func(dir string) []string {
				return []string{"tome", "build", "-s", filepath.Join(dir, "missing"), "-o", filepath.Join(dir, "out")}
			},
			expectedExit: 1,
		},
		{
			name: "Stats",
			files: map[string]string{
				"docs/index.rst": "Home\n====\n",
			},
			args: func(dir string) []string {
				return []string{"tome", "stats", "-s", filepath.Join(dir, "docs")}
			},
			expectedExit: 0,
		},
		{
			name: "Unknown command",
			args: func(string) []string {
				return []string{"tome", "publish"}
			},
			expectedExit: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for rel, content := range tt.files {
				writeFile(t, filepath.Join(dir, rel), content)
			}

			os.Args = tt.args(dir)
			exitCode := run(quiet)
			assert.Equal(t, tt.expectedExit, exitCode)
		})
	}
}

func TestRun_BuildWritesSite(t *testing.T) {
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
	}()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "docs", "index.rst"), "Home\n====\n")
	out := filepath.Join(dir, "out")

	os.Args = []string{"tome", "build", "--incremental", "-s", filepath.Join(dir, "docs"), "-o", out}
	require.Equal(t, 0, run(quiet))
	assert.FileExists(t, filepath.Join(out, "index.html"))

	os.Args = []string{"tome", "clean", "-o", out}
	require.Equal(t, 0, run(quiet))
	assert.NoDirExists(t, out)
}
