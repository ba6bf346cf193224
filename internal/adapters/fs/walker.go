// Package fs provides file system adapters for discovering, fingerprinting and
// verifying documentation sources.
package fs

import (
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/tome/internal/core/domain"
	"go.trai.ch/tome/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.SourceWalker = (*Walker)(nil)

// Walker provides file walking functionality.
type Walker struct {
	extensions []string
	skipDirs   []string
}

// NewWalker creates a new Walker that collects the default source extensions.
func NewWalker() *Walker {
	return &Walker{
		extensions: domain.SourceExtensions,
		skipDirs:   domain.SkippedDirs,
	}
}

// WalkFiles yields all regular files below root, skipping hidden and ignored directories.
// Yielded paths include root.
func (w *Walker) WalkFiles(root string, ignores []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if path != root && d.IsDir() && w.shouldSkipDir(d.Name(), ignores) {
				return filepath.SkipDir
			}
			if d.IsDir() {
				return nil
			}
			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

// Discover returns the source documents below sourceDir, relative to it and sorted.
// The output directory is never descended into, even when it lives inside sourceDir.
func (w *Walker) Discover(sourceDir, outputDir string) ([]string, error) {
	info, err := os.Stat(sourceDir)
	if err != nil || !info.IsDir() {
		return nil, zerr.With(zerr.Wrap(domain.ErrSourceNotFound, "discover"), "path", sourceDir)
	}

	outputAbs := ""
	if outputDir != "" {
		if abs, absErr := filepath.Abs(outputDir); absErr == nil {
			outputAbs = abs
		}
	}

	var files []string
	walkErr := filepath.WalkDir(sourceDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path == sourceDir {
				return nil
			}
			if w.shouldSkipDir(d.Name(), nil) || w.isOutputDir(path, outputAbs) {
				return filepath.SkipDir
			}
			return nil
		}
		if !w.isSource(d.Name()) {
			return nil
		}
		rel, relErr := filepath.Rel(sourceDir, path)
		if relErr != nil {
			return relErr
		}
		files = append(files, rel)
		return nil
	})
	if walkErr != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrDiscoveryFailed, walkErr.Error()), "path", sourceDir)
	}

	slices.Sort(files)
	return files, nil
}

func (w *Walker) shouldSkipDir(name string, ignores []string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	if slices.Contains(w.skipDirs, name) {
		return true
	}
	for _, ignore := range ignores {
		if matched, _ := filepath.Match(ignore, name); matched {
			return true
		}
	}
	return false
}

func (w *Walker) isOutputDir(path, outputAbs string) bool {
	if outputAbs == "" {
		return false
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	return abs == outputAbs
}

func (w *Walker) isSource(name string) bool {
	return slices.Contains(w.extensions, strings.ToLower(filepath.Ext(name)))
}
