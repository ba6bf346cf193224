package app

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"go.trai.ch/tome/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

const bytesPerKB = 1024

// ProjectStats describes the size and shape of a source tree.
type ProjectStats struct {
	SourceFiles     int
	TotalLines      int
	AvgFileSizeKB   float64
	LargestFileKB   float64
	LargestFile     string
	MaxDepth        int
	CrossReferences int
}

// Stats analyzes the source documents below sourceDir and prints the result as
// a table. Cross references count roles and label targets; files that fail to
// parse contribute their lines only.
func (a *App) Stats(ctx context.Context, sourceDir string) (*ProjectStats, error) {
	if sourceDir == "" {
		sourceDir = domain.DefaultSourceDir
	}

	files, err := a.walker.Discover(sourceDir, "")
	if err != nil {
		return nil, err
	}

	var (
		mu         sync.Mutex
		stats      ProjectStats
		totalBytes int64
		largest    int64
	)
	stats.SourceFiles = len(files)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for _, rel := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			full := filepath.Join(sourceDir, rel)
			content, err := os.ReadFile(full) //nolint:gosec // path comes from discovery below sourceDir
			if err != nil {
				return zerr.With(zerr.Wrap(domain.ErrReadSourceFailed, err.Error()), "path", full)
			}

			refs := 0
			if doc, parseErr := a.parser.Parse(rel, content); parseErr == nil {
				refs = len(doc.CrossRefs) + len(doc.Labels)
			} else {
				a.logger.Debug(fmt.Sprintf("stats: skipping references of %s: %v", rel, parseErr))
			}

			size := int64(len(content))
			mu.Lock()
			defer mu.Unlock()
			stats.TotalLines += countLines(content)
			stats.CrossReferences += refs
			stats.MaxDepth = max(stats.MaxDepth, depth(rel))
			totalBytes += size
			if size > largest || (size == largest && (stats.LargestFile == "" || rel < stats.LargestFile)) {
				largest = size
				stats.LargestFile = rel
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if stats.SourceFiles > 0 {
		stats.AvgFileSizeKB = float64(totalBytes) / float64(stats.SourceFiles) / bytesPerKB
	}
	stats.LargestFileKB = float64(largest) / bytesPerKB

	a.printStats(&stats)
	return &stats, nil
}

// countLines counts lines the way editors do: a trailing newline does not start
// another line.
func countLines(content []byte) int {
	if len(content) == 0 {
		return 0
	}
	n := bytes.Count(content, []byte{'\n'})
	if content[len(content)-1] != '\n' {
		n++
	}
	return n
}

// depth is the number of directories between the source root and rel.
func depth(rel string) int {
	return strings.Count(filepath.ToSlash(rel), "/")
}

func (a *App) printStats(s *ProjectStats) {
	largest := fmt.Sprintf("%.2f KB", s.LargestFileKB)
	if s.LargestFile != "" {
		largest = fmt.Sprintf("%.2f KB (%s)", s.LargestFileKB, s.LargestFile)
	}
	rows := [][]string{
		{"Source files", fmt.Sprint(s.SourceFiles)},
		{"Total lines", fmt.Sprint(s.TotalLines)},
		{"Average file size", fmt.Sprintf("%.2f KB", s.AvgFileSizeKB)},
		{"Largest file", largest},
		{"Directory depth", fmt.Sprint(s.MaxDepth)},
		{"Cross-references", fmt.Sprint(s.CrossReferences)},
	}
	_, _ = fmt.Fprintln(a.stdout, "Project Statistics:")
	_, _ = fmt.Fprintln(a.stdout, renderTable(a.stdout, []string{"Metric", "Value"}, rows, []columnAlignment{alignLeft, alignRight}))
}
