package app

import (
	"fmt"
	"path/filepath"

	"go.trai.ch/tome/internal/adapters/search" //nolint:depguard // Reads the index written by the search finisher
	"go.trai.ch/tome/internal/core/domain"
)

// Search queries the search index of a built output directory and prints the
// matching pages.
func (a *App) Search(outputDir, query string) ([]search.Result, error) {
	if outputDir == "" {
		outputDir = domain.DefaultOutputDir
	}

	idx, err := search.Load(filepath.Join(outputDir, domain.SearchIndexFile))
	if err != nil {
		return nil, err
	}

	results := idx.Search(query)
	if len(results) == 0 {
		_, _ = fmt.Fprintf(a.stdout, "no pages match %q\n", query)
		return results, nil
	}

	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{r.Title, r.FileName, fmt.Sprintf("%.1f", r.Score)})
	}
	_, _ = fmt.Fprintln(a.stdout, renderTable(a.stdout, []string{"Title", "Page", "Score"}, rows, []columnAlignment{alignLeft, alignLeft, alignRight}))
	return results, nil
}
