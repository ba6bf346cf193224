package search

import (
	"context"
	"path/filepath"

	"go.trai.ch/tome/internal/core/domain"
	"go.trai.ch/tome/internal/core/ports"
)

var _ ports.Finisher = (*Finisher)(nil)

// Finisher writes searchindex.json into the output directory.
type Finisher struct{}

// NewFinisher creates a new search index Finisher.
func NewFinisher() *Finisher {
	return &Finisher{}
}

// Name returns the finisher name.
func (f *Finisher) Name() string {
	return "search-index"
}

// Finish indexes the documents of site.
func (f *Finisher) Finish(ctx context.Context, site *domain.Site) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return Build(site.Documents, site.Config.Language).WriteFile(filepath.Join(site.OutputDir, domain.SearchIndexFile))
}
