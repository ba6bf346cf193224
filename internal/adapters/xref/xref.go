// Package xref writes the cross reference inventory of a build: every document
// and every explicit label with the URL it resolves to.
package xref

import (
	"cmp"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"

	"go.trai.ch/tome/internal/core/domain"
	"go.trai.ch/tome/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Finisher = (*Finisher)(nil)

// Target is a resolvable reference.
type Target struct {
	Doc   string `json:"doc"`
	Title string `json:"title,omitempty"`
	URL   string `json:"url"`
}

// Inventory maps document names and label names to their targets.
type Inventory struct {
	Documents map[string]Target `json:"documents"`
	Labels    map[string]Target `json:"labels"`
}

// Collect builds the inventory of docs. When a label is defined more than once
// the document sorting first by name wins.
func Collect(docs []*domain.Document) *Inventory {
	sorted := slices.Clone(docs)
	slices.SortFunc(sorted, func(a, b *domain.Document) int { return cmp.Compare(a.Name, b.Name) })

	inv := &Inventory{
		Documents: make(map[string]Target, len(sorted)),
		Labels:    make(map[string]Target),
	}
	for _, doc := range sorted {
		url := filepath.ToSlash(doc.OutputPath)
		inv.Documents[doc.Name] = Target{Doc: doc.Name, Title: doc.Title, URL: url}
		for _, label := range doc.Labels {
			if _, exists := inv.Labels[label.Name]; exists {
				continue
			}
			inv.Labels[label.Name] = Target{Doc: doc.Name, Title: doc.Title, URL: url + "#" + label.Name}
		}
	}
	return inv
}

// Finisher writes xref.json into the output directory.
type Finisher struct{}

// NewFinisher creates a new cross reference Finisher.
func NewFinisher() *Finisher {
	return &Finisher{}
}

// Name returns the finisher name.
func (f *Finisher) Name() string {
	return "xref-index"
}

// Finish writes the inventory of site.
func (f *Finisher) Finish(ctx context.Context, site *domain.Site) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(Collect(site.Documents), "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to encode cross reference index")
	}
	path := filepath.Join(site.OutputDir, domain.XrefIndexFile)
	if err := os.WriteFile(path, data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrWriteOutputFailed, err.Error()), "path", path)
	}
	return nil
}
