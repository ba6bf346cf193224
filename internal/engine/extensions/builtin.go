package extensions

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/tome/internal/core/domain"
	"go.trai.ch/tome/internal/core/ports"
	"go.trai.ch/zerr"
)

// Built-in extension names.
const (
	AutoSectionLabelName = "sphinx.ext.autosectionlabel"
	TodoName             = "sphinx.ext.todo"
	GithubPagesName      = "sphinx.ext.githubpages"
)

var (
	_ ports.DocumentTransformer = AutoSectionLabel{}
	_ ports.DocumentValidator   = Todo{}
	_ ports.Finisher            = GithubPages{}
)

// Builtins returns the extensions shipped with tome.
func Builtins() []ports.Extension {
	return []ports.Extension{AutoSectionLabel{}, Todo{}, GithubPages{}}
}

// AutoSectionLabel adds a "<document>:<anchor>" label for every heading.
type AutoSectionLabel struct{}

// Name returns the extension name.
func (AutoSectionLabel) Name() string { return AutoSectionLabelName }

// Transform appends the section labels to doc.
func (AutoSectionLabel) Transform(doc *domain.Document) error {
	for _, entry := range doc.TOC {
		doc.Labels = append(doc.Labels, domain.Label{
			Name: doc.Name + ":" + entry.Anchor,
			Line: entry.Line,
		})
	}
	return nil
}

// Todo reports every todo directive as a warning.
type Todo struct{}

// Name returns the extension name.
func (Todo) Name() string { return TodoName }

// Validate returns one warning per todo directive.
func (Todo) Validate(docs []*domain.Document, _ domain.Config) []domain.Diagnostic {
	var diags []domain.Diagnostic
	for _, doc := range docs {
		for _, dir := range doc.Directives {
			if dir.Name != "todo" {
				continue
			}
			text := dir.Content
			if len(dir.Args) > 0 && dir.Args[0] != "" {
				text = dir.Args[0]
			}
			text, _, _ = strings.Cut(strings.TrimSpace(text), "\n")
			diags = append(diags, domain.NewWarning(domain.KindOther, doc.SourcePath, dir.Line,
				fmt.Sprintf("TODO entry found: %s", text)))
		}
	}
	return diags
}

// NoJekyllFile disables Jekyll processing on GitHub Pages.
const NoJekyllFile = ".nojekyll"

// GithubPages writes the marker file GitHub Pages needs to serve underscore directories.
type GithubPages struct{}

// Name returns the extension name.
func (GithubPages) Name() string { return GithubPagesName }

// Finish creates an empty .nojekyll file in the output directory.
func (GithubPages) Finish(ctx context.Context, site *domain.Site) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path := filepath.Join(site.OutputDir, NoJekyllFile)
	if err := os.WriteFile(path, nil, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrWriteOutputFailed, err.Error()), "path", path)
	}
	return nil
}
