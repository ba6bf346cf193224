// Package parser turns reStructuredText, Markdown and plain text sources into documents.
package parser

import (
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"go.trai.ch/tome/internal/core/domain"
	"go.trai.ch/tome/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Parser = (*Parser)(nil)

// Parser dispatches on the file extension of the source path.
type Parser struct {
	md goldmark.Markdown
}

// New creates a Parser.
func New() *Parser {
	return &Parser{
		md: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// Parse parses content read from path, a path relative to the source root.
// The returned document carries no HTML yet.
func (p *Parser) Parse(path string, content []byte) (*domain.Document, error) {
	if !utf8.Valid(content) {
		return nil, zerr.With(zerr.Wrap(domain.ErrParseFailed, "source is not valid UTF-8"), "path", path)
	}

	doc := &domain.Document{
		SourcePath: path,
		OutputPath: domain.OutputName(path),
		Name:       domain.DocName(path),
		Format:     domain.FormatForPath(path),
		Raw:        string(content),
	}

	switch doc.Format {
	case domain.FormatRST:
		parseRST(doc)
	case domain.FormatMarkdown:
		if err := p.parseMarkdown(doc); err != nil {
			return nil, zerr.With(zerr.Wrap(domain.ErrParseFailed, err.Error()), "path", path)
		}
	default:
		doc.CrossRefs = extractCrossRefs(doc.Raw, 0)
	}

	doc.Title = titleOf(doc)
	return doc, nil
}

// titleOf prefers an explicit "title" field, then the first heading.
func titleOf(doc *domain.Document) string {
	if title := doc.Metadata["title"]; title != "" {
		return title
	}
	if len(doc.TOC) > 0 {
		return doc.TOC[0].Title
	}
	return domain.UntitledDocument
}
