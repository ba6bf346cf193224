// Package html renders parsed documents into standalone HTML pages.
package html

import (
	"bytes"
	_ "embed"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"go.trai.ch/tome/internal/core/domain"
	"go.trai.ch/tome/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Renderer = (*Renderer)(nil)

//go:embed page.html.tmpl
var pageTemplate string

// Renderer converts document bodies to HTML and wraps them in the page template.
type Renderer struct {
	md   goldmark.Markdown
	page *template.Template
}

// NewRenderer creates a Renderer with the built-in page template.
func NewRenderer() *Renderer {
	return &Renderer{
		md:   newMarkdown(),
		page: template.Must(template.New("page").Parse(pageTemplate)),
	}
}

type pageData struct {
	Title string
	Root  string
	TOC   []domain.TocEntry
	Body  template.HTML
}

// Render fills doc.HTML and writes the page below outputRoot.
func (r *Renderer) Render(doc *domain.Document, outputRoot string) error {
	page, err := r.RenderPage(doc)
	if err != nil {
		return err
	}
	doc.HTML = page
	return r.Write(doc, outputRoot)
}

// RenderPage returns the complete page of doc without touching the file system.
func (r *Renderer) RenderPage(doc *domain.Document) (string, error) {
	var body string
	switch doc.Format {
	case domain.FormatRST:
		body = renderRST(doc.Name, doc.Raw)
	case domain.FormatMarkdown:
		var err error
		if body, err = r.renderMarkdown(doc.Name, doc.Raw); err != nil {
			return "", zerr.With(zerr.Wrap(domain.ErrParseFailed, err.Error()), "path", doc.SourcePath)
		}
	default:
		body = "<pre class=\"literal-block\">" + template.HTMLEscapeString(doc.Raw) + "</pre>\n"
	}

	var buf bytes.Buffer
	err := r.page.Execute(&buf, pageData{
		Title: doc.Title,
		Root:  strings.Repeat("../", strings.Count(doc.Name, "/")),
		TOC:   doc.TOC,
		Body:  template.HTML(body), //nolint:gosec // body is produced by the escaping renderers above
	})
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to execute page template"), "path", doc.SourcePath)
	}
	return buf.String(), nil
}

// Write writes doc.HTML to doc.OutputPath inside outputRoot.
func (r *Renderer) Write(doc *domain.Document, outputRoot string) error {
	path := filepath.Join(outputRoot, doc.OutputPath)
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrCreateOutputFailed, err.Error()), "path", filepath.Dir(path))
	}
	if err := os.WriteFile(path, []byte(doc.HTML), domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrWriteOutputFailed, err.Error()), "path", path)
	}
	return nil
}
