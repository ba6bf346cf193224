package html_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tome/internal/adapters/html"
	"go.trai.ch/tome/internal/core/domain"
)

const guideSource = "Guide\n=====\n\n" +
	"Use ``tome build`` with **care** and see :doc:`Home <../index>`.\n\n" +
	".. note:: Keep it short.\n\n" +
	".. toctree::\n   :caption: Parts\n\n   intro\n   Setup <setup>\n"

func TestRenderer_RenderRST(t *testing.T) {
	out := t.TempDir()
	doc := &domain.Document{
		SourcePath: "guide/index.rst",
		OutputPath: filepath.Join("guide", "index.html"),
		Name:       "guide/index",
		Format:     domain.FormatRST,
		Title:      "Guide",
		Raw:        guideSource,
		TOC:        []domain.TocEntry{{Title: "Guide", Level: 3, Anchor: "guide", Line: 1}},
	}

	require.NoError(t, html.NewRenderer().Render(doc, out))

	g := goldie.New(t)
	g.Assert(t, "rst_page", []byte(doc.HTML))

	written, err := os.ReadFile(filepath.Join(out, "guide", "index.html"))
	require.NoError(t, err)
	assert.Equal(t, doc.HTML, string(written))
}

func TestRenderer_RenderMarkdown(t *testing.T) {
	src := "---\ntitle: Start\n---\n# Getting Started\n\nSome *text*.\n\n" +
		"```{toctree}\n:maxdepth: 1\n\ninstall\n```\n\n" +
		"```{warning}\nMind the **gap**.\n```\n\n" +
		"```go\nfunc main() {}\n```\n"
	doc := &domain.Document{
		Name:       "index",
		OutputPath: "index.html",
		Format:     domain.FormatMarkdown,
		Title:      "Start",
		Raw:        src,
	}

	page, err := html.NewRenderer().RenderPage(doc)
	require.NoError(t, err)

	assert.Contains(t, page, "<title>Start</title>")
	assert.Contains(t, page, `<link rel="stylesheet" href="_static/theme.css">`)
	assert.Contains(t, page, `<h1 id="getting-started">Getting Started</h1>`)
	assert.Contains(t, page, "<em>text</em>")
	assert.Contains(t, page, `<li><a class="reference internal" href="install.html">install</a></li>`)
	assert.Contains(t, page, `<div class="admonition warning">`)
	assert.Contains(t, page, "<strong>gap</strong>")
	assert.Contains(t, page, `<code class="language-go">`)
	assert.NotContains(t, page, "{toctree}")
	assert.NotContains(t, page, "title: Start")
}

func TestRenderer_RenderText(t *testing.T) {
	doc := &domain.Document{
		Name:       "notes",
		OutputPath: "notes.html",
		Format:     domain.FormatText,
		Title:      domain.UntitledDocument,
		Raw:        "a < b & c",
	}

	page, err := html.NewRenderer().RenderPage(doc)
	require.NoError(t, err)
	assert.Contains(t, page, `<pre class="literal-block">a &lt; b &amp; c</pre>`)
	assert.NotContains(t, page, "page-toc")
}

func TestRenderer_HiddenToctree(t *testing.T) {
	doc := &domain.Document{
		Name:   "index",
		Format: domain.FormatRST,
		Raw:    ".. toctree::\n   :hidden:\n\n   guide\n",
	}

	page, err := html.NewRenderer().RenderPage(doc)
	require.NoError(t, err)
	assert.NotContains(t, page, "toctree-wrapper")
}

func TestRenderer_WriteExistingHTML(t *testing.T) {
	out := t.TempDir()
	doc := &domain.Document{OutputPath: filepath.Join("a", "b.html"), HTML: "<p>cached</p>"}

	require.NoError(t, html.NewRenderer().Write(doc, out))

	written, err := os.ReadFile(filepath.Join(out, "a", "b.html"))
	require.NoError(t, err)
	assert.Equal(t, "<p>cached</p>", string(written))
}

func TestRenderer_WriteFailsOnFileOutputRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "out")
	require.NoError(t, os.WriteFile(root, []byte("x"), 0o600))

	err := html.NewRenderer().Write(&domain.Document{OutputPath: "index.html"}, root)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrCreateOutputFailed))
}
