package parser_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tome/internal/adapters/parser"
	"go.trai.ch/tome/internal/core/domain"
)

func TestParser_ParseRST(t *testing.T) {
	src := `.. _top:

Welcome
=======

Read the :doc:` + "`guide`" + ` and :ref:` + "`Setup <install>`" + `.

Details
-------

.. toctree::
   :maxdepth: 2

   guide
   api/index
`

	doc, err := parser.New().Parse("index.rst", []byte(src))
	require.NoError(t, err)

	assert.Equal(t, "index.rst", doc.SourcePath)
	assert.Equal(t, "index.html", doc.OutputPath)
	assert.Equal(t, "index", doc.Name)
	assert.Equal(t, domain.FormatRST, doc.Format)
	assert.Equal(t, src, doc.Raw)
	assert.Equal(t, "Welcome", doc.Title)
	assert.Empty(t, doc.HTML)

	assert.Equal(t, []domain.TocEntry{
		{Title: "Welcome", Level: 3, Anchor: "welcome", Line: 3},
		{Title: "Details", Level: 4, Anchor: "details", Line: 8},
	}, doc.TOC)
	assert.Equal(t, []domain.Label{{Name: "top", Line: 1}}, doc.Labels)
	assert.Equal(t, []domain.CrossRef{
		{Role: "doc", Target: "guide", Line: 6},
		{Role: "ref", Target: "install", Line: 6},
	}, doc.CrossRefs)

	require.Len(t, doc.Toctrees(), 1)
	toctree := doc.Toctrees()[0]
	assert.Equal(t, 11, toctree.Line)
	assert.Equal(t, "2", toctree.Options["maxdepth"])
	assert.Equal(t, []string{"guide", "api/index"}, toctree.Entries())
}

func TestParser_ParseRST_OrphanField(t *testing.T) {
	doc, err := parser.New().Parse("notes/draft.rst", []byte(":orphan:\n\nDraft\n=====\n"))
	require.NoError(t, err)

	assert.Equal(t, "notes/draft", doc.Name)
	assert.Equal(t, "notes/draft.html", doc.OutputPath)
	assert.Contains(t, doc.Metadata, "orphan")
	assert.Equal(t, "Draft", doc.Title)
}

func TestParser_ParseMarkdown(t *testing.T) {
	src := "---\ntitle: Guide Home\ntags: [a, b]\n---\n" +
		"(guide-top)=\n" +
		"# Getting Started\n\nSee {doc}`../index` and :ref:`top`.\n\n" +
		"## Install `tome`\n\n" +
		"```{toctree}\n:maxdepth: 1\n\ninstall\nusage\n```\n\n" +
		"```go\nfunc main() {}\n```\n"

	doc, err := parser.New().Parse("guide/index.md", []byte(src))
	require.NoError(t, err)

	assert.Equal(t, domain.FormatMarkdown, doc.Format)
	assert.Equal(t, "Guide Home", doc.Title)
	assert.Equal(t, map[string]string{"title": "Guide Home", "tags": "a, b"}, doc.Metadata)

	assert.Equal(t, []domain.TocEntry{
		{Title: "Getting Started", Level: 1, Anchor: "getting-started", Line: 6},
		{Title: "Install tome", Level: 2, Anchor: "install-tome", Line: 10},
	}, doc.TOC)
	assert.Equal(t, []domain.Label{{Name: "guide-top", Line: 5}}, doc.Labels)
	assert.Equal(t, []domain.CrossRef{
		{Role: "ref", Target: "top", Line: 8},
		{Role: "doc", Target: "../index", Line: 8},
	}, doc.CrossRefs)

	require.Len(t, doc.Directives, 1)
	dir := doc.Directives[0]
	assert.Equal(t, "toctree", dir.Name)
	assert.Equal(t, 12, dir.Line)
	assert.Equal(t, map[string]string{"maxdepth": "1"}, dir.Options)
	assert.Equal(t, []string{"install", "usage"}, dir.Entries())
}

func TestParser_ParseMarkdown_TitleFromHeading(t *testing.T) {
	doc, err := parser.New().Parse("a.md", []byte("Intro text.\n\n## Section\n"))
	require.NoError(t, err)
	assert.Equal(t, "Section", doc.Title)
	assert.Nil(t, doc.Metadata)
}

func TestParser_ParseMarkdown_BadFrontMatter(t *testing.T) {
	_, err := parser.New().Parse("bad.md", []byte("---\ntitle: [unclosed\n---\n# Bad\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrParseFailed))
}

func TestParser_ParseText(t *testing.T) {
	doc, err := parser.New().Parse("notes.txt", []byte("plain notes\nsee :doc:`index`\n"))
	require.NoError(t, err)

	assert.Equal(t, domain.FormatText, doc.Format)
	assert.Equal(t, domain.UntitledDocument, doc.Title)
	assert.Equal(t, "notes.html", doc.OutputPath)
	assert.Empty(t, doc.TOC)
	assert.Equal(t, []domain.CrossRef{{Role: "doc", Target: "index", Line: 2}}, doc.CrossRefs)
}

func TestParser_InvalidUTF8(t *testing.T) {
	_, err := parser.New().Parse("broken.rst", []byte{0xff, 0xfe, 'x'})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrParseFailed))
}

func TestParser_IsPure(t *testing.T) {
	p := parser.New()
	src := []byte("Title\n=====\n\nBody :doc:`x`.\n")

	first, err := p.Parse("a.rst", src)
	require.NoError(t, err)
	second, err := p.Parse("a.rst", src)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSplitFrontMatter(t *testing.T) {
	body, offset, meta, err := parser.SplitFrontMatter("---\nauthor: x\n---\n# T\n")
	require.NoError(t, err)
	assert.Equal(t, "# T\n", body)
	assert.Equal(t, 3, offset)
	assert.Equal(t, map[string]string{"author": "x"}, meta)

	body, offset, meta, err = parser.SplitFrontMatter("---\nno closing delimiter\n")
	require.NoError(t, err)
	assert.Equal(t, "---\nno closing delimiter\n", body)
	assert.Zero(t, offset)
	assert.Nil(t, meta)
}
