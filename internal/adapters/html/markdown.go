package html

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
	"go.trai.ch/tome/internal/adapters/parser"
	"go.trai.ch/tome/internal/core/domain"
)

// kindRawBlock is a block replaced by pre-rendered HTML.
var kindRawBlock = ast.NewNodeKind("RawBlock")

type rawBlock struct {
	ast.BaseBlock
	html string
}

func (n *rawBlock) Kind() ast.NodeKind {
	return kindRawBlock
}

func (n *rawBlock) Dump(src []byte, level int) {
	ast.DumpHelper(n, src, level, map[string]string{"html": n.html}, nil)
}

type rawBlockRenderer struct{}

func (r *rawBlockRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(kindRawBlock, r.render)
}

func (r *rawBlockRenderer) render(w util.BufWriter, _ []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString(n.(*rawBlock).html)
	}
	return ast.WalkSkipChildren, nil
}

func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(
			gmhtml.WithUnsafe(),
			renderer.WithNodeRenderers(util.Prioritized(&rawBlockRenderer{}, 100)),
		),
	)
}

// renderMarkdown returns the body HTML of a Markdown document. Headings get the
// anchors recorded in the table of contents and "{name}" fences become directives.
func (r *Renderer) renderMarkdown(from, src string) (string, error) {
	body, _, _, err := parser.SplitFrontMatter(src)
	if err != nil {
		return "", err
	}
	source := []byte(body)
	root := r.md.Parser().Parse(text.NewReader(source))

	var fences []*ast.FencedCodeBlock
	err = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Heading:
			node.SetAttributeString("id", []byte(domain.Anchor(parser.InlineText(node, source))))
			return ast.WalkSkipChildren, nil
		case *ast.FencedCodeBlock:
			if _, ok := parser.FenceDirective(node, source); ok {
				fences = append(fences, node)
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return "", err
	}

	for _, fence := range fences {
		dir, _ := parser.FenceDirective(fence, source)
		html := renderDirective(from, dir, func(content string) string {
			out, err := r.renderMarkdown(from, content)
			if err != nil {
				return ""
			}
			return out
		})
		parent := fence.Parent()
		parent.ReplaceChild(parent, fence, &rawBlock{html: html})
	}

	var buf bytes.Buffer
	if err := r.md.Renderer().Render(&buf, source, root); err != nil {
		return "", err
	}
	return buf.String(), nil
}
