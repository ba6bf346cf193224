package parser

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"go.trai.ch/tome/internal/core/domain"
	"gopkg.in/yaml.v3"
)

func (p *Parser) parseMarkdown(doc *domain.Document) error {
	body, offset, meta, err := SplitFrontMatter(doc.Raw)
	if err != nil {
		return err
	}
	doc.Metadata = meta

	src := []byte(body)
	root := p.md.Parser().Parse(text.NewReader(src))

	err = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Heading:
			title := InlineText(node, src)
			doc.TOC = append(doc.TOC, domain.TocEntry{
				Title:  title,
				Level:  node.Level,
				Anchor: domain.Anchor(title),
				Line:   offset + blockLine(node, src),
			})
			return ast.WalkSkipChildren, nil
		case *ast.FencedCodeBlock:
			if dir, ok := FenceDirective(node, src); ok {
				dir.Line += offset
				doc.Directives = append(doc.Directives, *dir)
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return err
	}

	n := offset
	for line := range strings.SplitSeq(body, "\n") {
		n++
		if m := mystLabelRe.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			doc.Labels = append(doc.Labels, domain.Label{Name: m[1], Line: n})
		}
	}

	doc.CrossRefs = extractRoles(body, offset, roleRe, mystRoleRe)
	return nil
}

// SplitFrontMatter separates a leading "---" delimited YAML block from the Markdown
// body. It returns the body, the number of lines removed and the decoded fields.
// Without a closing delimiter the whole input is body.
func SplitFrontMatter(raw string) (string, int, map[string]string, error) {
	first, rest, found := strings.Cut(raw, "\n")
	if !found || strings.TrimRight(first, "\r") != "---" {
		return raw, 0, nil, nil
	}

	lines := strings.SplitAfter(rest, "\n")
	for i, line := range lines {
		if strings.TrimRight(line, "\r\n") != "---" {
			continue
		}
		header := strings.Join(lines[:i], "")
		body := strings.Join(lines[i+1:], "")

		var fields map[string]any
		if err := yaml.Unmarshal([]byte(header), &fields); err != nil {
			return "", 0, nil, fmt.Errorf("front matter: %w", err)
		}
		meta := make(map[string]string, len(fields))
		for k, v := range fields {
			meta[k] = formatField(v)
		}
		return body, i + 2, meta, nil
	}
	return raw, 0, nil, nil
}

func formatField(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case []any:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = formatField(item)
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(val)
	}
}

// FenceDirective interprets a fenced code block whose info string is "{name} args"
// as a directive. Leading ":key: value" lines of the block are its options.
func FenceDirective(node *ast.FencedCodeBlock, src []byte) (*domain.Directive, bool) {
	if node.Info == nil {
		return nil, false
	}
	info := strings.TrimSpace(string(node.Info.Segment.Value(src)))
	if !strings.HasPrefix(info, "{") {
		return nil, false
	}
	end := strings.Index(info, "}")
	if end < 2 {
		return nil, false
	}

	dir := &domain.Directive{
		Name: info[1:end],
		Line: lineAt(src, node.Info.Segment.Start),
	}
	if args := strings.TrimSpace(info[end+1:]); args != "" {
		dir.Args = []string{args}
	}

	var body strings.Builder
	inOptions := true
	lines := node.Lines()
	for i := range lines.Len() {
		seg := lines.At(i)
		line := string(seg.Value(src))
		trimmed := strings.TrimSpace(line)
		if inOptions && strings.HasPrefix(trimmed, ":") {
			if key, value, ok := strings.Cut(trimmed[1:], ":"); ok {
				if dir.Options == nil {
					dir.Options = make(map[string]string)
				}
				dir.Options[key] = strings.TrimSpace(value)
				continue
			}
		}
		if trimmed != "" {
			inOptions = false
		}
		body.WriteString(line)
	}
	dir.Content = strings.TrimSpace(body.String())
	return dir, true
}

// InlineText returns the plain text of the inline children of n.
func InlineText(n ast.Node, src []byte) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		default:
			b.WriteString(InlineText(c, src))
		}
	}
	return strings.TrimSpace(b.String())
}

func blockLine(n ast.Node, src []byte) int {
	lines := n.Lines()
	if lines == nil || lines.Len() == 0 {
		return 0
	}
	return lineAt(src, lines.At(0).Start)
}

// lineAt returns the 1-based line holding the byte at offset.
func lineAt(src []byte, offset int) int {
	if offset > len(src) {
		offset = len(src)
	}
	return bytes.Count(src[:offset], []byte("\n")) + 1
}
