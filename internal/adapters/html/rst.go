package html

import (
	"fmt"
	"html/template"
	"regexp"
	"slices"
	"strings"

	"go.trai.ch/tome/internal/adapters/parser/rst"
	"go.trai.ch/tome/internal/core/domain"
)

var inlineRe = regexp.MustCompile(
	":([\\w-]+):`([^`]+)`" + // role
		"|``([^`]+)``" + // inline literal
		"|\\*\\*([^*]+)\\*\\*" + // strong
		"|\\*([^*\\s][^*]*)\\*" + // emphasis
		"|`([^`<]+?)\\s*<([^>]+)>`__?" + // hyperlink
		"|`([^`]+)`", // interpreted text
)

// renderRST returns the body HTML of a reStructuredText document.
func renderRST(from, src string) string {
	blocks := rst.Parse(src)

	var levels []int
	for _, b := range blocks {
		if b.Kind == rst.KindTitle && !slices.Contains(levels, b.Level) {
			levels = append(levels, b.Level)
		}
	}
	slices.Sort(levels)

	var out strings.Builder
	for _, b := range blocks {
		switch b.Kind {
		case rst.KindTitle:
			h := min(slices.Index(levels, b.Level)+1, 6)
			fmt.Fprintf(&out, "<h%d id=\"%s\">%s</h%d>\n",
				h, template.HTMLEscapeString(domain.Anchor(b.Text)), inlineRST(from, b.Text), h)
		case rst.KindParagraph:
			fmt.Fprintf(&out, "<p>%s</p>\n", inlineRST(from, b.Text))
		case rst.KindLiteral:
			writeCode(&out, "", b.Text)
		case rst.KindLabel:
			fmt.Fprintf(&out, "<span id=\"%s\"></span>\n", template.HTMLEscapeString(b.Text))
		case rst.KindBullets:
			out.WriteString("<ul>\n")
			for _, item := range b.Items {
				fmt.Fprintf(&out, "<li>%s</li>\n", inlineRST(from, item))
			}
			out.WriteString("</ul>\n")
		case rst.KindDirective:
			out.WriteString(renderDirective(from, b.Directive, func(content string) string {
				return renderRST(from, content)
			}))
		}
	}
	return out.String()
}

// inlineRST renders inline markup of a text run, escaping everything else.
func inlineRST(from, s string) string {
	var b strings.Builder
	last := 0
	for _, m := range inlineRe.FindAllStringSubmatchIndex(s, -1) {
		b.WriteString(template.HTMLEscapeString(s[last:m[0]]))
		group := func(i int) string {
			if m[2*i] < 0 {
				return ""
			}
			return s[m[2*i]:m[2*i+1]]
		}

		switch {
		case m[2] >= 0:
			b.WriteString(renderRole(from, group(1), group(2)))
		case m[6] >= 0:
			fmt.Fprintf(&b, "<code>%s</code>", template.HTMLEscapeString(group(3)))
		case m[8] >= 0:
			fmt.Fprintf(&b, "<strong>%s</strong>", template.HTMLEscapeString(group(4)))
		case m[10] >= 0:
			fmt.Fprintf(&b, "<em>%s</em>", template.HTMLEscapeString(group(5)))
		case m[12] >= 0:
			fmt.Fprintf(&b, "<a class=\"reference external\" href=\"%s\">%s</a>",
				template.HTMLEscapeString(group(7)), template.HTMLEscapeString(group(6)))
		default:
			fmt.Fprintf(&b, "<cite>%s</cite>", template.HTMLEscapeString(group(8)))
		}
		last = m[1]
	}
	b.WriteString(template.HTMLEscapeString(s[last:]))
	return b.String()
}

func renderRole(from, role, body string) string {
	text := template.HTMLEscapeString(linkText(body))
	target := domain.LinkTarget(body)

	switch role {
	case "doc":
		href := domain.DocURL(from, domain.ResolveDocRef(from, target))
		return fmt.Sprintf("<a class=\"reference internal\" href=\"%s\">%s</a>", template.HTMLEscapeString(href), text)
	case "ref":
		return fmt.Sprintf("<a class=\"reference internal\" href=\"#%s\">%s</a>", template.HTMLEscapeString(target), text)
	default:
		return fmt.Sprintf("<code class=\"xref %s\">%s</code>", template.HTMLEscapeString(role), text)
	}
}
