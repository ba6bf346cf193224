package html

import (
	"fmt"
	"html/template"
	"strings"

	"go.trai.ch/tome/internal/core/domain"
)

var admonitions = map[string]string{
	"note":      "Note",
	"tip":       "Tip",
	"hint":      "Hint",
	"important": "Important",
	"warning":   "Warning",
	"caution":   "Caution",
	"attention": "Attention",
	"danger":    "Danger",
	"error":     "Error",
	"seealso":   "See also",
}

// bodyFunc renders directive content written in the markup of the enclosing document.
type bodyFunc func(content string) string

// renderDirective returns the HTML of a directive found in the document named from.
func renderDirective(from string, dir *domain.Directive, body bodyFunc) string {
	var b strings.Builder

	switch name := dir.Name; {
	case name == domain.ToctreeDirective:
		if _, hidden := dir.Options["hidden"]; hidden {
			return ""
		}
		b.WriteString("<div class=\"toctree-wrapper\">\n")
		if caption := dir.Options["caption"]; caption != "" {
			fmt.Fprintf(&b, "<p class=\"caption\">%s</p>\n", template.HTMLEscapeString(caption))
		}
		b.WriteString("<ul>\n")
		for _, line := range tocLines(dir.Content) {
			target := domain.ResolveDocRef(from, domain.LinkTarget(line))
			fmt.Fprintf(&b, "<li><a class=\"reference internal\" href=\"%s\">%s</a></li>\n",
				template.HTMLEscapeString(domain.DocURL(from, target)),
				template.HTMLEscapeString(linkText(line)))
		}
		b.WriteString("</ul>\n</div>\n")

	case name == "code-block" || name == "code" || name == "sourcecode":
		lang := ""
		if len(dir.Args) > 0 {
			lang = dir.Args[0]
		}
		writeCode(&b, lang, dir.Content)

	case name == "image" || name == "figure":
		if len(dir.Args) == 0 {
			return ""
		}
		fmt.Fprintf(&b, "<img src=\"%s\" alt=\"%s\">\n",
			template.HTMLEscapeString(dir.Args[0]),
			template.HTMLEscapeString(dir.Options["alt"]))

	case admonitions[name] != "":
		title := admonitions[name]
		fmt.Fprintf(&b, "<div class=\"admonition %s\">\n<p class=\"admonition-title\">%s</p>\n", name, title)
		content := dir.Content
		if len(dir.Args) > 0 {
			content = dir.Args[0] + "\n\n" + content
		}
		b.WriteString(body(content))
		b.WriteString("</div>\n")

	case name == "include" || name == "literalinclude":
		// Resolved through the dependency graph, nothing to show inline.
		return ""

	default:
		fmt.Fprintf(&b, "<div class=\"directive %s\">\n", template.HTMLEscapeString(name))
		b.WriteString(body(dir.Content))
		b.WriteString("</div>\n")
	}

	return b.String()
}

func writeCode(b *strings.Builder, lang, code string) {
	if lang != "" {
		fmt.Fprintf(b, "<pre><code class=\"language-%s\">", template.HTMLEscapeString(lang))
	} else {
		b.WriteString("<pre><code>")
	}
	b.WriteString(template.HTMLEscapeString(code))
	b.WriteString("</code></pre>\n")
}

// tocLines returns the raw entry lines of a toctree body.
func tocLines(content string) []string {
	var lines []string
	for line := range strings.SplitSeq(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, ":") || strings.HasPrefix(line, "..") {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// linkText returns the explicit title of a "Title <target>" reference, or the
// reference itself.
func linkText(ref string) string {
	ref = strings.TrimSpace(ref)
	if strings.HasSuffix(ref, ">") {
		if open := strings.LastIndex(ref, "<"); open > 0 {
			return strings.TrimSpace(ref[:open])
		}
	}
	return ref
}
