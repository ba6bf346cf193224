// Package rst splits reStructuredText sources into the block structure shared
// by the parser and the HTML renderer.
package rst

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"go.trai.ch/tome/internal/core/domain"
)

// Kind is the type of a block.
type Kind uint8

const (
	// KindTitle is a section title.
	KindTitle Kind = iota
	// KindParagraph is a run of text lines.
	KindParagraph
	// KindLiteral is an indented literal block introduced by "::".
	KindLiteral
	// KindDirective is an explicit ".. name::" block.
	KindDirective
	// KindLabel is an explicit link target ".. _name:".
	KindLabel
	// KindBullets is a bullet list.
	KindBullets
)

// Block is one top-level element of a document.
type Block struct {
	Kind      Kind
	Text      string
	Level     int
	Line      int
	Items     []string
	Directive *domain.Directive
}

// adornment lists the characters accepted in title underlines and overlines.
const adornment = "=-~^\"'*+#<>"

var (
	directiveRe = regexp.MustCompile(`^\s*\.\.\s+(\w[\w-]*)::\s*(.*?)$`)
	labelRe     = regexp.MustCompile(`^\s*\.\.\s+_([^:]+):\s*$`)
	bulletRe    = regexp.MustCompile(`^[-*+]\s+`)
	fieldRe     = regexp.MustCompile(`^:([\w-]+):\s*(.*?)\s*$`)
)

// TitleLevel maps an adornment character to a section level.
func TitleLevel(c rune) int {
	switch c {
	case '#':
		return 1
	case '*':
		return 2
	case '=':
		return 3
	case '-':
		return 4
	case '^':
		return 5
	case '"':
		return 6
	default:
		return 7
	}
}

func splitLines(src string) []string {
	return strings.Split(strings.ReplaceAll(src, "\r\n", "\n"), "\n")
}

// Fields returns the field list opening the document, e.g. ":orphan:".
func Fields(src string) map[string]string {
	fields, _ := leadingFields(splitLines(src))
	return fields
}

func leadingFields(lines []string) (map[string]string, int) {
	var fields map[string]string
	i := 0
	for i < len(lines) {
		line := lines[i]
		if strings.TrimSpace(line) == "" {
			i++
			continue
		}
		m := fieldRe.FindStringSubmatch(line)
		if m == nil {
			break
		}
		if fields == nil {
			fields = make(map[string]string)
		}
		fields[m[1]] = m[2]
		i++
	}
	if fields == nil {
		return nil, 0
	}
	return fields, i
}

// Parse splits src into blocks. Line numbers are 1-based. A leading field list
// is skipped, see Fields.
func Parse(src string) []Block {
	lines := splitLines(src)
	_, start := leadingFields(lines)
	var blocks []Block

	for i := start; i < len(lines); {
		line := lines[i]
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "":
			i++

		case labelRe.MatchString(line):
			name := labelRe.FindStringSubmatch(line)[1]
			blocks = append(blocks, Block{Kind: KindLabel, Text: strings.TrimSpace(name), Line: i + 1})
			i++

		case directiveRe.MatchString(line):
			m := directiveRe.FindStringSubmatch(line)
			dir, consumed := parseDirective(lines[i:], m[1], m[2], i+1)
			blocks = append(blocks, Block{Kind: KindDirective, Line: i + 1, Directive: dir})
			i += consumed

		case strings.HasPrefix(trimmed, ".."):
			// Comment: the marker line and its indented body.
			i++
			for i < len(lines) && (isIndented(lines[i]) || strings.TrimSpace(lines[i]) == "") {
				i++
			}

		case isOverlinedTitle(lines, i):
			text := strings.TrimSpace(lines[i+1])
			blocks = append(blocks, Block{Kind: KindTitle, Text: text, Level: TitleLevel(rune(trimmed[0])), Line: i + 2})
			i += 3

		case isUnderlinedTitle(lines, i):
			under := strings.TrimSpace(lines[i+1])
			blocks = append(blocks, Block{Kind: KindTitle, Text: trimmed, Level: TitleLevel(rune(under[0])), Line: i + 1})
			i += 2

		case bulletRe.MatchString(trimmed) && !isIndented(line):
			items, consumed := parseBullets(lines[i:])
			blocks = append(blocks, Block{Kind: KindBullets, Items: items, Line: i + 1})
			i += consumed

		default:
			text, consumed := parseParagraph(lines[i:])
			start := i + 1
			i += consumed
			if !strings.HasSuffix(text, "::") {
				blocks = append(blocks, Block{Kind: KindParagraph, Text: text, Line: start})
				continue
			}
			// "Paragraph::" keeps one colon, "Paragraph ::" and a bare "::" keep none.
			intro := strings.TrimSuffix(text, ":")
			if text == "::" || strings.HasSuffix(text, " ::") {
				intro = strings.TrimSpace(strings.TrimSuffix(text, "::"))
			}
			if intro != "" {
				blocks = append(blocks, Block{Kind: KindParagraph, Text: intro, Line: start})
			}
			literal, used := parseLiteral(lines[i:])
			if used > 0 {
				blocks = append(blocks, Block{Kind: KindLiteral, Text: literal, Line: i + 1})
				i += used
			}
		}
	}

	return blocks
}

func isIndented(line string) bool {
	return strings.HasPrefix(line, "   ") || strings.HasPrefix(line, "\t")
}

func isAdornment(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if !strings.ContainsRune(adornment, c) {
			return false
		}
	}
	return true
}

func isUnderlinedTitle(lines []string, i int) bool {
	if i+1 >= len(lines) || isIndented(lines[i]) {
		return false
	}
	text := strings.TrimSpace(lines[i])
	under := strings.TrimSpace(lines[i+1])
	return isAdornment(under) && utf8.RuneCountInString(under) >= utf8.RuneCountInString(text)
}

func isOverlinedTitle(lines []string, i int) bool {
	if i+2 >= len(lines) {
		return false
	}
	over := strings.TrimSpace(lines[i])
	text := strings.TrimSpace(lines[i+1])
	under := strings.TrimSpace(lines[i+2])
	return isAdornment(over) && over == under && text != "" && !isAdornment(text)
}

func parseDirective(lines []string, name, args string, start int) (*domain.Directive, int) {
	dir := &domain.Directive{Name: name, Line: start}
	if args = strings.TrimSpace(args); args != "" {
		dir.Args = []string{args}
	}

	i := 1
	for i < len(lines) {
		line := lines[i]
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			i++
			continue
		}
		if !isIndented(line) || !strings.HasPrefix(trimmed, ":") {
			break
		}
		key, value, ok := strings.Cut(trimmed[1:], ":")
		if !ok {
			break
		}
		if dir.Options == nil {
			dir.Options = make(map[string]string)
		}
		dir.Options[key] = strings.TrimSpace(value)
		i++
	}

	var content strings.Builder
	for i < len(lines) {
		line := lines[i]
		switch {
		case strings.HasPrefix(line, "   "):
			content.WriteString(line[3:])
		case strings.HasPrefix(line, "\t"):
			content.WriteString(line[1:])
		case strings.TrimSpace(line) == "":
		default:
			dir.Content = strings.TrimRight(content.String(), "\n ")
			return dir, i
		}
		content.WriteByte('\n')
		i++
	}

	dir.Content = strings.TrimRight(content.String(), "\n ")
	return dir, i
}

func parseParagraph(lines []string) (string, int) {
	parts := make([]string, 0, 4)
	i := 0
	for i < len(lines) {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" {
			break
		}
		if i > 0 && (directiveRe.MatchString(lines[i]) || labelRe.MatchString(lines[i])) {
			break
		}
		parts = append(parts, trimmed)
		i++
	}
	return strings.Join(parts, " "), i
}

func parseBullets(lines []string) ([]string, int) {
	var items []string
	i := 0
	for i < len(lines) {
		line := lines[i]
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			return items, i
		case !isIndented(line) && bulletRe.MatchString(trimmed):
			items = append(items, bulletRe.ReplaceAllString(trimmed, ""))
		case len(items) > 0 && (line[0] == ' ' || line[0] == '\t'):
			items[len(items)-1] += " " + trimmed
		default:
			return items, i
		}
		i++
	}
	return items, i
}

// parseLiteral collects the indented block following a "::" paragraph,
// skipping leading blank lines and removing the common indentation.
func parseLiteral(lines []string) (string, int) {
	i := 0
	for i < len(lines) && strings.TrimSpace(lines[i]) == "" {
		i++
	}
	if i == len(lines) || !isIndented(lines[i]) {
		return "", 0
	}

	var body []string
	for i < len(lines) && (isIndented(lines[i]) || strings.TrimSpace(lines[i]) == "") {
		body = append(body, strings.ReplaceAll(lines[i], "\t", "    "))
		i++
	}
	for len(body) > 0 && strings.TrimSpace(body[len(body)-1]) == "" {
		body = body[:len(body)-1]
	}

	indent := -1
	for _, l := range body {
		if strings.TrimSpace(l) == "" {
			continue
		}
		n := len(l) - len(strings.TrimLeft(l, " "))
		if indent < 0 || n < indent {
			indent = n
		}
	}
	for j, l := range body {
		if len(l) >= indent {
			body[j] = l[indent:]
		} else {
			body[j] = ""
		}
	}
	return strings.Join(body, "\n"), i
}
