package domain

import (
	"maps"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// Format identifies the markup language of a source document.
type Format string

const (
	// FormatRST is reStructuredText.
	FormatRST Format = "rst"
	// FormatMarkdown is CommonMark with MyST-style directive fences.
	FormatMarkdown Format = "markdown"
	// FormatText is plain text rendered verbatim.
	FormatText Format = "text"
)

// FormatForPath returns the format implied by the file extension of path.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".rst":
		return FormatRST
	case ".md":
		return FormatMarkdown
	default:
		return FormatText
	}
}

// ToctreeDirective is the directive name declaring navigation children.
const ToctreeDirective = "toctree"

// Directive is a block-level directive found in a document.
type Directive struct {
	Name    string            `json:"name"`
	Args    []string          `json:"args,omitempty"`
	Options map[string]string `json:"options,omitempty"`
	Content string            `json:"content,omitempty"`
	Line    int               `json:"line"`
}

// Entries returns the navigation entries listed in the directive body.
// Blank lines, option lines and comments are ignored. An entry written as
// "Title <target>" yields target.
func (d *Directive) Entries() []string {
	var entries []string
	for line := range strings.SplitSeq(d.Content, "\n") {
		entry := strings.TrimSpace(line)
		if entry == "" || strings.HasPrefix(entry, ":") || strings.HasPrefix(entry, "..") {
			continue
		}
		if entry = LinkTarget(entry); entry != "" {
			entries = append(entries, entry)
		}
	}
	return entries
}

// TocEntry is a heading of a document.
type TocEntry struct {
	Title  string `json:"title"`
	Level  int    `json:"level"`
	Anchor string `json:"anchor"`
	Line   int    `json:"line"`
}

// CrossRef is an inline role referencing another object, e.g. :doc:`guide`.
type CrossRef struct {
	Role   string `json:"role"`
	Target string `json:"target"`
	Line   int    `json:"line"`
}

// Label is an explicit link target, e.g. ".. _install:".
type Label struct {
	Name string `json:"name"`
	Line int    `json:"line"`
}

// Document is a parsed and rendered source file.
type Document struct {
	SourcePath  string            `json:"source_path"`
	OutputPath  string            `json:"output_path"`
	Name        string            `json:"name"`
	Format      Format            `json:"format"`
	Title       string            `json:"title"`
	Raw         string            `json:"raw"`
	Directives  []Directive       `json:"directives,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	HTML        string            `json:"html"`
	SourceMtime time.Time         `json:"source_mtime"`
	BuildTime   time.Time         `json:"build_time"`
	CrossRefs   []CrossRef        `json:"cross_refs,omitempty"`
	Labels      []Label           `json:"labels,omitempty"`
	TOC         []TocEntry        `json:"toc,omitempty"`
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	c := *d
	if d.Directives != nil {
		c.Directives = make([]Directive, len(d.Directives))
		for i, dir := range d.Directives {
			dir.Args = slices.Clone(dir.Args)
			dir.Options = maps.Clone(dir.Options)
			c.Directives[i] = dir
		}
	}
	c.Metadata = maps.Clone(d.Metadata)
	c.CrossRefs = slices.Clone(d.CrossRefs)
	c.Labels = slices.Clone(d.Labels)
	c.TOC = slices.Clone(d.TOC)
	return &c
}

// Toctrees returns the navigation directives of the document.
func (d *Document) Toctrees() []Directive {
	var out []Directive
	for _, dir := range d.Directives {
		if dir.Name == ToctreeDirective {
			out = append(out, dir)
		}
	}
	return out
}

// DocName converts a path relative to the source root into a document name:
// slash separated and without extension.
func DocName(rel string) string {
	return filepath.ToSlash(strings.TrimSuffix(rel, filepath.Ext(rel)))
}

// OutputName returns the output path, relative to the output root, for a source path
// relative to the source root.
func OutputName(rel string) string {
	return strings.TrimSuffix(rel, filepath.Ext(rel)) + HTMLExt
}

// LinkTarget returns the target of a reference body, honoring the explicit
// "Title <target>" form.
func LinkTarget(body string) string {
	body = strings.TrimSpace(body)
	if strings.HasSuffix(body, ">") {
		if open := strings.LastIndex(body, "<"); open >= 0 {
			return strings.TrimSpace(body[open+1 : len(body)-1])
		}
	}
	return body
}

// UntitledDocument is the title of a document without headings.
const UntitledDocument = "Untitled"

// Anchor returns the fragment identifier of a heading: lowercased, with spaces
// replaced by dashes.
func Anchor(title string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(title)), " ", "-")
}

// ResolveDocRef resolves a document reference written in the document named from.
// A leading slash makes target absolute from the source root; otherwise it is
// relative to the directory of from.
func ResolveDocRef(from, target string) string {
	target = strings.TrimSpace(target)
	if rest, ok := strings.CutPrefix(target, "/"); ok {
		return path.Clean(rest)
	}
	return path.Join(path.Dir(from), target)
}

// DocURL returns the relative href of the document named target as seen from
// the page of the document named from.
func DocURL(from, target string) string {
	rel, err := filepath.Rel(filepath.Dir(filepath.FromSlash(from)), filepath.FromSlash(target))
	if err != nil {
		return target + HTMLExt
	}
	return filepath.ToSlash(rel) + HTMLExt
}
