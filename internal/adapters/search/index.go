// Package search builds the full text search index written next to the rendered pages.
package search

import (
	"cmp"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode"

	"go.trai.ch/tome/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

const (
	// titleWeight multiplies title matches when scoring a query.
	titleWeight = 5
	// maxResults bounds the result list of a query.
	maxResults = 50
	// minTermLength is the shortest term kept in the index.
	minTermLength = 2
)

// Match records the occurrences of a term in one document.
type Match struct {
	Doc          int     `json:"docname_idx"`
	TitleScore   float64 `json:"title_score"`
	ContentScore float64 `json:"content_score"`
	Positions    []int   `json:"positions"`
}

// Index maps normalized terms to the documents containing them.
type Index struct {
	DocNames  []string           `json:"docnames"`
	FileNames []string           `json:"filenames"`
	Titles    []string           `json:"titles"`
	Terms     map[string][]Match `json:"terms"`
	Language  string             `json:"language"`
}

// Result is a document matching a query.
type Result struct {
	DocName  string
	FileName string
	Title    string
	Score    float64
}

// Build indexes docs. Documents are ordered by name.
func Build(docs []*domain.Document, lang string) *Index {
	sorted := slices.Clone(docs)
	slices.SortFunc(sorted, func(a, b *domain.Document) int { return cmp.Compare(a.Name, b.Name) })

	idx := &Index{
		DocNames:  make([]string, 0, len(sorted)),
		FileNames: make([]string, 0, len(sorted)),
		Titles:    make([]string, 0, len(sorted)),
		Terms:     make(map[string][]Match),
		Language:  lang,
	}
	n := newNormalizer(lang)

	for i, doc := range sorted {
		idx.DocNames = append(idx.DocNames, doc.Name)
		idx.FileNames = append(idx.FileNames, filepath.ToSlash(doc.OutputPath))
		idx.Titles = append(idx.Titles, doc.Title)

		matches := make(map[string]*Match)
		get := func(term string) *Match {
			m, ok := matches[term]
			if !ok {
				m = &Match{Doc: i}
				matches[term] = m
			}
			return m
		}
		for _, w := range n.words(doc.Title) {
			get(w.term).TitleScore++
		}
		for _, w := range n.words(doc.Raw) {
			m := get(w.term)
			m.ContentScore++
			m.Positions = append(m.Positions, w.pos)
		}

		terms := make([]string, 0, len(matches))
		for term := range matches {
			terms = append(terms, term)
		}
		slices.Sort(terms)
		for _, term := range terms {
			idx.Terms[term] = append(idx.Terms[term], *matches[term])
		}
	}
	return idx
}

// Search scores documents against the whitespace separated terms of query.
// Title matches weigh more than content matches.
func (idx *Index) Search(query string) []Result {
	n := newNormalizer(idx.Language)
	scores := make(map[int]float64)
	for _, w := range n.words(query) {
		for _, m := range idx.Terms[w.term] {
			scores[m.Doc] += m.TitleScore*titleWeight + m.ContentScore
		}
	}

	results := make([]Result, 0, len(scores))
	for doc, score := range scores {
		if doc < 0 || doc >= len(idx.DocNames) {
			continue
		}
		results = append(results, Result{
			DocName:  idx.DocNames[doc],
			FileName: idx.FileNames[doc],
			Title:    idx.Titles[doc],
			Score:    score,
		})
	}
	slices.SortFunc(results, func(a, b Result) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.DocName, b.DocName)
	})
	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results
}

// WriteFile writes the index as JSON to path.
func (idx *Index) WriteFile(path string) error {
	data, err := json.Marshal(idx)
	if err != nil {
		return zerr.Wrap(err, "failed to encode search index")
	}
	if err := os.WriteFile(path, data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrWriteOutputFailed, err.Error()), "path", path)
	}
	return nil
}

// Load reads an index written by WriteFile.
func Load(path string) (*Index, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is the index inside the output directory
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read search index"), "path", path)
	}
	var idx Index
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to decode search index"), "path", path)
	}
	return &idx, nil
}

type word struct {
	term string
	pos  int
}

type normalizer struct {
	fold    cases.Caser
	english bool
}

func newNormalizer(lang string) *normalizer {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.Und
	}
	base, _ := tag.Base()
	return &normalizer{
		fold:    cases.Fold(),
		english: base.String() == "en",
	}
}

// words splits text on whitespace and returns the normalized terms with their
// position among all whitespace separated tokens.
func (n *normalizer) words(text string) []word {
	var out []word
	for pos, token := range strings.Fields(text) {
		term := n.normalize(token)
		if len([]rune(term)) < minTermLength {
			continue
		}
		out = append(out, word{term: term, pos: pos})
	}
	return out
}

func (n *normalizer) normalize(token string) string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-' {
			return r
		}
		return -1
	}, norm.NFKC.String(token))
	term := n.fold.String(cleaned)
	if n.english {
		term = stem(term)
	}
	return term
}

// stem strips common English suffixes.
func stem(w string) string {
	switch {
	case strings.HasSuffix(w, "ing") && len(w) > 4:
		return w[:len(w)-3]
	case strings.HasSuffix(w, "ed") && len(w) > 3:
		return w[:len(w)-2]
	case strings.HasSuffix(w, "s") && len(w) > 2:
		return w[:len(w)-1]
	default:
		return w
	}
}
