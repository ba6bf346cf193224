// Package validator cross-checks a complete document set for navigation and
// reference problems. It only ever produces warnings.
package validator

import (
	"cmp"
	"fmt"
	"path"
	"slices"
	"strings"

	"go.trai.ch/tome/internal/core/domain"
	"go.trai.ch/tome/internal/core/ports"
)

var _ ports.DocumentValidator = (*Validator)(nil)

// OrphanMetadata is the metadata key exempting a document from the orphan check.
const OrphanMetadata = "orphan"

// Validator is the built-in document set validator.
type Validator struct{}

// New creates a new Validator.
func New() *Validator {
	return &Validator{}
}

// Name returns the validator name.
func (v *Validator) Name() string {
	return "builtin"
}

// Validate runs every enabled check over docs and returns the warnings in a
// deterministic order: per document sorted by source path, then orphans.
func (v *Validator) Validate(docs []*domain.Document, cfg domain.Config) []domain.Diagnostic {
	set := newDocSet(docs)

	var diags []domain.Diagnostic
	for _, doc := range set.sorted {
		diags = append(diags, set.checkToctrees(doc, cfg)...)
		if cfg.Validation.CrossReferences {
			diags = append(diags, set.checkCrossRefs(doc)...)
		}
	}
	if cfg.Validation.DuplicateLabels {
		diags = append(diags, set.checkDuplicateLabels()...)
	}
	diags = append(diags, set.checkOrphans(cfg.RootDoc)...)
	return diags
}

type docSet struct {
	sorted []*domain.Document
	names  map[string]bool
	labels map[string]bool
	refs   []string
}

func newDocSet(docs []*domain.Document) *docSet {
	s := &docSet{
		sorted: slices.Clone(docs),
		names:  make(map[string]bool, len(docs)),
		labels: make(map[string]bool),
	}
	slices.SortFunc(s.sorted, func(a, b *domain.Document) int {
		return cmp.Compare(a.SourcePath, b.SourcePath)
	})
	for _, doc := range s.sorted {
		s.names[doc.Name] = true
		for _, label := range doc.Labels {
			s.labels[strings.ToLower(label.Name)] = true
		}
	}
	return s
}

// exists reports whether target names a document or a directory with an index.
func (s *docSet) exists(target string) bool {
	return s.names[target] || s.names[path.Join(target, domain.DefaultRootDoc)]
}

func (s *docSet) checkToctrees(doc *domain.Document, cfg domain.Config) []domain.Diagnostic {
	var diags []domain.Diagnostic
	for _, tree := range doc.Toctrees() {
		entries := tree.Entries()
		if len(entries) == 0 {
			if cfg.Validation.EmptyToctree {
				diags = append(diags, domain.NewWarning(domain.KindEmptyToctree, doc.SourcePath, tree.Line,
					"toctree is empty"))
			}
			continue
		}
		_, glob := tree.Options["glob"]
		for _, entry := range entries {
			if entry == "self" || strings.Contains(entry, "://") {
				continue
			}
			target := domain.ResolveDocRef(doc.Name, entry)
			if glob && strings.ContainsAny(entry, "*?[") {
				matched := s.glob(target)
				if len(matched) == 0 {
					diags = append(diags, domain.NewWarning(domain.KindMissingToctreeRef, doc.SourcePath, tree.Line,
						fmt.Sprintf("toctree glob pattern '%s' didn't match any documents", target)))
				}
				s.refs = append(s.refs, matched...)
				continue
			}
			s.refs = append(s.refs, target)
			if !s.exists(target) {
				diags = append(diags, domain.NewWarning(domain.KindMissingToctreeRef, doc.SourcePath, tree.Line,
					fmt.Sprintf("toctree contains reference to nonexisting document '%s'", target)))
			}
		}
	}
	return diags
}

func (s *docSet) glob(pattern string) []string {
	var matched []string
	for _, doc := range s.sorted {
		if ok, _ := path.Match(pattern, doc.Name); ok {
			matched = append(matched, doc.Name)
		}
	}
	return matched
}

func (s *docSet) checkCrossRefs(doc *domain.Document) []domain.Diagnostic {
	var diags []domain.Diagnostic
	for _, ref := range doc.CrossRefs {
		switch ref.Role {
		case "doc":
			target := domain.ResolveDocRef(doc.Name, ref.Target)
			if !s.names[target] {
				diags = append(diags, domain.NewWarning(domain.KindBrokenCrossReference, doc.SourcePath, ref.Line,
					fmt.Sprintf("unknown document: '%s'", target)))
			}
		case "ref":
			if !s.labels[strings.ToLower(ref.Target)] {
				diags = append(diags, domain.NewWarning(domain.KindBrokenCrossReference, doc.SourcePath, ref.Line,
					fmt.Sprintf("undefined label: '%s'", ref.Target)))
			}
		}
	}
	return diags
}

func (s *docSet) checkDuplicateLabels() []domain.Diagnostic {
	var diags []domain.Diagnostic
	first := make(map[string]string)
	for _, doc := range s.sorted {
		for _, label := range doc.Labels {
			key := strings.ToLower(label.Name)
			if other, dup := first[key]; dup {
				diags = append(diags, domain.NewWarning(domain.KindDuplicateLabel, doc.SourcePath, label.Line,
					fmt.Sprintf("duplicate label %s, other instance in %s", label.Name, other)))
				continue
			}
			first[key] = doc.SourcePath
		}
	}
	return diags
}

// checkOrphans must run after checkToctrees has collected the references.
func (s *docSet) checkOrphans(rootDoc string) []domain.Diagnostic {
	if rootDoc == "" {
		rootDoc = domain.DefaultRootDoc
	}
	var diags []domain.Diagnostic
	for _, doc := range s.sorted {
		if doc.Name == rootDoc {
			continue
		}
		if _, ok := doc.Metadata[OrphanMetadata]; ok {
			continue
		}
		if !s.referenced(doc.Name) {
			diags = append(diags, domain.NewWarning(domain.KindOrphanedDocument, doc.SourcePath, 0,
				"document isn't included in any toctree"))
		}
	}
	return diags
}

func (s *docSet) referenced(name string) bool {
	for _, ref := range s.refs {
		if name == ref || ref == path.Join(name, domain.DefaultRootDoc) || strings.HasPrefix(name, ref+"/") {
			return true
		}
	}
	return false
}
