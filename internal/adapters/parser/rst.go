package parser

import (
	"go.trai.ch/tome/internal/adapters/parser/rst"
	"go.trai.ch/tome/internal/core/domain"
)

func parseRST(doc *domain.Document) {
	doc.Metadata = rst.Fields(doc.Raw)

	for _, b := range rst.Parse(doc.Raw) {
		switch b.Kind {
		case rst.KindTitle:
			doc.TOC = append(doc.TOC, domain.TocEntry{
				Title:  b.Text,
				Level:  b.Level,
				Anchor: domain.Anchor(b.Text),
				Line:   b.Line,
			})
		case rst.KindDirective:
			doc.Directives = append(doc.Directives, *b.Directive)
		case rst.KindLabel:
			doc.Labels = append(doc.Labels, domain.Label{Name: b.Text, Line: b.Line})
		}
	}

	doc.CrossRefs = extractCrossRefs(doc.Raw, 0)
}
