package ports

import "go.trai.ch/tome/internal/core/domain"

// Extension is a named plugin. What it does is expressed by the capability
// interfaces it also implements.
type Extension interface {
	Name() string
}

// DocumentTransformer is an extension that adjusts each document after parsing.
type DocumentTransformer interface {
	Extension
	Transform(doc *domain.Document) error
}

// DocumentValidator is an extension that inspects the complete document set.
type DocumentValidator interface {
	Extension
	Validate(docs []*domain.Document, cfg domain.Config) []domain.Diagnostic
}
