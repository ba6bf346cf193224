package ports

import "go.trai.ch/tome/internal/core/domain"

// Renderer produces the HTML of a document and writes it below the output root.
//
//go:generate mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// Render fills doc.HTML and writes it to doc.OutputPath inside outputRoot.
	Render(doc *domain.Document, outputRoot string) error
	// Write writes the already rendered doc.HTML to doc.OutputPath inside outputRoot.
	Write(doc *domain.Document, outputRoot string) error
}
