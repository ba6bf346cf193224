package ports

import "go.trai.ch/tome/internal/core/domain"

// OutputVerifier checks that rendered files are present on disk.
//
//go:generate mockgen -destination=mocks/mock_verifier.go -package=mocks -source=verifier.go
type OutputVerifier interface {
	// OutputExists reports whether the rendered file of doc exists inside outputRoot.
	OutputExists(outputRoot string, doc *domain.Document) (bool, error)
}
