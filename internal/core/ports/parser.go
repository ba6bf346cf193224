package ports

import "go.trai.ch/tome/internal/core/domain"

// Parser turns source text into a document. Implementations must be pure functions
// of their inputs.
//
//go:generate mockgen -source=parser.go -destination=mocks/mock_parser.go -package=mocks
type Parser interface {
	Parse(path string, content []byte) (*domain.Document, error)
}
