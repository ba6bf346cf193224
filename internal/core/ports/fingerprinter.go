package ports

import "go.trai.ch/tome/internal/core/domain"

// Fingerprinter derives the identity of a source file.
//
//go:generate mockgen -source=fingerprinter.go -destination=mocks/mock_fingerprinter.go -package=mocks
type Fingerprinter interface {
	// Fingerprint hashes the file content and modification time of path.
	Fingerprint(path string) (domain.SourceIdentity, error)
}
