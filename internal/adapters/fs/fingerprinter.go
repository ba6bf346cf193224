package fs

import (
	"os"

	"go.trai.ch/tome/internal/core/domain"
	"go.trai.ch/tome/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Fingerprinter = (*Fingerprinter)(nil)

// Fingerprinter computes source identities from file content and modification time.
type Fingerprinter struct{}

// NewFingerprinter creates a new Fingerprinter.
func NewFingerprinter() *Fingerprinter {
	return &Fingerprinter{}
}

// Fingerprint hashes the content of path in one streaming pass and mixes in the
// modification time truncated to seconds.
func (f *Fingerprinter) Fingerprint(path string) (domain.SourceIdentity, error) {
	file, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return "", zerr.With(zerr.Wrap(domain.ErrFingerprintFailed, err.Error()), "path", path)
	}
	defer file.Close() //nolint:errcheck // Best effort close in defer

	info, err := file.Stat()
	if err != nil {
		return "", zerr.With(zerr.Wrap(domain.ErrFingerprintFailed, err.Error()), "path", path)
	}

	id, err := domain.IdentifySource(file, info.ModTime())
	if err != nil {
		return "", zerr.With(zerr.Wrap(domain.ErrFingerprintFailed, err.Error()), "path", path)
	}
	return id, nil
}
