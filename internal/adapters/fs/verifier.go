package fs

import (
	"os"
	"path/filepath"

	"go.trai.ch/tome/internal/core/domain"
	"go.trai.ch/tome/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.OutputVerifier = (*Verifier)(nil)

// Verifier checks that rendered files are still present in the output tree.
type Verifier struct{}

// NewVerifier creates a new Verifier.
func NewVerifier() *Verifier {
	return &Verifier{}
}

// OutputExists reports whether the rendered file of doc exists below outputRoot.
func (v *Verifier) OutputExists(outputRoot string, doc *domain.Document) (bool, error) {
	path := filepath.Join(outputRoot, doc.OutputPath)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, zerr.With(zerr.Wrap(err, "failed to stat output"), "path", path)
	}
	return true, nil
}
