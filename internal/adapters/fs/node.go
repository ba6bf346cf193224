package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/tome/internal/core/ports"
)

const (
	// WalkerNodeID is the graft node for the source walker.
	WalkerNodeID graft.ID = "adapter.fs.walker"
	// FingerprinterNodeID is the graft node for the content fingerprinter.
	FingerprinterNodeID graft.ID = "adapter.fs.fingerprinter"
	// VerifierNodeID is the graft node for the output verifier.
	VerifierNodeID graft.ID = "adapter.fs.verifier"
)

func init() {
	graft.Register(graft.Node[ports.SourceWalker]{
		ID:        WalkerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.SourceWalker, error) {
			return NewWalker(), nil
		},
	})

	graft.Register(graft.Node[ports.Fingerprinter]{
		ID:        FingerprinterNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Fingerprinter, error) {
			return NewFingerprinter(), nil
		},
	})

	graft.Register(graft.Node[ports.OutputVerifier]{
		ID:        VerifierNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.OutputVerifier, error) {
			return NewVerifier(), nil
		},
	})
}
