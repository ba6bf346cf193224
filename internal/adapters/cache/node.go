package cache

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/tome/internal/adapters/fs"
	"go.trai.ch/tome/internal/adapters/logger"
	"go.trai.ch/tome/internal/core/ports"
)

// NodeID is the graft node for the cache factory.
const NodeID graft.ID = "adapter.cache"

func init() {
	graft.Register(graft.Node[ports.CacheFactory]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.FingerprinterNodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.CacheFactory, error) {
			fingerprinter, err := graft.Dep[ports.Fingerprinter](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewFactory(fingerprinter, log), nil
		},
	})
}
