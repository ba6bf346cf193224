package assets

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/tome/internal/adapters/fs"
	"go.trai.ch/tome/internal/adapters/logger"
	"go.trai.ch/tome/internal/core/ports"
)

// NodeID is the unique identifier for the static assets Graft node.
const NodeID graft.ID = "adapter.assets"

func init() {
	graft.Register(graft.Node[*Finisher]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (*Finisher, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewFinisher(fs.NewWalker(), log), nil
		},
	})
}
