package extensions

import (
	"context"

	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the extension registry Graft node.
const NodeID graft.ID = "engine.extensions"

func init() {
	graft.Register(graft.Node[*Registry]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Registry, error) {
			return Default(), nil
		},
	})
}
