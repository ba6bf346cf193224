package xref

import (
	"context"

	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the cross reference index Graft node.
const NodeID graft.ID = "adapter.xref"

func init() {
	graft.Register(graft.Node[*Finisher]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Finisher, error) {
			return NewFinisher(), nil
		},
	})
}
