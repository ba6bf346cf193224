package html

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/tome/internal/core/ports"
)

// NodeID is the unique identifier for the HTML renderer Graft node.
const NodeID graft.ID = "adapter.html"

func init() {
	graft.Register(graft.Node[ports.Renderer]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Renderer, error) {
			return NewRenderer(), nil
		},
	})
}
