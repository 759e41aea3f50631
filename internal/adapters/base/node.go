package base

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/rockdove/forge/internal/core/ports"
)

// NodeID is the unique identifier for the base resolver Graft node.
const NodeID graft.ID = "adapter.base_resolver"

func init() {
	graft.Register(graft.Node[ports.BaseResolver]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.BaseResolver, error) {
			return NewResolver(), nil
		},
	})
}
