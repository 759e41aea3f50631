package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/rockdove/forge/internal/core/ports"
)

// NodeID is the unique identifier for the tree hasher Graft node.
const NodeID graft.ID = "adapter.tree_hasher"

func init() {
	graft.Register(graft.Node[ports.TreeHasher]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.TreeHasher, error) {
			return NewHasher(NewWalker()), nil
		},
	})
}
