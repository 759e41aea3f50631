package cas

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/rockdove/forge/internal/adapters/fs"
	"github.com/rockdove/forge/internal/core/domain"
	"github.com/rockdove/forge/internal/core/ports"
)

// NodeID is the unique identifier for the image store Graft node.
const NodeID graft.ID = "adapter.image_store"

func init() {
	graft.Register(graft.Node[ports.ImageStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.NodeID},
		Run: func(ctx context.Context) (ports.ImageStore, error) {
			hasher, err := graft.Dep[ports.TreeHasher](ctx)
			if err != nil {
				return nil, err
			}
			return NewStore(domain.DefaultStorePath(), hasher)
		},
	})
}
