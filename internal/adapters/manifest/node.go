package manifest

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/rockdove/forge/internal/adapters/fs"
	"github.com/rockdove/forge/internal/core/ports"
)

// NodeID is the unique identifier for the manifest reader Graft node.
const NodeID graft.ID = "adapter.manifest_reader"

func init() {
	graft.Register(graft.Node[ports.ManifestReader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.NodeID},
		Run: func(ctx context.Context) (ports.ManifestReader, error) {
			hasher, err := graft.Dep[ports.TreeHasher](ctx)
			if err != nil {
				return nil, err
			}
			return NewReader(hasher), nil
		},
	})
}
