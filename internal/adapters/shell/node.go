package shell

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/rockdove/forge/internal/adapters/base"
	"github.com/rockdove/forge/internal/adapters/cas"
	"github.com/rockdove/forge/internal/adapters/logger"
	"github.com/rockdove/forge/internal/core/ports"
)

// NodeID is the unique identifier for the launcher Graft node.
const NodeID graft.ID = "adapter.launcher"

func init() {
	graft.Register(graft.Node[ports.Launcher]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{cas.NodeID, base.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.Launcher, error) {
			store, err := graft.Dep[ports.ImageStore](ctx)
			if err != nil {
				return nil, err
			}
			resolver, err := graft.Dep[ports.BaseResolver](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLauncher(store, resolver, log), nil
		},
	})
}
