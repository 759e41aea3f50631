package pipeline

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/rockdove/forge/internal/adapters/base"
	"github.com/rockdove/forge/internal/adapters/cas"
	"github.com/rockdove/forge/internal/adapters/fs"
	"github.com/rockdove/forge/internal/adapters/logger"
	"github.com/rockdove/forge/internal/adapters/manifest"
	"github.com/rockdove/forge/internal/adapters/pip"
	"github.com/rockdove/forge/internal/adapters/telemetry/progrock"
	"github.com/rockdove/forge/internal/core/ports"
)

// NodeID is the unique identifier for the builder Graft node.
const NodeID graft.ID = "engine.builder"

func init() {
	graft.Register(graft.Node[*Builder]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			base.NodeID,
			manifest.NodeID,
			pip.NodeID,
			cas.NodeID,
			fs.NodeID,
			logger.NodeID,
			progrock.NodeID,
		},
		Run: func(ctx context.Context) (*Builder, error) {
			resolver, err := graft.Dep[ports.BaseResolver](ctx)
			if err != nil {
				return nil, err
			}

			reader, err := graft.Dep[ports.ManifestReader](ctx)
			if err != nil {
				return nil, err
			}

			installer, err := graft.Dep[ports.Installer](ctx)
			if err != nil {
				return nil, err
			}

			store, err := graft.Dep[ports.ImageStore](ctx)
			if err != nil {
				return nil, err
			}

			hasher, err := graft.Dep[ports.TreeHasher](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			tel, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			return NewBuilder(
				resolver,
				reader,
				installer,
				store,
				hasher,
				log,
				tel,
			), nil
		},
	})
}
