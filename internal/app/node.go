package app

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/rockdove/forge/internal/adapters/cas"
	"github.com/rockdove/forge/internal/adapters/logger"
	"github.com/rockdove/forge/internal/adapters/recipe"
	"github.com/rockdove/forge/internal/adapters/shell"
	"github.com/rockdove/forge/internal/adapters/telemetry/progrock"
	"github.com/rockdove/forge/internal/core/ports"
	"github.com/rockdove/forge/internal/engine/pipeline"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			recipe.NodeID,
			pipeline.NodeID,
			cas.NodeID,
			shell.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			recipes, err := graft.Dep[ports.RecipeLoader](ctx)
			if err != nil {
				return nil, err
			}

			builder, err := graft.Dep[*pipeline.Builder](ctx)
			if err != nil {
				return nil, err
			}

			store, err := graft.Dep[ports.ImageStore](ctx)
			if err != nil {
				return nil, err
			}

			launcher, err := graft.Dep[ports.Launcher](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(recipes, builder, store, launcher, log), nil
		},
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			progrock.NodeID,
			recipe.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	application, err := graft.Dep[*App](ctx)
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

	recipes, err := graft.Dep[ports.RecipeLoader](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:       application,
		Logger:    log,
		Telemetry: tel,
		Recipes:   recipes,
	}, nil
}
