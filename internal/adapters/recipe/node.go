package recipe

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/rockdove/forge/internal/core/ports"
)

// NodeID is the unique identifier for the recipe loader Graft node.
const NodeID graft.ID = "adapter.recipe_loader"

func init() {
	graft.Register(graft.Node[ports.RecipeLoader]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.RecipeLoader, error) {
			return NewLoader(), nil
		},
	})
}
