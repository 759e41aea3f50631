// Package app implements the application layer for forge.
package app

import (
	"context"
	"errors"
	"os"
	"strconv"

	"github.com/rockdove/forge/internal/core/domain"
	"github.com/rockdove/forge/internal/core/ports"
	"github.com/rockdove/forge/internal/engine/pipeline"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	recipes  ports.RecipeLoader
	builder  *pipeline.Builder
	store    ports.ImageStore
	launcher ports.Launcher
	logger   ports.Logger
}

// New creates a new App instance.
func New(
	recipes ports.RecipeLoader,
	builder *pipeline.Builder,
	store ports.ImageStore,
	launcher ports.Launcher,
	logger ports.Logger,
) *App {
	return &App{
		recipes:  recipes,
		builder:  builder,
		store:    store,
		launcher: launcher,
		logger:   logger,
	}
}

// Build loads the recipe rooted at root and runs it through the build
// pipeline.
func (a *App) Build(ctx context.Context, root string, opts pipeline.Options) (*domain.Image, error) {
	recipe, err := a.recipes.Load(root)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load recipe")
	}

	img, err := a.builder.Build(ctx, recipe, root, opts)
	if err != nil {
		return nil, errors.Join(domain.ErrBuildFailed, err)
	}
	return img, nil
}

// Run launches the image named by ref, with override replacing the default
// command when non-empty. It returns the process exit code.
func (a *App) Run(ctx context.Context, ref string, override []string) (int, error) {
	img, err := a.store.GetImage(ref)
	if err != nil {
		return -1, err
	}
	return a.launcher.Launch(ctx, img, override)
}

// Clean removes assembled run directories and prunes layer blobs no stored
// image references.
func (a *App) Clean() error {
	removed, err := a.store.Prune()
	if err != nil {
		return err
	}
	if err := os.RemoveAll(domain.DefaultRunPath()); err != nil {
		return zerr.Wrap(err, "failed to remove run directory")
	}
	a.logger.Info("pruned " + strconv.Itoa(removed) + " layer blobs")
	return nil
}
