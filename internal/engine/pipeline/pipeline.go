// Package pipeline implements the image build pipeline.
package pipeline

import (
	"context"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"time"

	"github.com/cespare/xxhash/v2"
	adapterfs "github.com/rockdove/forge/internal/adapters/fs"
	"github.com/rockdove/forge/internal/core/domain"
	"github.com/rockdove/forge/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

// Options configure a single build invocation.
type Options struct {
	// NoCache rebuilds every layer even when a cached one exists.
	NoCache bool

	// Tag is the name recorded for the built image.
	Tag string
}

// Builder runs build recipes through the pipeline. Each build advances a
// strictly linear state machine; the first failing step moves the build to
// its failed state and nothing is published to the store.
//
// Layer caching is keyed on content, never on timestamps: the dependency
// layer on the base pin plus the manifest content hash, the source layer on
// the base pin plus the source tree hash. A source edit therefore never
// re-installs dependencies, and a manifest edit always does.
type Builder struct {
	base      ports.BaseResolver
	manifest  ports.ManifestReader
	installer ports.Installer
	store     ports.ImageStore
	hasher    ports.TreeHasher
	logger    ports.Logger
	telemetry ports.Telemetry

	// installs collapses concurrent builds of the same dependency layer into
	// a single install.
	installs singleflight.Group
}

// NewBuilder creates a new Builder.
func NewBuilder(
	base ports.BaseResolver,
	manifest ports.ManifestReader,
	installer ports.Installer,
	store ports.ImageStore,
	hasher ports.TreeHasher,
	logger ports.Logger,
	telemetry ports.Telemetry,
) *Builder {
	return &Builder{
		base:      base,
		manifest:  manifest,
		installer: installer,
		store:     store,
		hasher:    hasher,
		logger:    logger,
		telemetry: telemetry,
	}
}

// Build runs the recipe rooted at root through the pipeline and returns the
// built image. On failure no image is published; the store is left exactly as
// it was, except for layers that completed before the failure, which remain
// cached for the next attempt.
func (b *Builder) Build(ctx context.Context, recipe *domain.Recipe, root string, opts Options) (*domain.Image, error) {
	if err := recipe.Validate(); err != nil {
		return nil, err
	}

	progress := domain.NewBuildProgress()

	var runtime domain.BaseRuntime
	err := b.step(ctx, progress, domain.StateBaseSelected, "select base "+recipe.Base.String(),
		func(ctx context.Context, _ ports.Vertex) error {
			var err error
			runtime, err = b.base.Resolve(ctx, recipe.Base)
			return err
		})
	if err != nil {
		return nil, err
	}

	// The working directory is image metadata; establishing it runs nothing.
	err = b.step(ctx, progress, domain.StateWorkdirSet, "set workdir "+recipe.WorkDir,
		func(context.Context, ports.Vertex) error { return nil })
	if err != nil {
		return nil, err
	}

	var manifest *domain.Manifest
	err = b.step(ctx, progress, domain.StateManifestStaged, "stage manifest "+recipe.ManifestPath,
		func(_ context.Context, _ ports.Vertex) error {
			var err error
			manifest, err = b.manifest.Read(filepath.Join(root, recipe.ManifestPath))
			return err
		})
	if err != nil {
		return nil, err
	}

	var depsLayer *domain.Layer
	err = b.step(ctx, progress, domain.StateDepsInstalled, "install dependencies",
		func(ctx context.Context, v ports.Vertex) error {
			var err error
			depsLayer, err = b.installDeps(ctx, v, runtime, recipe, manifest, root, opts)
			return err
		})
	if err != nil {
		return nil, err
	}

	var codeLayer *domain.Layer
	err = b.step(ctx, progress, domain.StateCodeStaged, "stage source "+recipe.SourcePath,
		func(_ context.Context, v ports.Vertex) error {
			var err error
			codeLayer, err = b.stageSource(v, recipe, root, opts)
			return err
		})
	if err != nil {
		return nil, err
	}

	var env map[string]string
	err = b.step(ctx, progress, domain.StateEnvBound, "bind "+recipe.SearchVar(),
		func(context.Context, ports.Vertex) error {
			env = make(map[string]string, len(recipe.Env)+1)
			maps.Copy(env, recipe.Env)
			env[recipe.SearchVar()] = recipe.WorkDir
			return nil
		})
	if err != nil {
		return nil, err
	}

	err = b.step(ctx, progress, domain.StateCommandDeclared, "declare command",
		func(context.Context, ports.Vertex) error { return nil })
	if err != nil {
		return nil, err
	}

	img := &domain.Image{
		Base:   recipe.Base,
		Layers: []domain.Layer{*depsLayer, *codeLayer},
		Config: domain.ImageConfig{
			WorkDir: recipe.WorkDir,
			Env:     env,
			Cmd:     recipe.Command,
		},
		CreatedAt: time.Now().UTC(),
	}
	img.ID = img.ComputeID()

	err = b.step(ctx, progress, domain.StateBuilt, "publish image",
		func(context.Context, ports.Vertex) error {
			return b.store.PutImage(img, opts.Tag)
		})
	if err != nil {
		return nil, err
	}

	b.logger.Info("built " + img.ID.Encoded())
	return img, nil
}

// step records one pipeline stage as a telemetry vertex and advances the
// state machine on success. A failing stage moves the build to its failed
// state before the error is returned.
func (b *Builder) step(
	ctx context.Context,
	progress *domain.BuildProgress,
	next domain.BuildState,
	name string,
	fn func(ctx context.Context, v ports.Vertex) error,
) error {
	ctx, v := b.telemetry.Record(ctx, name)
	b.logger.Info(name)

	if err := fn(ctx, v); err != nil {
		v.Complete(err)
		if failErr := progress.Fail(); failErr != nil {
			return failErr
		}
		b.logger.Error(err)
		return err
	}
	if err := progress.Advance(next); err != nil {
		v.Complete(err)
		return err
	}
	v.Complete(nil)
	return nil
}

// installDeps produces the dependency layer, reusing the cached one when the
// base pin and manifest content are unchanged. The installer runs with its
// own cache disabled; reuse happens only here, at the layer level.
func (b *Builder) installDeps(
	ctx context.Context,
	v ports.Vertex,
	runtime domain.BaseRuntime,
	recipe *domain.Recipe,
	manifest *domain.Manifest,
	root string,
	opts Options,
) (*domain.Layer, error) {
	key := layerKey(recipe.Base, domain.LayerDependencies, manifest.ContentHash)

	if !opts.NoCache {
		cached, err := b.store.GetLayer(key)
		if err != nil {
			return nil, err
		}
		if cached != nil {
			v.Cached()
			return cached, nil
		}
	}

	layer, err, _ := b.installs.Do(key, func() (any, error) {
		staging, err := os.MkdirTemp("", "forge-deps-*")
		if err != nil {
			return nil, zerr.Wrap(err, "failed to create staging directory")
		}
		defer os.RemoveAll(staging) //nolint:errcheck // Best effort cleanup

		manifestPath := filepath.Join(root, recipe.ManifestPath)
		if err := b.installer.Install(ctx, runtime, manifestPath, staging, v.Stdout()); err != nil {
			return nil, err
		}
		return b.store.PutLayer(key, domain.LayerDependencies, staging)
	})
	if err != nil {
		return nil, err
	}
	return layer.(*domain.Layer), nil //nolint:forcetypeassert // Do always returns *domain.Layer
}

// stageSource produces the source layer, reusing the cached one when the base
// pin and source tree content are unchanged. The tree is staged under its
// recipe-relative path so layers assemble into the recorded layout.
func (b *Builder) stageSource(v ports.Vertex, recipe *domain.Recipe, root string, opts Options) (*domain.Layer, error) {
	srcDir := filepath.Join(root, recipe.SourcePath)
	if info, err := os.Stat(srcDir); err != nil || !info.IsDir() {
		return nil, zerr.With(domain.ErrSourceMissing, "path", srcDir)
	}

	treeHash, err := b.hasher.HashTree(srcDir)
	if err != nil {
		return nil, err
	}

	key := layerKey(recipe.Base, domain.LayerSource, treeHash)
	if !opts.NoCache {
		cached, err := b.store.GetLayer(key)
		if err != nil {
			return nil, err
		}
		if cached != nil {
			v.Cached()
			return cached, nil
		}
	}

	staging, err := os.MkdirTemp("", "forge-src-*")
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create staging directory")
	}
	defer os.RemoveAll(staging) //nolint:errcheck // Best effort cleanup

	dst := filepath.Join(staging, filepath.FromSlash(recipe.SourcePath))
	if err := os.MkdirAll(dst, domain.DirPerm); err != nil {
		return nil, zerr.Wrap(err, "failed to create staging directory")
	}
	if err := adapterfs.CopyTree(srcDir, dst); err != nil {
		return nil, err
	}
	return b.store.PutLayer(key, domain.LayerSource, staging)
}

// layerKey derives a cache key from everything that determines a layer's
// content. Wall-clock time contributes nothing.
func layerKey(pin domain.BasePin, kind domain.LayerKind, inputHash string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(pin.String()+"\x00"+string(kind)+"\x00"+inputHash))
}
