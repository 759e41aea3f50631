// Package ports defines the core interfaces for the application.
package ports

import "github.com/rockdove/forge/internal/core/domain"

// RecipeLoader defines the interface for loading the build recipe.
//
//go:generate go run go.uber.org/mock/mockgen -source=recipe_loader.go -destination=mocks/mock_recipe_loader.go -package=mocks
type RecipeLoader interface {
	// Load reads the recipe from the given build root and returns it validated.
	Load(root string) (*domain.Recipe, error)
}

// ManifestReader defines the interface for reading the dependency manifest.
type ManifestReader interface {
	// Read parses the manifest at the given path. A missing or unreadable file
	// is reported as domain.ErrManifestMissing; a syntactically invalid one as
	// domain.ErrManifestInvalid.
	Read(path string) (*domain.Manifest, error)
}
