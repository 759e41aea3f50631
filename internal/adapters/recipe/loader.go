// Package recipe provides the build recipe loader for forge.
package recipe

import (
	"os"
	"path/filepath"

	"github.com/rockdove/forge/internal/core/domain"
	"github.com/rockdove/forge/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.RecipeLoader = (*Loader)(nil)

// Loader implements ports.RecipeLoader using a YAML file.
type Loader struct {
	// Filename is the recipe file name, resolved against the build root.
	Filename string
}

// NewLoader creates a Loader for the default recipe file name.
func NewLoader() *Loader {
	return &Loader{Filename: domain.RecipeFileName}
}

// forgefile represents the structure of the forge.yaml recipe file.
type forgefile struct {
	Version  string            `yaml:"version"`
	Base     string            `yaml:"base"`
	WorkDir  string            `yaml:"workdir"`
	Manifest string            `yaml:"manifest"`
	Source   string            `yaml:"source"`
	PathVar  string            `yaml:"pathVar"`
	Env      map[string]string `yaml:"env"`
	Command  []string          `yaml:"command"`
}

// Load reads the recipe from the given build root and returns it validated.
func (l *Loader) Load(root string) (*domain.Recipe, error) {
	path := filepath.Join(root, l.Filename)

	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read recipe file"), "path", path)
	}

	var file forgefile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse recipe file"), "path", path)
	}

	pin, err := domain.ParseBasePin(file.Base)
	if err != nil {
		return nil, err
	}

	r := &domain.Recipe{
		Base:          pin,
		WorkDir:       file.WorkDir,
		ManifestPath:  file.Manifest,
		SourcePath:    file.Source,
		SearchPathVar: file.PathVar,
		Env:           file.Env,
		Command:       file.Command,
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}
