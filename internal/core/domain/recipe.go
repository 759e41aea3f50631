// Package domain contains the core domain models for the image build pipeline.
package domain

import (
	"path"
	"strings"

	"go.trai.ch/zerr"
)

// DefaultSearchPathVar is the environment variable bound to the image working
// directory so the entrypoint can locate application modules regardless of the
// invocation-time current directory.
const DefaultSearchPathVar = "PYTHONPATH"

// Recipe describes one image build: a pinned base runtime, a working directory,
// a dependency manifest, an application source tree, environment bindings, and
// the default command. It is the declarative input to the Builder.
type Recipe struct {
	// Base is the pinned base runtime reference, e.g. "python@3.13.2".
	Base BasePin

	// WorkDir is the absolute working directory inside the image.
	WorkDir string

	// ManifestPath is the dependency manifest path, relative to the build root.
	ManifestPath string

	// SourcePath is the application source subtree, relative to the build root.
	SourcePath string

	// SearchPathVar names the module search-path variable bound to WorkDir.
	// Empty means DefaultSearchPathVar.
	SearchPathVar string

	// Env holds additional environment bindings recorded in the image.
	Env map[string]string

	// Command is the default argument vector launched when the image is run
	// without an override.
	Command []string
}

// Validate checks the recipe invariants. The base pin is validated separately
// by ParseBasePin at load time; Validate re-checks it so a hand-constructed
// recipe cannot bypass the reproducibility invariant.
func (r *Recipe) Validate() error {
	if err := r.Base.validate(); err != nil {
		return err
	}
	if !path.IsAbs(r.WorkDir) {
		return zerr.With(zerr.Wrap(ErrInvalidRecipe, "workdir must be an absolute path"), "workdir", r.WorkDir)
	}
	if r.ManifestPath == "" {
		return zerr.Wrap(ErrInvalidRecipe, "manifest path is required")
	}
	if r.SourcePath == "" {
		return zerr.Wrap(ErrInvalidRecipe, "source path is required")
	}
	if len(r.Command) == 0 {
		return zerr.Wrap(ErrInvalidRecipe, "command is required")
	}
	return nil
}

// SearchVar returns the effective module search-path variable name.
func (r *Recipe) SearchVar() string {
	if r.SearchPathVar == "" {
		return DefaultSearchPathVar
	}
	return r.SearchPathVar
}

// BasePin is an exact, versioned base runtime reference. Floating references
// ("latest", a bare name, a partial version) are rejected at parse time so that
// builds are reproducible across time and machines.
type BasePin struct {
	// Name is the runtime name, e.g. "python".
	Name string

	// Version is the exact version, e.g. "3.13.2".
	Version string
}

// ParseBasePin parses a "name@version" reference into a BasePin.
func ParseBasePin(ref string) (BasePin, error) {
	name, version, ok := strings.Cut(ref, "@")
	if !ok {
		return BasePin{}, zerr.With(ErrUnpinnedBase, "ref", ref)
	}
	pin := BasePin{Name: name, Version: version}
	if err := pin.validate(); err != nil {
		return BasePin{}, err
	}
	return pin, nil
}

// String returns the canonical "name@version" form.
func (p BasePin) String() string {
	return p.Name + "@" + p.Version
}

func (p BasePin) validate() error {
	if p.Name == "" || p.Version == "" {
		return zerr.With(ErrUnpinnedBase, "ref", p.String())
	}
	if p.Version == "latest" {
		return zerr.With(ErrUnpinnedBase, "ref", p.String())
	}
	for part := range strings.SplitSeq(p.Version, ".") {
		if part == "" {
			return zerr.With(ErrUnpinnedBase, "ref", p.String())
		}
		for _, c := range part {
			if c < '0' || c > '9' {
				return zerr.With(ErrUnpinnedBase, "ref", p.String())
			}
		}
	}
	// A single component ("3") is a floating major version, not a pin.
	if !strings.Contains(p.Version, ".") {
		return zerr.With(ErrUnpinnedBase, "ref", p.String())
	}
	return nil
}

// BaseRuntime is a resolved base pin: the pin plus the concrete interpreter
// that backs it on this machine.
type BaseRuntime struct {
	Pin BasePin

	// Interpreter is the absolute path of the runtime executable.
	Interpreter string
}
