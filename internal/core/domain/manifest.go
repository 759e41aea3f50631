package domain

// Requirement is one declared dependency: a package name plus a version
// constraint, e.g. {Name: "metar", Constraint: "==1.11.0"}.
type Requirement struct {
	Name       string
	Constraint string
}

// String returns the requirement in manifest syntax.
func (r Requirement) String() string {
	return r.Name + r.Constraint
}

// Manifest is the parsed dependency manifest. It is read once at build time
// and immutable thereafter within a built image.
type Manifest struct {
	// Path is the manifest location relative to the build root.
	Path string

	// Requirements preserves the declaration order of the manifest file.
	Requirements []Requirement

	// ContentHash is the content hash of the raw manifest bytes. It keys the
	// dependency layer cache, so an unchanged manifest reuses the previous
	// install result.
	ContentHash string
}
