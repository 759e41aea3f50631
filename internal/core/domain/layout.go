package domain

import "path/filepath"

const (
	// ForgeDirName is the name of the internal workspace directory.
	ForgeDirName = ".forge"

	// StoreDirName is the name of the content addressable store directory.
	StoreDirName = "store"

	// LayersDirName is the name of the layer blob directory inside the store.
	LayersDirName = "layers"

	// ImagesDirName is the name of the image metadata directory inside the store.
	ImagesDirName = "images"

	// RunDirName is the name of the directory holding assembled root filesystems.
	RunDirName = "run"

	// RecipeFileName is the name of the build recipe file.
	RecipeFileName = "forge.yaml"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultForgePath returns the default root directory for forge metadata.
func DefaultForgePath() string {
	return ForgeDirName
}

// DefaultStorePath returns the default path for the content addressable store.
func DefaultStorePath() string {
	return filepath.Join(ForgeDirName, StoreDirName)
}

// DefaultRunPath returns the default path for assembled root filesystems.
func DefaultRunPath() string {
	return filepath.Join(ForgeDirName, RunDirName)
}
