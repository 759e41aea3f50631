package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidRecipe is returned when a recipe fails validation.
	ErrInvalidRecipe = zerr.New("invalid recipe")

	// ErrUnpinnedBase is returned when the base runtime reference is not an exact pin.
	ErrUnpinnedBase = zerr.New("base runtime is not pinned to an exact version")

	// ErrBaseUnavailable is returned when the pinned base runtime cannot be resolved.
	ErrBaseUnavailable = zerr.New("base runtime unavailable")

	// ErrManifestMissing is returned when the dependency manifest does not exist or cannot be read.
	ErrManifestMissing = zerr.New("dependency manifest missing or unreadable")

	// ErrManifestInvalid is returned when the dependency manifest cannot be parsed.
	ErrManifestInvalid = zerr.New("dependency manifest invalid")

	// ErrInstallFailed is returned when the package installer exits with an error.
	ErrInstallFailed = zerr.New("dependency install failed")

	// ErrSourceMissing is returned when the application source tree does not exist.
	ErrSourceMissing = zerr.New("source tree missing")

	// ErrImageNotFound is returned when a requested image is not present in the store.
	ErrImageNotFound = zerr.New("image not found")

	// ErrInvalidTransition is returned when a build attempts an out-of-order state change.
	ErrInvalidTransition = zerr.New("invalid build state transition")

	// ErrBuildFailed is joined onto any error that aborts a build.
	ErrBuildFailed = zerr.New("image build failed")
)
