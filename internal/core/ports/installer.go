package ports

import (
	"context"
	"io"

	"github.com/rockdove/forge/internal/core/domain"
)

// Installer installs the dependencies declared by a manifest into a layer
// directory.
//
// The install step itself must run with the installer's own cache disabled;
// cache reuse happens one level up, keyed on the manifest content hash. Any
// failure (unresolvable constraint, network error, checksum mismatch) aborts
// the build and must be reported as domain.ErrInstallFailed.
//
//go:generate go run go.uber.org/mock/mockgen -source=installer.go -destination=mocks/mock_installer.go -package=mocks
type Installer interface {
	// Install resolves and installs every requirement of the staged manifest
	// into targetDir, streaming installer output to logs.
	Install(ctx context.Context, runtime domain.BaseRuntime, manifestPath, targetDir string, logs io.Writer) error
}
