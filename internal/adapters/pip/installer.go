// Package pip provides the exec-based dependency installer adapter.
package pip

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"

	"github.com/rockdove/forge/internal/core/domain"
	"github.com/rockdove/forge/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Installer = (*Installer)(nil)

// Installer implements ports.Installer by invoking the base runtime's pip.
//
// The installer's own cache is disabled for every invocation; reuse of an
// unchanged manifest happens at the layer cache above, keyed purely on input
// content.
type Installer struct {
	logger ports.Logger
}

// NewInstaller creates a new Installer.
func NewInstaller(logger ports.Logger) *Installer {
	return &Installer{logger: logger}
}

// Install resolves and installs every requirement of the staged manifest into
// targetDir. Any installer failure aborts with domain.ErrInstallFailed; the
// partially filled targetDir is the caller's staging area and is never
// ingested on failure.
func (i *Installer) Install(ctx context.Context, runtime domain.BaseRuntime, manifestPath, targetDir string, logs io.Writer) error {
	//nolint:gosec // Interpreter path comes from the resolved base runtime
	cmd := exec.CommandContext(ctx, runtime.Interpreter,
		"-m", "pip", "install",
		"--no-cache-dir",
		"--target", targetDir,
		"--requirement", manifestPath,
	)
	cmd.Stdout = logs
	cmd.Stderr = logs
	cmd.Env = append(os.Environ(), "PIP_DISABLE_PIP_VERSION_CHECK=1")

	i.logger.Info("installing dependencies from " + manifestPath)

	if err := cmd.Run(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		wrapped := zerr.With(zerr.Wrap(domain.ErrInstallFailed, err.Error()), "exit_code", exitCode)
		return zerr.With(wrapped, "manifest", manifestPath)
	}
	return nil
}
