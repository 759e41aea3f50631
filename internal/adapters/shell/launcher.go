// Package shell provides the image launcher adapter.
package shell

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	adapterfs "github.com/rockdove/forge/internal/adapters/fs"
	"github.com/rockdove/forge/internal/core/domain"
	"github.com/rockdove/forge/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Launcher = (*Launcher)(nil)

// Launcher implements ports.Launcher using os/exec.
//
// Launching assembles the image layers into a root filesystem under the run
// directory, fixes the working directory there, rewrites recorded environment
// paths from the image working directory to the assembled location, and runs
// the default command. An override bypasses the default entirely.
type Launcher struct {
	store  ports.ImageStore
	base   ports.BaseResolver
	logger ports.Logger

	// RunRoot is the directory root filesystems are assembled under.
	RunRoot string

	// Stdout and Stderr receive the launched process output. They default to
	// the launcher process streams.
	Stdout io.Writer
	Stderr io.Writer
}

// NewLauncher creates a new Launcher.
func NewLauncher(store ports.ImageStore, base ports.BaseResolver, logger ports.Logger) *Launcher {
	return &Launcher{
		store:   store,
		base:    base,
		logger:  logger,
		RunRoot: domain.DefaultRunPath(),
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
}

// Launch runs the image and returns the process exit code. A non-zero exit of
// the launched process is not an error; failures to assemble or start are.
func (l *Launcher) Launch(ctx context.Context, img *domain.Image, override []string) (int, error) {
	rootfs, err := l.assemble(img)
	if err != nil {
		return -1, err
	}

	runtime, err := l.base.Resolve(ctx, img.Base)
	if err != nil {
		return -1, err
	}

	argv := img.Config.Cmd
	if len(override) > 0 {
		argv = override
	}

	executable := argv[0]
	// The recorded command names the base runtime by its pinned name; map it
	// to the resolved interpreter on this machine.
	if executable == img.Base.Name {
		executable = runtime.Interpreter
	}

	cmd := exec.CommandContext(ctx, executable, argv[1:]...) //nolint:gosec // Command comes from the image config
	cmd.Args[0] = argv[0]
	cmd.Dir = rootfs
	cmd.Env = l.environment(img, rootfs)
	cmd.Stdin = os.Stdin
	cmd.Stdout = l.Stdout
	cmd.Stderr = l.Stderr

	l.logger.Info("launching " + strings.Join(argv, " "))

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return -1, zerr.With(zerr.Wrap(err, "failed to launch image"), "image", img.ID.String())
	}
	return 0, nil
}

// assemble copies the image layers, in order, into a fresh root filesystem.
// Later layers win, mirroring how the layers stacked at build time.
func (l *Launcher) assemble(img *domain.Image) (string, error) {
	rootfs := filepath.Join(l.RunRoot, img.ID.Encoded())

	if err := os.RemoveAll(rootfs); err != nil {
		return "", zerr.Wrap(err, "failed to clear run directory")
	}
	if err := os.MkdirAll(rootfs, domain.DirPerm); err != nil {
		return "", zerr.Wrap(err, "failed to create run directory")
	}

	for _, layer := range img.Layers {
		blob, err := l.store.LayerPath(layer.Digest)
		if err != nil {
			return "", err
		}
		if err := adapterfs.CopyTree(blob, rootfs); err != nil {
			return "", zerr.With(zerr.Wrap(err, "failed to assemble layer"), "digest", string(layer.Digest))
		}
	}
	return rootfs, nil
}

// environment merges the process environment with the image bindings. Values
// recorded against the image working directory are rewritten to the assembled
// root so the search-path variable keeps pointing at the working directory.
// Only whole path components match; a value that merely shares a string
// prefix with the working directory is left alone.
func (l *Launcher) environment(img *domain.Image, rootfs string) []string {
	env := os.Environ()
	workdir := img.Config.WorkDir
	for k, v := range img.Config.Env {
		switch {
		case v == workdir:
			v = rootfs
		case strings.HasPrefix(v, workdir+"/"):
			v = rootfs + strings.TrimPrefix(v, workdir)
		}
		env = append(env, k+"="+v)
	}
	return env
}
