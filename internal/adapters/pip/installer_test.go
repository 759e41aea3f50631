package pip_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/rockdove/forge/internal/adapters/pip"
	"github.com/rockdove/forge/internal/core/domain"
	"github.com/stretchr/testify/require"
)

type discardLogger struct{}

func (discardLogger) Info(string) {}
func (discardLogger) Warn(string) {}
func (discardLogger) Error(error) {}

// stubInterpreter writes an executable script standing in for the runtime.
func stubInterpreter(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("stub interpreter scripts require a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "python")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o700)) //nolint:gosec // Test stub must be executable
	return path
}

func TestInstaller_Install_StreamsOutput(t *testing.T) {
	interp := stubInterpreter(t, `echo "installing $@"`)
	rt := domain.BaseRuntime{Pin: domain.BasePin{Name: "python", Version: "3.13.2"}, Interpreter: interp}

	var logs bytes.Buffer
	inst := pip.NewInstaller(discardLogger{})
	err := inst.Install(context.Background(), rt, "requirements.txt", t.TempDir(), &logs)

	require.NoError(t, err)
	require.Contains(t, logs.String(), "--no-cache-dir")
	require.Contains(t, logs.String(), "requirements.txt")
}

func TestInstaller_Install_FailureIsInstallError(t *testing.T) {
	interp := stubInterpreter(t, `echo "no matching distribution" >&2; exit 1`)
	rt := domain.BaseRuntime{Pin: domain.BasePin{Name: "python", Version: "3.13.2"}, Interpreter: interp}

	var logs bytes.Buffer
	inst := pip.NewInstaller(discardLogger{})
	err := inst.Install(context.Background(), rt, "requirements.txt", t.TempDir(), &logs)

	require.ErrorIs(t, err, domain.ErrInstallFailed)
	require.Contains(t, logs.String(), "no matching distribution")
}

func TestInstaller_Install_CancelledContext(t *testing.T) {
	interp := stubInterpreter(t, "sleep 10")
	rt := domain.BaseRuntime{Pin: domain.BasePin{Name: "python", Version: "3.13.2"}, Interpreter: interp}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	inst := pip.NewInstaller(discardLogger{})
	err := inst.Install(ctx, rt, "requirements.txt", t.TempDir(), &bytes.Buffer{})
	require.ErrorIs(t, err, domain.ErrInstallFailed)
}
