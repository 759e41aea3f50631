package shell_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/rockdove/forge/internal/adapters/cas"
	"github.com/rockdove/forge/internal/adapters/fs"
	"github.com/rockdove/forge/internal/adapters/shell"
	"github.com/rockdove/forge/internal/core/domain"
	"github.com/stretchr/testify/require"
)

type stubBase struct{ interpreter string }

func (s stubBase) Resolve(_ context.Context, pin domain.BasePin) (domain.BaseRuntime, error) {
	return domain.BaseRuntime{Pin: pin, Interpreter: s.interpreter}, nil
}

type quietLogger struct{}

func (quietLogger) Info(string) {}
func (quietLogger) Warn(string) {}
func (quietLogger) Error(error) {}

func buildTestImage(t *testing.T, store *cas.Store, script string) *domain.Image {
	t.Helper()

	srcDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(srcDir, "src"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "src", "main.sh"), []byte(script), 0o600))

	layer, err := store.PutLayer("source-key", domain.LayerSource, srcDir)
	require.NoError(t, err)

	img := &domain.Image{
		Base:   domain.BasePin{Name: "python", Version: "3.13.2"},
		Layers: []domain.Layer{*layer},
		Config: domain.ImageConfig{
			WorkDir: "/app",
			Env:     map[string]string{"PYTHONPATH": "/app"},
			Cmd:     []string{"python", "src/main.sh"},
		},
	}
	img.ID = img.ComputeID()
	require.NoError(t, store.PutImage(img, "test"))
	return img
}

func newLauncher(t *testing.T, store *cas.Store) (*shell.Launcher, *bytes.Buffer) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("launcher tests require a POSIX shell")
	}
	l := shell.NewLauncher(store, stubBase{interpreter: "/bin/sh"}, quietLogger{})
	l.RunRoot = filepath.Join(t.TempDir(), "run")
	var out bytes.Buffer
	l.Stdout = &out
	l.Stderr = &out
	return l, &out
}

func TestLauncher_Launch_DefaultCommand(t *testing.T) {
	store, err := cas.NewStore(filepath.Join(t.TempDir(), "store"), fs.NewHasher(fs.NewWalker()))
	require.NoError(t, err)

	img := buildTestImage(t, store, "echo ready\n")
	l, out := newLauncher(t, store)

	code, err := l.Launch(context.Background(), img, nil)
	require.NoError(t, err)
	require.Equal(t, 0, code)
	require.Equal(t, "ready\n", out.String())
}

func TestLauncher_Launch_WorkdirAndSearchPathBound(t *testing.T) {
	store, err := cas.NewStore(filepath.Join(t.TempDir(), "store"), fs.NewHasher(fs.NewWalker()))
	require.NoError(t, err)

	// The process must start in the assembled working directory with the
	// search-path variable bound to that same directory.
	img := buildTestImage(t, store, `test "$PYTHONPATH" = "$(pwd)" && echo bound`+"\n")
	l, out := newLauncher(t, store)

	code, err := l.Launch(context.Background(), img, nil)
	require.NoError(t, err)
	require.Equal(t, 0, code)
	require.Equal(t, "bound\n", out.String())
}

func TestLauncher_Launch_EnvRewriteStopsAtPathBoundary(t *testing.T) {
	store, err := cas.NewStore(filepath.Join(t.TempDir(), "store"), fs.NewHasher(fs.NewWalker()))
	require.NoError(t, err)

	srcDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(srcDir, "src"), 0o750))
	script := `test "$APPLE_DIR" = "/apple" || exit 1` + "\n" +
		`test "$SRC_DIR" = "$(pwd)/src" || exit 2` + "\n" +
		"echo intact\n"
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "src", "main.sh"), []byte(script), 0o600))

	layer, err := store.PutLayer("source-key", domain.LayerSource, srcDir)
	require.NoError(t, err)

	img := &domain.Image{
		Base:   domain.BasePin{Name: "python", Version: "3.13.2"},
		Layers: []domain.Layer{*layer},
		Config: domain.ImageConfig{
			WorkDir: "/app",
			Env: map[string]string{
				// Shares a string prefix with the workdir but is a different
				// path; it must survive the launch untouched.
				"APPLE_DIR": "/apple",
				"SRC_DIR":   "/app/src",
			},
			Cmd: []string{"python", "src/main.sh"},
		},
	}
	img.ID = img.ComputeID()
	require.NoError(t, store.PutImage(img, "test"))

	l, out := newLauncher(t, store)
	code, err := l.Launch(context.Background(), img, nil)
	require.NoError(t, err)
	require.Equal(t, 0, code)
	require.Equal(t, "intact\n", out.String())
}

func TestLauncher_Launch_OverrideBypassesDefault(t *testing.T) {
	store, err := cas.NewStore(filepath.Join(t.TempDir(), "store"), fs.NewHasher(fs.NewWalker()))
	require.NoError(t, err)

	img := buildTestImage(t, store, "echo ready\n")
	l, out := newLauncher(t, store)

	code, err := l.Launch(context.Background(), img, []string{"/bin/sh", "-c", "echo overridden; exit 7"})
	require.NoError(t, err)
	require.Equal(t, 7, code)
	require.Equal(t, "overridden\n", out.String())
}

func TestLauncher_Launch_ExitCodeSurfaced(t *testing.T) {
	store, err := cas.NewStore(filepath.Join(t.TempDir(), "store"), fs.NewHasher(fs.NewWalker()))
	require.NoError(t, err)

	img := buildTestImage(t, store, "exit 3\n")
	l, _ := newLauncher(t, store)

	code, err := l.Launch(context.Background(), img, nil)
	require.NoError(t, err)
	require.Equal(t, 3, code)
}

func TestLauncher_Launch_MissingLayerFails(t *testing.T) {
	store, err := cas.NewStore(filepath.Join(t.TempDir(), "store"), fs.NewHasher(fs.NewWalker()))
	require.NoError(t, err)

	img := buildTestImage(t, store, "echo ready\n")
	// Corrupt the store by pointing the image at a blob that was never ingested.
	img.Layers[0].Digest = "sha256:0000000000000000000000000000000000000000000000000000000000000000"

	l, _ := newLauncher(t, store)
	_, err = l.Launch(context.Background(), img, nil)
	require.Error(t, err)
}
