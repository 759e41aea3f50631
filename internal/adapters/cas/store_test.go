package cas_test

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/rockdove/forge/internal/adapters/cas"
	"github.com/rockdove/forge/internal/adapters/fs"
	"github.com/rockdove/forge/internal/core/domain"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func newStore(t *testing.T, root string) *cas.Store {
	t.Helper()
	store, err := cas.NewStore(root, fs.NewHasher(fs.NewWalker()))
	require.NoError(t, err)
	return store
}

func layerDir(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.py"), []byte(content), 0o600))
	return dir
}

func TestStore_PutAndGetLayer(t *testing.T) {
	store := newStore(t, filepath.Join(t.TempDir(), "store"))

	layer, err := store.PutLayer("key-1", domain.LayerSource, layerDir(t, "print('ready')\n"))
	require.NoError(t, err)
	require.Equal(t, domain.LayerSource, layer.Kind)

	got, err := store.GetLayer("key-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, layer.Digest, got.Digest)

	path, err := store.LayerPath(layer.Digest)
	require.NoError(t, err)
	require.FileExists(t, filepath.Join(path, "main.py"))
}

func TestStore_GetLayer_MissReturnsNil(t *testing.T) {
	store := newStore(t, filepath.Join(t.TempDir(), "store"))

	got, err := store.GetLayer("unknown")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestStore_IndexPersistsAcrossInstances(t *testing.T) {
	root := filepath.Join(t.TempDir(), "store")

	first := newStore(t, root)
	layer, err := first.PutLayer("key-2", domain.LayerDependencies, layerDir(t, "pkg"))
	require.NoError(t, err)

	second := newStore(t, root)
	got, err := second.GetLayer("key-2")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, layer.Digest, got.Digest)
}

func TestStore_IdenticalContentSharesBlob(t *testing.T) {
	store := newStore(t, filepath.Join(t.TempDir(), "store"))

	a, err := store.PutLayer("key-a", domain.LayerSource, layerDir(t, "same"))
	require.NoError(t, err)
	b, err := store.PutLayer("key-b", domain.LayerSource, layerDir(t, "same"))
	require.NoError(t, err)

	require.Equal(t, a.Digest, b.Digest)
}

func TestStore_ConcurrentPutLayer(t *testing.T) {
	store := newStore(t, filepath.Join(t.TempDir(), "store"))

	// Distinct keys are not deduped upstream, so the store must tolerate
	// simultaneous writers.
	dirs := make([]string, 8)
	for i := range dirs {
		dirs[i] = layerDir(t, strconv.Itoa(i))
	}

	var g errgroup.Group
	for i, dir := range dirs {
		g.Go(func() error {
			_, err := store.PutLayer("key-"+strconv.Itoa(i), domain.LayerSource, dir)
			return err
		})
	}
	require.NoError(t, g.Wait())

	for i := range dirs {
		got, err := store.GetLayer("key-" + strconv.Itoa(i))
		require.NoError(t, err)
		require.NotNil(t, got)
	}
}

func TestStore_PutAndGetImage(t *testing.T) {
	store := newStore(t, filepath.Join(t.TempDir(), "store"))

	layer, err := store.PutLayer("key-3", domain.LayerSource, layerDir(t, "print('ready')\n"))
	require.NoError(t, err)

	img := &domain.Image{
		Base:   domain.BasePin{Name: "python", Version: "3.13.2"},
		Layers: []domain.Layer{*layer},
		Config: domain.ImageConfig{
			WorkDir: "/app",
			Env:     map[string]string{"PYTHONPATH": "/app"},
			Cmd:     []string{"python", "src/main.py"},
		},
	}
	img.ID = img.ComputeID()

	require.NoError(t, store.PutImage(img, "rockdove"))

	byTag, err := store.GetImage("rockdove")
	require.NoError(t, err)
	require.Equal(t, img.ID, byTag.ID)
	require.Equal(t, img.Config.Cmd, byTag.Config.Cmd)
	require.False(t, byTag.CreatedAt.IsZero())

	byID, err := store.GetImage(img.ID.String())
	require.NoError(t, err)
	require.Equal(t, img.ID, byID.ID)
}

func TestStore_GetImage_NotFound(t *testing.T) {
	store := newStore(t, filepath.Join(t.TempDir(), "store"))

	_, err := store.GetImage("nope")
	require.ErrorIs(t, err, domain.ErrImageNotFound)
}

func TestStore_Prune(t *testing.T) {
	store := newStore(t, filepath.Join(t.TempDir(), "store"))

	kept, err := store.PutLayer("key-kept", domain.LayerSource, layerDir(t, "kept"))
	require.NoError(t, err)
	orphan, err := store.PutLayer("key-orphan", domain.LayerSource, layerDir(t, "orphan"))
	require.NoError(t, err)

	img := &domain.Image{
		Base:   domain.BasePin{Name: "python", Version: "3.13.2"},
		Layers: []domain.Layer{*kept},
		Config: domain.ImageConfig{WorkDir: "/app", Cmd: []string{"python", "src/main.py"}},
	}
	img.ID = img.ComputeID()
	require.NoError(t, store.PutImage(img, "rockdove"))

	removed, err := store.Prune()
	require.NoError(t, err)
	require.Equal(t, 1, removed)

	_, err = store.LayerPath(kept.Digest)
	require.NoError(t, err)
	_, err = store.LayerPath(orphan.Digest)
	require.Error(t, err)

	// The orphan's index entry is gone; the kept one survives.
	got, err := store.GetLayer("key-orphan")
	require.NoError(t, err)
	require.Nil(t, got)
	got, err = store.GetLayer("key-kept")
	require.NoError(t, err)
	require.NotNil(t, got)
}
