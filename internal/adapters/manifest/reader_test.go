package manifest_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rockdove/forge/internal/adapters/fs"
	"github.com/rockdove/forge/internal/adapters/manifest"
	"github.com/rockdove/forge/internal/core/domain"
	"github.com/stretchr/testify/require"
)

func newReader() *manifest.Reader {
	return manifest.NewReader(fs.NewHasher(fs.NewWalker()))
}

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "requirements.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestReader_Read(t *testing.T) {
	path := writeManifest(t, `
# weather gateway dependencies
metar==1.11.0
requests>=2.31.0
python-dotenv  # unconstrained
`)

	m, err := newReader().Read(path)
	require.NoError(t, err)
	require.NotEmpty(t, m.ContentHash)
	require.Equal(t, []domain.Requirement{
		{Name: "metar", Constraint: "==1.11.0"},
		{Name: "requests", Constraint: ">=2.31.0"},
		{Name: "python-dotenv"},
	}, m.Requirements)
}

func TestReader_Read_PreservesDeclarationOrder(t *testing.T) {
	path := writeManifest(t, "zulu==1.0\nalpha==2.0\n")

	m, err := newReader().Read(path)
	require.NoError(t, err)
	require.Equal(t, "zulu", m.Requirements[0].Name)
	require.Equal(t, "alpha", m.Requirements[1].Name)
}

func TestReader_Read_MissingManifest(t *testing.T) {
	_, err := newReader().Read(filepath.Join(t.TempDir(), "requirements.txt"))
	require.ErrorIs(t, err, domain.ErrManifestMissing)
}

func TestReader_Read_MalformedEntry(t *testing.T) {
	path := writeManifest(t, "metar== \n")
	_, err := newReader().Read(path)
	require.ErrorIs(t, err, domain.ErrManifestInvalid)

	path = writeManifest(t, "not a requirement\n")
	_, err = newReader().Read(path)
	require.ErrorIs(t, err, domain.ErrManifestInvalid)
}

func TestReader_Read_ContentHashTracksContent(t *testing.T) {
	r := newReader()

	a, err := r.Read(writeManifest(t, "metar==1.11.0\n"))
	require.NoError(t, err)
	b, err := r.Read(writeManifest(t, "metar==1.11.0\n"))
	require.NoError(t, err)
	c, err := r.Read(writeManifest(t, "metar==1.12.0\n"))
	require.NoError(t, err)

	require.Equal(t, a.ContentHash, b.ContentHash)
	require.NotEqual(t, a.ContentHash, c.ContentHash)
}
