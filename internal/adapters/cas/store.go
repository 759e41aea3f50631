// Package cas implements the content addressable image and layer store.
package cas

import (
	"encoding/json"
	"errors"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/opencontainers/go-digest"
	adapterfs "github.com/rockdove/forge/internal/adapters/fs"
	"github.com/rockdove/forge/internal/core/domain"
	"github.com/rockdove/forge/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ImageStore = (*Store)(nil)

// Store implements ports.ImageStore on the local filesystem.
//
// Layout under the store root:
//
//	layers/<algo>-<encoded>/   immutable layer blobs
//	images/<encoded>.json      image metadata
//	tags.json                  tag -> image ID
//	index.json                 input key -> layer
//
// The layer index is keyed by content hashes of step inputs; entries are never
// invalidated by time.
type Store struct {
	root   string
	hasher ports.TreeHasher

	mu    sync.RWMutex
	index map[string]domain.Layer
	tags  map[string]digest.Digest
}

// NewStore creates a Store rooted at the given path, loading any existing
// index and tag state.
func NewStore(root string, hasher ports.TreeHasher) (*Store, error) {
	s := &Store{
		root:   filepath.Clean(root),
		hasher: hasher,
		index:  make(map[string]domain.Layer),
		tags:   make(map[string]digest.Digest),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := readJSON(s.indexPath(), &s.index); err != nil {
		return err
	}
	return readJSON(s.tagsPath(), &s.tags)
}

func readJSON(path string, v any) error {
	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.With(zerr.Wrap(err, "failed to read store state"), "path", path)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to unmarshal store state"), "path", path)
	}
	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal store state")
	}
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return zerr.Wrap(err, "failed to create store directory")
	}
	tmp := path + ".tmp"
	//nolint:gosec // Path is cleaned and provided by trusted caller
	if err := os.WriteFile(tmp, data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write store state"), "path", path)
	}
	return os.Rename(tmp, path)
}

func (s *Store) indexPath() string { return filepath.Join(s.root, "index.json") }
func (s *Store) tagsPath() string  { return filepath.Join(s.root, "tags.json") }

func (s *Store) blobPath(d digest.Digest) string {
	return filepath.Join(s.root, domain.LayersDirName, d.Algorithm().String()+"-"+d.Encoded())
}

func (s *Store) imagePath(id digest.Digest) string {
	return filepath.Join(s.root, domain.ImagesDirName, id.Encoded()+".json")
}

// GetLayer returns the layer cached under the given input key, or nil, nil on
// a miss. A dangling index entry whose blob has been removed counts as a miss.
func (s *Store) GetLayer(key string) (*domain.Layer, error) {
	s.mu.RLock()
	layer, ok := s.index[key]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	if _, err := os.Stat(s.blobPath(layer.Digest)); err != nil {
		return nil, nil //nolint:nilnil // Miss by contract
	}
	return &layer, nil
}

// PutLayer ingests srcDir as an immutable blob and records it under key.
// The blob digest is derived from the layer kind and tree content, so
// identical layer content converges on the same blob.
func (s *Store) PutLayer(key string, kind domain.LayerKind, srcDir string) (*domain.Layer, error) {
	treeHash, err := s.hasher.HashTree(srcDir)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to hash layer content")
	}

	layer := domain.Layer{
		Digest: digest.FromString(string(kind) + "\x00" + treeHash),
		Kind:   kind,
	}

	blob := s.blobPath(layer.Digest)
	if _, err := os.Stat(blob); errors.Is(err, fs.ErrNotExist) {
		// Stage next to the final location and rename, so a crashed ingest
		// never leaves a partial blob behind.
		staging := blob + ".ingest"
		if err := os.RemoveAll(staging); err != nil {
			return nil, zerr.Wrap(err, "failed to clear layer staging directory")
		}
		if err := os.MkdirAll(staging, domain.DirPerm); err != nil {
			return nil, zerr.Wrap(err, "failed to create layer staging directory")
		}
		if err := adapterfs.CopyTree(srcDir, staging); err != nil {
			return nil, zerr.Wrap(err, "failed to ingest layer content")
		}
		if err := os.Rename(staging, blob); err != nil {
			return nil, zerr.Wrap(err, "failed to commit layer blob")
		}
	}

	// Snapshot under the lock; marshaling the live map would race with
	// concurrent writers.
	s.mu.Lock()
	s.index[key] = layer
	index := maps.Clone(s.index)
	s.mu.Unlock()

	if err := writeJSON(s.indexPath(), index); err != nil {
		return nil, err
	}
	return &layer, nil
}

// LayerPath returns the filesystem path of an ingested layer blob.
func (s *Store) LayerPath(d digest.Digest) (string, error) {
	path := s.blobPath(d)
	if _, err := os.Stat(path); err != nil {
		return "", zerr.With(zerr.Wrap(err, "layer blob missing"), "digest", string(d))
	}
	return path, nil
}

// PutImage persists image metadata and records the tag. The image file is
// written before the tag becomes visible, so a partially written image is
// never reachable by reference.
func (s *Store) PutImage(img *domain.Image, tag string) error {
	if img.CreatedAt.IsZero() {
		img.CreatedAt = time.Now().UTC()
	}
	if err := writeJSON(s.imagePath(img.ID), img); err != nil {
		return err
	}

	if tag == "" {
		return nil
	}

	s.mu.Lock()
	s.tags[tag] = img.ID
	tags := maps.Clone(s.tags)
	s.mu.Unlock()

	return writeJSON(s.tagsPath(), tags)
}

// Prune removes layer blobs that no stored image references, along with the
// index entries pointing at them. It returns the number of blobs removed.
func (s *Store) Prune() (int, error) {
	referenced, err := s.referencedDigests()
	if err != nil {
		return 0, err
	}

	layersDir := filepath.Join(s.root, domain.LayersDirName)
	entries, err := os.ReadDir(layersDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, nil
		}
		return 0, zerr.Wrap(err, "failed to read layers directory")
	}

	removed := 0
	for _, entry := range entries {
		algo, encoded, ok := strings.Cut(entry.Name(), "-")
		if !ok {
			continue
		}
		d := digest.NewDigestFromEncoded(digest.Algorithm(algo), encoded)
		if referenced[d] {
			continue
		}
		if err := os.RemoveAll(filepath.Join(layersDir, entry.Name())); err != nil {
			return removed, zerr.With(zerr.Wrap(err, "failed to remove layer blob"), "digest", string(d))
		}
		removed++
	}

	s.mu.Lock()
	for key, layer := range s.index {
		if !referenced[layer.Digest] {
			delete(s.index, key)
		}
	}
	index := maps.Clone(s.index)
	s.mu.Unlock()

	return removed, writeJSON(s.indexPath(), index)
}

func (s *Store) referencedDigests() (map[digest.Digest]bool, error) {
	referenced := make(map[digest.Digest]bool)

	imagesDir := filepath.Join(s.root, domain.ImagesDirName)
	entries, err := os.ReadDir(imagesDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return referenced, nil
		}
		return nil, zerr.Wrap(err, "failed to read images directory")
	}

	for _, entry := range entries {
		if filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		var img domain.Image
		if err := readJSON(filepath.Join(imagesDir, entry.Name()), &img); err != nil {
			return nil, err
		}
		for _, layer := range img.Layers {
			referenced[layer.Digest] = true
		}
	}
	return referenced, nil
}

// GetImage resolves a tag or image ID to its metadata.
func (s *Store) GetImage(ref string) (*domain.Image, error) {
	s.mu.RLock()
	id, tagged := s.tags[ref]
	s.mu.RUnlock()

	if !tagged {
		parsed, err := digest.Parse(ref)
		if err != nil {
			return nil, zerr.With(domain.ErrImageNotFound, "ref", ref)
		}
		id = parsed
	}

	var img domain.Image
	//nolint:gosec // Path is derived from a validated digest
	data, err := os.ReadFile(s.imagePath(id))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, zerr.With(domain.ErrImageNotFound, "ref", ref)
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to read image metadata"), "ref", ref)
	}
	if err := json.Unmarshal(data, &img); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to unmarshal image metadata"), "ref", ref)
	}
	return &img, nil
}
