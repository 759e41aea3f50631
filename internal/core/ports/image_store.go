package ports

import (
	"github.com/opencontainers/go-digest"
	"github.com/rockdove/forge/internal/core/domain"
)

// ImageStore is the content-addressed store shared by builds.
//
// Layer lookups are keyed by content hashes of each step's inputs, never by
// wall-clock time. Blobs are immutable once ingested; concurrent builds may
// read the store freely.
//
//go:generate go run go.uber.org/mock/mockgen -source=image_store.go -destination=mocks/mock_image_store.go -package=mocks
type ImageStore interface {
	// GetLayer returns the layer cached under the given input key.
	// Returns nil, nil on a cache miss.
	GetLayer(key string) (*domain.Layer, error)

	// PutLayer ingests srcDir as an immutable layer blob and records it under
	// the given input key.
	PutLayer(key string, kind domain.LayerKind, srcDir string) (*domain.Layer, error)

	// LayerPath returns the filesystem path of an ingested layer blob.
	LayerPath(d digest.Digest) (string, error)

	// PutImage persists image metadata and tags it. Tagging happens only after
	// a fully successful build; a failed build leaves no image behind.
	PutImage(img *domain.Image, tag string) error

	// GetImage resolves a tag or image ID to its metadata.
	// Returns domain.ErrImageNotFound if no such image exists.
	GetImage(ref string) (*domain.Image, error)

	// Prune removes layer blobs no stored image references and returns the
	// number of blobs removed.
	Prune() (int, error)
}
