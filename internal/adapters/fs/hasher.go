package fs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/cespare/xxhash/v2"
	"github.com/rockdove/forge/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

var _ ports.TreeHasher = (*Hasher)(nil)

// Hasher computes content hashes of build inputs. Tree hashes are derived
// purely from relative paths and file contents, so identical trees hash
// identically across machines and across time.
type Hasher struct {
	walker *Walker
}

// NewHasher creates a new Hasher.
func NewHasher(walker *Walker) *Hasher {
	return &Hasher{walker: walker}
}

// HashFile computes the XXHash of a file's content.
func (h *Hasher) HashFile(path string) (string, error) {
	sum, err := h.hashFile(path)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%016x", sum), nil
}

func (h *Hasher) hashFile(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}
	return hasher.Sum64(), nil
}

// HashTree computes a deterministic hash over every file beneath root.
// Files are hashed concurrently; the per-file hashes are combined in sorted
// relative-path order so the result does not depend on scheduling.
func (h *Hasher) HashTree(root string) (string, error) {
	var paths []string
	for path := range h.walker.WalkFiles(root) {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	// Each goroutine writes its own slice element, so no locking is needed.
	hashes := make([]uint64, len(paths))

	g := new(errgroup.Group)
	g.SetLimit(runtime.NumCPU())
	for i, path := range paths {
		g.Go(func() error {
			sum, err := h.hashFile(path)
			if err != nil {
				return err
			}
			hashes[i] = sum
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}

	digest := xxhash.New()
	for i, path := range paths {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return "", zerr.With(zerr.Wrap(err, "failed to relativize path"), "path", path)
		}
		_, _ = digest.WriteString(filepath.ToSlash(rel))
		_, _ = digest.Write([]byte{0})
		_, _ = digest.WriteString(fmt.Sprintf("%016x", hashes[i]))
		_, _ = digest.Write([]byte{0})
	}
	return fmt.Sprintf("%016x", digest.Sum64()), nil
}
