package fs

import (
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/zerr"
)

// CopyTree copies every regular file beneath src into dst, preserving the
// relative layout and file modes. dst is created if it does not exist.
// Existing files in dst are overwritten, which gives later layers precedence
// when a root filesystem is assembled layer by layer.
func CopyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to walk source tree"), "path", path)
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to relativize path"), "path", path)
		}
		target := filepath.Join(dst, rel)

		if d.IsDir() {
			if skipDir(d.Name()) && path != src {
				return filepath.SkipDir
			}
			return os.MkdirAll(target, 0o750)
		}

		info, err := d.Info()
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to stat source file"), "path", path)
		}
		return copyFile(path, target, info.Mode().Perm())
	})
}

func copyFile(src, dst string, perm iofs.FileMode) error {
	in, err := os.Open(src) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to open source file"), "path", src)
	}
	defer in.Close() //nolint:errcheck // Best effort close in defer

	if err := os.MkdirAll(filepath.Dir(dst), 0o750); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create target directory"), "path", dst)
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create target file"), "path", dst)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return zerr.With(zerr.Wrap(err, "failed to copy file"), "path", dst)
	}
	return out.Close()
}
