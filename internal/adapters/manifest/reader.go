// Package manifest provides the dependency manifest reader.
package manifest

import (
	"bufio"
	"bytes"
	"os"
	"strings"

	"github.com/rockdove/forge/internal/core/domain"
	"github.com/rockdove/forge/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ManifestReader = (*Reader)(nil)

// constraint operators in match order; two-character operators first.
var operators = []string{"==", ">=", "<=", "!=", "~=", ">", "<"}

// Reader implements ports.ManifestReader for requirements-style manifests:
// one "name<operator>version" declaration per line, with "#" comments and
// blank lines ignored.
type Reader struct {
	hasher ports.TreeHasher
}

// NewReader creates a Reader using the given hasher for content hashing.
func NewReader(hasher ports.TreeHasher) *Reader {
	return &Reader{hasher: hasher}
}

// Read parses the manifest at the given path.
func (r *Reader) Read(path string) (*domain.Manifest, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrManifestMissing, err.Error()), "path", path)
	}

	contentHash, err := r.hasher.HashFile(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrManifestMissing, err.Error()), "path", path)
	}

	m := &domain.Manifest{
		Path:        path,
		ContentHash: contentHash,
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if i := strings.Index(line, "#"); i >= 0 {
			line = strings.TrimSpace(line[:i])
		}

		req, err := parseRequirement(line)
		if err != nil {
			return nil, zerr.With(zerr.With(err, "path", path), "line", lineNo)
		}
		m.Requirements = append(m.Requirements, req)
	}
	if err := scanner.Err(); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrManifestMissing, err.Error()), "path", path)
	}

	return m, nil
}

func parseRequirement(line string) (domain.Requirement, error) {
	for _, op := range operators {
		name, version, ok := strings.Cut(line, op)
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		version = strings.TrimSpace(version)
		if name == "" || version == "" {
			return domain.Requirement{}, zerr.With(domain.ErrManifestInvalid, "entry", line)
		}
		return domain.Requirement{Name: name, Constraint: op + version}, nil
	}

	// A bare package name is a valid, unconstrained declaration.
	if strings.ContainsAny(line, " \t") {
		return domain.Requirement{}, zerr.With(domain.ErrManifestInvalid, "entry", line)
	}
	return domain.Requirement{Name: line}, nil
}
