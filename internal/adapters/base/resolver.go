// Package base resolves pinned base runtime references against the host.
package base

import (
	"context"
	"os/exec"
	"strings"

	"github.com/rockdove/forge/internal/core/domain"
	"github.com/rockdove/forge/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.BaseResolver = (*Resolver)(nil)

// Resolver implements ports.BaseResolver by locating a host interpreter whose
// reported version satisfies the exact pin.
type Resolver struct {
	// LookPath locates a candidate executable. Defaults to exec.LookPath.
	LookPath func(name string) (string, error)

	// Version reports the version string of an interpreter, e.g. "3.13.2".
	// Defaults to invoking the interpreter with --version.
	Version func(ctx context.Context, path string) (string, error)
}

// NewResolver creates a Resolver with the default probing behavior.
func NewResolver() *Resolver {
	return &Resolver{
		LookPath: exec.LookPath,
		Version:  probeVersion,
	}
}

// Resolve maps the pin to the interpreter backing it on this machine. Every
// candidate is version-checked against the pin; a near-miss (right name,
// wrong version) is not acceptable.
func (r *Resolver) Resolve(ctx context.Context, pin domain.BasePin) (domain.BaseRuntime, error) {
	if err := ctx.Err(); err != nil {
		return domain.BaseRuntime{}, err
	}

	for _, name := range candidateNames(pin) {
		path, err := r.LookPath(name)
		if err != nil {
			continue
		}
		version, err := r.Version(ctx, path)
		if err != nil {
			continue
		}
		if versionSatisfies(version, pin.Version) {
			return domain.BaseRuntime{Pin: pin, Interpreter: path}, nil
		}
	}

	return domain.BaseRuntime{}, zerr.With(domain.ErrBaseUnavailable, "pin", pin.String())
}

// candidateNames lists executable names from most to least specific, e.g.
// python3.13.2, python3.13, python3, python.
func candidateNames(pin domain.BasePin) []string {
	names := []string{pin.Name + pin.Version}
	parts := strings.Split(pin.Version, ".")
	for i := len(parts) - 1; i > 0; i-- {
		names = append(names, pin.Name+strings.Join(parts[:i], "."))
	}
	return append(names, pin.Name)
}

// versionSatisfies reports whether the actual version matches the pin exactly,
// component by component. A pin of "3.13" accepts "3.13.2" but never "3.1".
func versionSatisfies(actual, pinned string) bool {
	want := strings.Split(pinned, ".")
	got := strings.Split(actual, ".")
	if len(got) < len(want) {
		return false
	}
	for i, w := range want {
		if got[i] != w {
			return false
		}
	}
	return true
}

// probeVersion runs "<path> --version" and extracts the first dotted-numeric
// token, covering outputs like "Python 3.13.2" and "v22.14.0".
func probeVersion(ctx context.Context, path string) (string, error) {
	out, err := exec.CommandContext(ctx, path, "--version").CombinedOutput() //nolint:gosec // Path located via LookPath
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to probe interpreter version"), "path", path)
	}
	for _, field := range strings.Fields(string(out)) {
		token := strings.TrimPrefix(field, "v")
		if isVersionToken(token) {
			return token, nil
		}
	}
	return "", zerr.With(zerr.New("no version in interpreter output"), "output", strings.TrimSpace(string(out)))
}

func isVersionToken(s string) bool {
	if !strings.Contains(s, ".") {
		return false
	}
	for part := range strings.SplitSeq(s, ".") {
		if part == "" {
			return false
		}
		for _, c := range part {
			if c < '0' || c > '9' {
				return false
			}
		}
	}
	return true
}
