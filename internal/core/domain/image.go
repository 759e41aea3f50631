package domain

import (
	"sort"
	"strings"
	"time"

	"github.com/opencontainers/go-digest"
)

// LayerKind identifies what a layer contains.
type LayerKind string

const (
	// LayerDependencies is the installed-dependency layer.
	LayerDependencies LayerKind = "dependencies"
	// LayerSource is the staged application source layer.
	LayerSource LayerKind = "source"
)

// Layer is one immutable filesystem layer of an image, addressed by digest.
type Layer struct {
	Digest digest.Digest `json:"digest"`
	Kind   LayerKind     `json:"kind"`
}

// ImageConfig is the runtime metadata recorded in an image: working directory,
// environment bindings, and the default command. It is metadata only; nothing
// in it executes at build time.
type ImageConfig struct {
	WorkDir string            `json:"workdir"`
	Env     map[string]string `json:"env,omitempty"`
	Cmd     []string          `json:"cmd"`
}

// Image is an immutable, layered filesystem snapshot plus metadata. A build
// produces a new image; existing images are never mutated in place. Its only
// relationship to other images is the linear derived-from-base ancestry link.
type Image struct {
	ID        digest.Digest `json:"id"`
	Base      BasePin       `json:"base"`
	Layers    []Layer       `json:"layers"`
	Config    ImageConfig   `json:"config"`
	CreatedAt time.Time     `json:"created_at"`
}

// ComputeID derives the image identity from everything that defines its
// content: the base pin, the ordered layer digests, and the config. Creation
// time is deliberately excluded so identical builds yield identical IDs.
func (i *Image) ComputeID() digest.Digest {
	var b strings.Builder
	b.WriteString(i.Base.String())
	b.WriteByte(0)
	for _, l := range i.Layers {
		b.WriteString(string(l.Kind))
		b.WriteByte(':')
		b.WriteString(string(l.Digest))
		b.WriteByte(0)
	}
	b.WriteString(i.Config.WorkDir)
	b.WriteByte(0)

	keys := make([]string, 0, len(i.Config.Env))
	for k := range i.Config.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(i.Config.Env[k])
		b.WriteByte(0)
	}
	b.WriteByte(0)

	for _, arg := range i.Config.Cmd {
		b.WriteString(arg)
		b.WriteByte(0)
	}

	return digest.FromString(b.String())
}
