package ports

import (
	"context"

	"github.com/rockdove/forge/internal/core/domain"
)

// BaseResolver resolves a pinned base runtime reference to a concrete runtime.
//
// Implementations must refuse floating references; only exact pins are
// resolvable. An unknown or unavailable pin is reported as
// domain.ErrBaseUnavailable.
//
//go:generate go run go.uber.org/mock/mockgen -source=base_resolver.go -destination=mocks/mock_base_resolver.go -package=mocks
type BaseResolver interface {
	// Resolve maps the pin to the runtime backing it on this machine.
	Resolve(ctx context.Context, pin domain.BasePin) (domain.BaseRuntime, error)
}
