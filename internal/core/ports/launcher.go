package ports

import (
	"context"

	"github.com/rockdove/forge/internal/core/domain"
)

// Launcher runs a built image.
//
// Running an image assembles its layers into a root filesystem, fixes the
// working directory, binds the recorded environment, and executes the default
// command. An override argument vector bypasses the default entirely.
//
//go:generate go run go.uber.org/mock/mockgen -source=launcher.go -destination=mocks/mock_launcher.go -package=mocks
type Launcher interface {
	// Launch runs the image and returns the process exit code.
	Launch(ctx context.Context, img *domain.Image, override []string) (int, error)
}
