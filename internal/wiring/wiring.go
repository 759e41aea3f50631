// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/rockdove/forge/internal/adapters/base"
	_ "github.com/rockdove/forge/internal/adapters/cas"
	_ "github.com/rockdove/forge/internal/adapters/fs"
	_ "github.com/rockdove/forge/internal/adapters/logger"
	_ "github.com/rockdove/forge/internal/adapters/manifest"
	_ "github.com/rockdove/forge/internal/adapters/pip"
	_ "github.com/rockdove/forge/internal/adapters/recipe"
	_ "github.com/rockdove/forge/internal/adapters/shell"
	_ "github.com/rockdove/forge/internal/adapters/telemetry/progrock"
	// Register app and engine nodes.
	_ "github.com/rockdove/forge/internal/app"
	_ "github.com/rockdove/forge/internal/engine/pipeline"
)
