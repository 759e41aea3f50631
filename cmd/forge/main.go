// Package main is the entry point for the forge image builder.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"github.com/rockdove/forge/cmd/forge/commands"
	"github.com/rockdove/forge/internal/adapters/recipe"
	"github.com/rockdove/forge/internal/app"
	_ "github.com/rockdove/forge/internal/wiring"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, _, err := graft.ExecuteFor[*app.Components](ctx)
	if err != nil {
		// Logger is not available if initialization failed; write directly.
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		return 1
	}
	defer components.Telemetry.Close() //nolint:errcheck // Best effort flush on exit

	cli := commands.New(components.App)
	cli.SetConfigHook(func(name string) {
		if loader, ok := components.Recipes.(*recipe.Loader); ok {
			loader.Filename = name
		}
	})

	if err := cli.Execute(ctx); err != nil {
		var exitErr *commands.ExitCodeError
		if errors.As(err, &exitErr) {
			return exitErr.Code
		}
		// zerr prints the full error report with metadata when using %+v.
		_, _ = fmt.Fprintf(os.Stderr, "%+v\n", err)
		return 1
	}
	return 0
}
