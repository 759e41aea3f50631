// Package main is the entry point for the rockdove weather gateway.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rockdove/forge/internal/adapters/logger"
	"github.com/rockdove/forge/internal/aprs"
	"github.com/rockdove/forge/internal/gateway"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log := logger.New()
	log.Info("rockdove starting")

	cfg, err := gateway.LoadConfig()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "%+v\n", err)
		return 1
	}

	client := aprs.NewClient(cfg.Server, cfg.Port, cfg.Callsign, cfg.Password)
	g := gateway.New(cfg, client, log)

	if err := g.Run(ctx); err != nil {
		log.Error(err)
		return 1
	}

	log.Info("rockdove completed successfully")
	return 0
}
