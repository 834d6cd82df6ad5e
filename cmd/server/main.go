package main

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/walletd/walletcore/infra/initializer"
	"github.com/walletd/walletcore/pkg/config"
	"github.com/walletd/walletcore/webapi"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	a, err := initializer.Init(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer a.Close() //nolint:errcheck

	a.Start(context.Background())

	api := webapi.NewApp(a)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	a.Logger.Info("starting server", "env", cfg.Env, "address", addr)
	return api.Listen(addr)
}
