// Package app holds the explicitly constructed application context. Every
// component receives its dependencies from here; nothing in the codebase
// reaches for process-wide singletons.
package app

import (
	"context"
	"log/slog"

	"github.com/walletd/walletcore/pkg/config"
	"github.com/walletd/walletcore/pkg/docstore"
	"github.com/walletd/walletcore/pkg/eventbus"
	"github.com/walletd/walletcore/pkg/netmon"
	"github.com/walletd/walletcore/pkg/service/account"
	"github.com/walletd/walletcore/pkg/service/auth"
	"github.com/walletd/walletcore/pkg/service/identity"
	"github.com/walletd/walletcore/pkg/service/notification"
	"github.com/walletd/walletcore/pkg/service/transfer"
)

// App wires the store, event bus, and services together and owns their
// lifecycle.
type App struct {
	Cfg    *config.App
	Logger *slog.Logger
	Store  docstore.Store
	Bus    eventbus.EventBus

	Auth          *auth.Service
	Accounts      *account.Service
	Identity      *identity.Resolver
	Notifications *notification.Service
	Transfers     *transfer.Engine
	Monitor       *netmon.Monitor

	cancel  context.CancelFunc
	closeFn func() error
}

// New constructs the application context over the given store. closeFn, if
// non-nil, is invoked on Close to release the store's resources.
func New(cfg *config.App, logger *slog.Logger, store docstore.Store, closeFn func() error) *App {
	bus := eventbus.NewMemoryBus()
	notifications := notification.New(store, logger)
	return &App{
		Cfg:           cfg,
		Logger:        logger,
		Store:         store,
		Bus:           bus,
		Auth:          auth.New(store, cfg.Jwt, logger),
		Accounts:      account.New(store, logger),
		Identity:      identity.NewResolver(store, logger),
		Notifications: notifications,
		Transfers:     transfer.New(store, bus, notifications, logger),
		Monitor:       netmon.New(store, bus, cfg.Probe.Interval, cfg.Probe.Timeout, logger),
		closeFn:       closeFn,
	}
}

// Start launches background work (the reachability probe).
func (a *App) Start(ctx context.Context) {
	ctx, a.cancel = context.WithCancel(ctx)
	a.Monitor.Start(ctx)
}

// Close stops background work and releases store resources.
func (a *App) Close() error {
	if a.cancel != nil {
		a.cancel()
	}
	if a.closeFn != nil {
		return a.closeFn()
	}
	return nil
}
