// Package netmon probes account-store reachability on an interval and
// publishes status transitions on the event bus. The probe loop is the only
// cancellable asynchronous unit in the system; in-flight ledger writes are
// never cancelled once submitted.
package netmon

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/walletd/walletcore/pkg/docstore"
	"github.com/walletd/walletcore/pkg/domain/events"
	"github.com/walletd/walletcore/pkg/eventbus"
)

// Monitor periodically pings the store.
type Monitor struct {
	store    docstore.Store
	bus      eventbus.EventBus
	interval time.Duration
	timeout  time.Duration
	logger   *slog.Logger

	mu        sync.RWMutex
	reachable bool
	started   bool
}

// New creates a monitor. The store is assumed reachable until the first
// probe says otherwise.
func New(
	store docstore.Store,
	bus eventbus.EventBus,
	interval, timeout time.Duration,
	logger *slog.Logger,
) *Monitor {
	return &Monitor{
		store:     store,
		bus:       bus,
		interval:  interval,
		timeout:   timeout,
		logger:    logger,
		reachable: true,
	}
}

// Start launches the probe loop. It returns immediately; the loop runs until
// ctx is cancelled. Calling Start twice is a no-op.
func (m *Monitor) Start(ctx context.Context) {
	m.mu.Lock()
	if m.started {
		m.mu.Unlock()
		return
	}
	m.started = true
	m.mu.Unlock()

	go m.loop(ctx)
}

// Reachable reports the last probed status.
func (m *Monitor) Reachable() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.reachable
}

func (m *Monitor) loop(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			m.logger.Debug("reachability probe stopped")
			return
		case <-ticker.C:
			m.probe(ctx)
		}
	}
}

func (m *Monitor) probe(ctx context.Context) {
	probeCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	err := m.store.Ping(probeCtx)
	reachable := err == nil

	m.mu.Lock()
	changed := reachable != m.reachable
	m.reachable = reachable
	m.mu.Unlock()

	if !changed {
		return
	}
	if reachable {
		m.logger.Info("account store reachable again")
	} else {
		m.logger.Warn("account store unreachable", "error", err)
	}
	if err := m.bus.Publish(ctx, events.StoreStatus{Reachable: reachable}); err != nil {
		m.logger.Warn("publish store status failed", "error", err)
	}
}
