// Package eventbus provides publish/subscribe wiring for domain events.
package eventbus

import (
	"context"

	"github.com/walletd/walletcore/pkg/domain"
)

// EventBus defines the contract for publishing and subscribing to domain
// events.
type EventBus interface {
	Publish(ctx context.Context, event domain.Event) error
	Subscribe(eventType string, handler func(context.Context, domain.Event))
}
