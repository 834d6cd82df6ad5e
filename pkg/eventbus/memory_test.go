package eventbus_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walletd/walletcore/pkg/currency"
	"github.com/walletd/walletcore/pkg/domain"
	"github.com/walletd/walletcore/pkg/domain/events"
	"github.com/walletd/walletcore/pkg/eventbus"
)

func TestPublishDeliversToSubscribers(t *testing.T) {
	bus := eventbus.NewMemoryBus()
	var firstGot, secondGot []domain.Event
	bus.Subscribe(events.EventDepositCompleted, func(_ context.Context, e domain.Event) {
		firstGot = append(firstGot, e)
	})
	bus.Subscribe(events.EventDepositCompleted, func(_ context.Context, e domain.Event) {
		secondGot = append(secondGot, e)
	})

	entry := domain.NewTransaction(domain.TypeDeposit, 10, currency.TL, "", "user-1", "")
	require.NoError(t, bus.Publish(context.Background(), events.DepositCompleted{Entry: entry}))

	require.Len(t, firstGot, 1)
	require.Len(t, secondGot, 1)
	assert.Equal(t, entry.ID, firstGot[0].(events.DepositCompleted).Entry.ID)
}

func TestPublishSkipsOtherEventTypes(t *testing.T) {
	bus := eventbus.NewMemoryBus()
	called := false
	bus.Subscribe(events.EventWithdrawCompleted, func(context.Context, domain.Event) {
		called = true
	})

	entry := domain.NewTransaction(domain.TypeDeposit, 10, currency.TL, "", "user-1", "")
	require.NoError(t, bus.Publish(context.Background(), events.DepositCompleted{Entry: entry}))

	assert.False(t, called)
}

func TestPublishWithNoSubscribers(t *testing.T) {
	bus := eventbus.NewMemoryBus()
	assert.NoError(t, bus.Publish(context.Background(), events.StoreStatus{Reachable: false}))
}
