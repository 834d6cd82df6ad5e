package notification_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walletd/walletcore/pkg/docstore"
	"github.com/walletd/walletcore/pkg/service/notification"
)

const userID = "user-1"

func seed(t *testing.T, store *docstore.MemoryStore, id string, date int64, isRead bool) {
	t.Helper()
	err := store.Set(context.Background(), docstore.Notifications(userID), id, map[string]any{
		"title":      "Money Received",
		"message":    "You have received ₺10.00",
		"date":       date,
		"isRead":     isRead,
		"senderName": "Ada Lovelace",
	})
	require.NoError(t, err)
}

func TestNotifyCreatesUnreadNotification(t *testing.T) {
	store := docstore.NewMemoryStore()
	svc := notification.New(store, slog.Default())

	svc.Notify(context.Background(), userID, "Money Received", "You have received ₺10.00", "Ada Lovelace")

	list, err := svc.List(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Money Received", list[0].Title)
	assert.Equal(t, "You have received ₺10.00", list[0].Message)
	assert.Equal(t, "Ada Lovelace", list[0].SenderName)
	assert.False(t, list[0].IsRead)
	assert.NotEmpty(t, list[0].ID)
}

func TestListOrdersByDateDescending(t *testing.T) {
	store := docstore.NewMemoryStore()
	svc := notification.New(store, slog.Default())
	seed(t, store, "n-old", 1000, false)
	seed(t, store, "n-new", 3000, false)
	seed(t, store, "n-mid", 2000, true)

	list, err := svc.List(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "n-new", list[0].ID)
	assert.Equal(t, "n-mid", list[1].ID)
	assert.Equal(t, "n-old", list[2].ID)
}

func TestUnreadCountAndMarkAllRead(t *testing.T) {
	store := docstore.NewMemoryStore()
	svc := notification.New(store, slog.Default())
	seed(t, store, "n-1", 1000, false)
	seed(t, store, "n-2", 2000, false)
	seed(t, store, "n-3", 3000, true)

	count, err := svc.UnreadCount(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	require.NoError(t, svc.MarkAllRead(context.Background(), userID))

	count, err = svc.UnreadCount(context.Background(), userID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestMarkAllReadWithNothingUnread(t *testing.T) {
	store := docstore.NewMemoryStore()
	svc := notification.New(store, slog.Default())

	assert.NoError(t, svc.MarkAllRead(context.Background(), userID))
}

func TestDeleteOne(t *testing.T) {
	store := docstore.NewMemoryStore()
	svc := notification.New(store, slog.Default())
	seed(t, store, "n-1", 1000, false)
	seed(t, store, "n-2", 2000, false)

	require.NoError(t, svc.Delete(context.Background(), userID, "n-1"))

	list, err := svc.List(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "n-2", list[0].ID)
}

func TestDeleteAll(t *testing.T) {
	store := docstore.NewMemoryStore()
	svc := notification.New(store, slog.Default())
	seed(t, store, "n-1", 1000, false)
	seed(t, store, "n-2", 2000, true)

	require.NoError(t, svc.DeleteAll(context.Background(), userID))

	list, err := svc.List(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestNotificationsAreScopedPerUser(t *testing.T) {
	store := docstore.NewMemoryStore()
	svc := notification.New(store, slog.Default())
	seed(t, store, "n-1", 1000, false)

	other, err := svc.List(context.Background(), "user-2")
	require.NoError(t, err)
	assert.Empty(t, other)
}
