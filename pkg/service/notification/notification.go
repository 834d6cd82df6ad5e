// Package notification manages the per-account notifications sub-collection.
// Emission after a transfer is fire-and-forget: failures are logged and
// swallowed, never surfaced to the sender and never rolled into the transfer
// outcome.
package notification

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"

	"github.com/walletd/walletcore/pkg/docstore"
	"github.com/walletd/walletcore/pkg/domain"
)

// Service emits and manages notifications.
type Service struct {
	store  docstore.Store
	logger *slog.Logger
}

// New creates the notification service.
func New(store docstore.Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Notify writes one unread notification for the recipient. Best-effort:
// any error is logged and dropped.
func (s *Service) Notify(ctx context.Context, recipientID, title, message, senderName string) {
	n := domain.NewNotification(title, message, senderName)
	fields, err := notificationFields(n)
	if err != nil {
		s.logger.Error("encode notification failed", "error", err)
		return
	}
	if err := s.store.Set(ctx, docstore.Notifications(recipientID), n.ID, fields); err != nil {
		s.logger.Error("create notification failed", "recipient_id", recipientID, "error", err)
	}
}

// List returns the user's notifications ordered by date descending.
func (s *Service) List(ctx context.Context, userID string) ([]domain.Notification, error) {
	docs, err := s.store.List(ctx, docstore.Notifications(userID))
	if err != nil {
		return nil, domain.StoreFailure(err)
	}
	out := make([]domain.Notification, 0, len(docs))
	for _, doc := range docs {
		n, err := decodeNotification(doc)
		if err != nil {
			continue
		}
		out = append(out, n)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

// UnreadCount returns how many notifications are unread.
func (s *Service) UnreadCount(ctx context.Context, userID string) (int, error) {
	docs, err := s.store.Query(ctx, docstore.Notifications(userID), "isRead", false)
	if err != nil {
		return 0, domain.StoreFailure(err)
	}
	return len(docs), nil
}

// MarkAllRead flags every unread notification in one batch.
func (s *Service) MarkAllRead(ctx context.Context, userID string) error {
	collection := docstore.Notifications(userID)
	docs, err := s.store.Query(ctx, collection, "isRead", false)
	if err != nil {
		return domain.StoreFailure(err)
	}
	if len(docs) == 0 {
		return nil
	}
	writes := make([]docstore.Write, 0, len(docs))
	for _, doc := range docs {
		writes = append(writes, docstore.Write{
			Collection: collection,
			ID:         doc.ID,
			Op:         docstore.OpUpdate,
			Updates:    docstore.FieldUpdates{"isRead": true},
		})
	}
	if err := s.store.CommitBatch(ctx, writes); err != nil {
		return domain.StoreFailure(err)
	}
	return nil
}

// Delete removes one notification.
func (s *Service) Delete(ctx context.Context, userID, notificationID string) error {
	if err := s.store.Delete(ctx, docstore.Notifications(userID), notificationID); err != nil {
		return domain.StoreFailure(err)
	}
	return nil
}

// DeleteAll removes every notification of the user in one batch.
func (s *Service) DeleteAll(ctx context.Context, userID string) error {
	collection := docstore.Notifications(userID)
	docs, err := s.store.List(ctx, collection)
	if err != nil {
		return domain.StoreFailure(err)
	}
	if len(docs) == 0 {
		return nil
	}
	writes := make([]docstore.Write, 0, len(docs))
	for _, doc := range docs {
		writes = append(writes, docstore.Write{
			Collection: collection,
			ID:         doc.ID,
			Op:         docstore.OpDelete,
		})
	}
	if err := s.store.CommitBatch(ctx, writes); err != nil {
		return domain.StoreFailure(err)
	}
	return nil
}

func notificationFields(n domain.Notification) (map[string]any, error) {
	raw, err := json.Marshal(n)
	if err != nil {
		return nil, err
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

func decodeNotification(doc docstore.Document) (domain.Notification, error) {
	raw, err := json.Marshal(doc.Fields)
	if err != nil {
		return domain.Notification{}, err
	}
	var n domain.Notification
	if err := json.Unmarshal(raw, &n); err != nil {
		return domain.Notification{}, err
	}
	n.ID = doc.ID
	return n, nil
}
