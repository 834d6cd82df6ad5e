package domain

import (
	"time"

	"github.com/google/uuid"
)

// Notification is a recipient-facing message stored in the per-account
// notifications sub-collection. Only IsRead is ever mutated after creation.
type Notification struct {
	ID         string `json:"-"`
	Title      string `json:"title"`
	Message    string `json:"message"`
	Date       int64  `json:"date"`
	IsRead     bool   `json:"isRead"`
	SenderName string `json:"senderName,omitempty"`
}

// NewNotification builds an unread notification with a fresh id.
func NewNotification(title, message, senderName string) Notification {
	return Notification{
		ID:         uuid.NewString(),
		Title:      title,
		Message:    message,
		Date:       time.Now().Unix(),
		IsRead:     false,
		SenderName: senderName,
	}
}
