package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/walletd/walletcore/pkg/currency"
)

// TransactionType classifies a ledger entry.
type TransactionType string

const (
	TypeDeposit  TransactionType = "deposit"
	TypeWithdraw TransactionType = "withdraw"
	TypeSend     TransactionType = "send"
	TypeReceive  TransactionType = "receive"
)

// TransactionStatus is the lifecycle state of a ledger entry. The engine only
// ever writes StatusCompleted; Pending and Failed exist for wire compatibility
// and must not be dropped from the enum.
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "pending"
	StatusCompleted TransactionStatus = "completed"
	StatusFailed    TransactionStatus = "failed"
)

// Transaction is an immutable ledger entry for one balance-affecting event.
// The JSON layout is the persisted wire form: date is unix seconds and the
// sender/receiver references are optional.
type Transaction struct {
	ID         string            `json:"id"`
	Type       TransactionType   `json:"type"`
	Amount     float64           `json:"amount"`
	Currency   currency.Code     `json:"currency"`
	Date       int64             `json:"date"`
	SenderID   string            `json:"senderID,omitempty"`
	ReceiverID string            `json:"receiverID,omitempty"`
	Status     TransactionStatus `json:"status"`
	Message    string            `json:"message,omitempty"`
}

// NewTransaction builds a completed ledger entry with a fresh opaque id.
func NewTransaction(
	t TransactionType,
	amount float64,
	code currency.Code,
	senderID, receiverID, message string,
) Transaction {
	return Transaction{
		ID:         uuid.NewString(),
		Type:       t,
		Amount:     amount,
		Currency:   code,
		Date:       time.Now().Unix(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Status:     StatusCompleted,
		Message:    message,
	}
}

// Time returns the entry date as a time.Time.
func (t Transaction) Time() time.Time { return time.Unix(t.Date, 0) }

// Direction returns +1 for entries that credit the owning account
// (deposit, receive) and -1 for entries that debit it (withdraw, send).
func (t Transaction) Direction() float64 {
	switch t.Type {
	case TypeDeposit, TypeReceive:
		return 1
	case TypeWithdraw, TypeSend:
		return -1
	}
	return 0
}

// ValidAmount reports whether amount is positive and has at most two decimal
// places, the precision both wallet currencies carry.
func ValidAmount(amount float64) bool {
	if amount <= 0 {
		return false
	}
	cents := amount * 100
	return math.Abs(cents-math.Round(cents)) < 1e-6
}
