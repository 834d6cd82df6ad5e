// Package transfer implements the balance-mutation engine: funds-checked
// transfers between two accounts committed as one atomic two-document batch,
// plus the single-document deposit and withdraw variants.
//
// The engine preserves the source's concurrency posture: the funds check
// reads the stored balance and the batch writes the computed one with no
// version token in between, so two concurrent debits can both pass the check
// against a stale read. See the race note in this package's tests.
package transfer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/walletd/walletcore/pkg/currency"
	"github.com/walletd/walletcore/pkg/docstore"
	"github.com/walletd/walletcore/pkg/domain"
	"github.com/walletd/walletcore/pkg/domain/events"
	"github.com/walletd/walletcore/pkg/eventbus"
	accountsvc "github.com/walletd/walletcore/pkg/service/account"
)

// Notifier delivers the best-effort recipient notification after a transfer.
type Notifier interface {
	Notify(ctx context.Context, recipientID, title, message, senderName string)
}

// Engine validates and commits balance mutations.
type Engine struct {
	store    docstore.Store
	bus      eventbus.EventBus
	notifier Notifier
	logger   *slog.Logger

	mu    sync.RWMutex
	cache map[string]float64 // userID|currency -> last committed balance
}

// New creates the transfer engine.
func New(store docstore.Store, bus eventbus.EventBus, notifier Notifier, logger *slog.Logger) *Engine {
	return &Engine{
		store:    store,
		bus:      bus,
		notifier: notifier,
		logger:   logger,
		cache:    make(map[string]float64),
	}
}

// Transfer moves amount from sender to recipient in the given currency and
// records the mirrored send/receive ledger entries in the same batch commit.
// Returns the sender-side entry on success.
func (e *Engine) Transfer(
	ctx context.Context,
	senderID, recipientID string,
	amount float64,
	code currency.Code,
	message string,
) (*domain.Transaction, error) {
	if !domain.ValidAmount(amount) {
		return nil, domain.ErrInvalidAmount
	}

	senderDoc, err := e.getUser(ctx, senderID)
	if err != nil {
		return nil, err
	}
	senderBalance, err := accountsvc.BalanceField(senderDoc.Fields, code)
	if err != nil {
		return nil, err
	}
	if amount > senderBalance {
		return nil, domain.ErrInsufficientFunds
	}

	recipientDoc, err := e.getUser(ctx, recipientID)
	if err != nil {
		return nil, err
	}
	recipientBalance, err := accountsvc.BalanceField(recipientDoc.Fields, code)
	if err != nil {
		return nil, err
	}

	send := domain.NewTransaction(domain.TypeSend, amount, code, senderID, recipientID, message)
	receive := domain.NewTransaction(domain.TypeReceive, amount, code, senderID, recipientID, message)
	receive.Date = send.Date // both entries share the commit timestamp

	sendFields, err := txFields(send)
	if err != nil {
		return nil, domain.StoreFailure(err)
	}
	receiveFields, err := txFields(receive)
	if err != nil {
		return nil, domain.StoreFailure(err)
	}

	balancePath := "bankAccount." + code.BalanceField()
	writes := []docstore.Write{
		{
			Collection: docstore.Users,
			ID:         senderID,
			Op:         docstore.OpUpdate,
			Updates: docstore.FieldUpdates{
				balancePath:                senderBalance - amount,
				"bankAccount.transactions": docstore.ArrayUnion{Values: []any{sendFields}},
			},
		},
		{
			Collection: docstore.Users,
			ID:         recipientID,
			Op:         docstore.OpUpdate,
			Updates: docstore.FieldUpdates{
				balancePath:                recipientBalance + amount,
				"bankAccount.transactions": docstore.ArrayUnion{Values: []any{receiveFields}},
			},
		},
	}
	if err := e.store.CommitBatch(ctx, writes); err != nil {
		e.logger.Error("transfer batch commit failed",
			"sender_id", senderID, "recipient_id", recipientID, "error", err)
		return nil, domain.StoreFailure(err)
	}

	e.setCached(senderID, code, senderBalance-amount)
	e.setCached(recipientID, code, recipientBalance+amount)

	if err := e.bus.Publish(ctx, events.TransferCompleted{Send: send, Receive: receive}); err != nil {
		e.logger.Warn("publish transfer event failed", "error", err)
	}

	senderName, _ := senderDoc.Fields["fullName"].(string)
	e.notifier.Notify(ctx, recipientID,
		"Money Received",
		fmt.Sprintf("You have received %s%.2f", code.Symbol(), amount),
		senderName,
	)

	return &send, nil
}

// Deposit credits the user's balance and appends one deposit entry.
func (e *Engine) Deposit(
	ctx context.Context,
	userID string,
	amount float64,
	code currency.Code,
) (*domain.Transaction, error) {
	if !domain.ValidAmount(amount) {
		return nil, domain.ErrInvalidAmount
	}
	doc, err := e.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	balance, err := accountsvc.BalanceField(doc.Fields, code)
	if err != nil {
		return nil, err
	}

	tx := domain.NewTransaction(domain.TypeDeposit, amount, code, "", userID, "")
	if err := e.commitSingle(ctx, userID, code, balance+amount, tx); err != nil {
		return nil, err
	}
	e.setCached(userID, code, balance+amount)
	if err := e.bus.Publish(ctx, events.DepositCompleted{Entry: tx}); err != nil {
		e.logger.Warn("publish deposit event failed", "error", err)
	}
	return &tx, nil
}

// Withdraw debits the user's balance after a funds check and appends one
// withdraw entry.
func (e *Engine) Withdraw(
	ctx context.Context,
	userID string,
	amount float64,
	code currency.Code,
) (*domain.Transaction, error) {
	if !domain.ValidAmount(amount) {
		return nil, domain.ErrInvalidAmount
	}
	doc, err := e.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	balance, err := accountsvc.BalanceField(doc.Fields, code)
	if err != nil {
		return nil, err
	}
	if amount > balance {
		return nil, domain.ErrInsufficientFunds
	}

	tx := domain.NewTransaction(domain.TypeWithdraw, amount, code, userID, "", "")
	if err := e.commitSingle(ctx, userID, code, balance-amount, tx); err != nil {
		return nil, err
	}
	e.setCached(userID, code, balance-amount)
	if err := e.bus.Publish(ctx, events.WithdrawCompleted{Entry: tx}); err != nil {
		e.logger.Warn("publish withdraw event failed", "error", err)
	}
	return &tx, nil
}

// CachedBalance returns the last balance this engine committed for the user
// and currency, if any. Display-only; the store remains authoritative.
func (e *Engine) CachedBalance(userID string, code currency.Code) (float64, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	v, ok := e.cache[cacheKey(userID, code)]
	return v, ok
}

func (e *Engine) commitSingle(
	ctx context.Context,
	userID string,
	code currency.Code,
	newBalance float64,
	tx domain.Transaction,
) error {
	fields, err := txFields(tx)
	if err != nil {
		return domain.StoreFailure(err)
	}
	err = e.store.Update(ctx, docstore.Users, userID, docstore.FieldUpdates{
		"bankAccount." + code.BalanceField(): newBalance,
		"bankAccount.transactions":           docstore.ArrayUnion{Values: []any{fields}},
	})
	if err != nil {
		e.logger.Error("ledger update failed", "user_id", userID, "type", tx.Type, "error", err)
		return domain.StoreFailure(err)
	}
	return nil
}

func (e *Engine) getUser(ctx context.Context, userID string) (*docstore.Document, error) {
	doc, err := e.store.Get(ctx, docstore.Users, userID)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, domain.StoreFailure(err)
	}
	return doc, nil
}

func (e *Engine) setCached(userID string, code currency.Code, balance float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cache[cacheKey(userID, code)] = balance
}

func cacheKey(userID string, code currency.Code) string {
	return userID + "|" + code.String()
}

func txFields(tx domain.Transaction) (map[string]any, error) {
	raw, err := json.Marshal(tx)
	if err != nil {
		return nil, err
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}
