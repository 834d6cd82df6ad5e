// Package account provides read and profile operations over the user's
// account document: dashboard balances, transaction history, transaction
// detail with its replayed post-transaction balance, and profile photo
// updates.
package account

import (
	"context"
	"errors"
	"log/slog"

	"github.com/walletd/walletcore/pkg/currency"
	"github.com/walletd/walletcore/pkg/docstore"
	"github.com/walletd/walletcore/pkg/domain"
	"github.com/walletd/walletcore/pkg/ledger"
)

// Service reads and mutates a single user's account document.
type Service struct {
	store  docstore.Store
	logger *slog.Logger
}

// New creates the account service.
func New(store docstore.Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Get returns the full account document for the user.
func (s *Service) Get(ctx context.Context, userID string) (*domain.Account, error) {
	return Load(ctx, s.store, userID)
}

// Balances returns the stored TL and USD balances.
func (s *Service) Balances(ctx context.Context, userID string) (balanceTL, balanceUSD float64, err error) {
	acct, err := Load(ctx, s.store, userID)
	if err != nil {
		return 0, 0, err
	}
	return acct.BankAccount.BalanceTL, acct.BankAccount.BalanceUSD, nil
}

// Transactions returns the user's ledger ordered by date descending.
func (s *Service) Transactions(ctx context.Context, userID string) ([]domain.Transaction, error) {
	acct, err := Load(ctx, s.store, userID)
	if err != nil {
		return nil, err
	}
	return acct.SortedTransactions(), nil
}

// Transaction returns one ledger entry together with the balance the replay
// yields up to and including it. The replayed figure is display-only; the
// stored balance fields remain authoritative.
func (s *Service) Transaction(ctx context.Context, userID, txID string) (*domain.Transaction, float64, error) {
	acct, err := Load(ctx, s.store, userID)
	if err != nil {
		return nil, 0, err
	}
	for _, tx := range acct.BankAccount.Transactions {
		if tx.ID == txID {
			after := ledger.BalanceAsOf(acct.BankAccount.Transactions, tx.Currency, tx.ID)
			return &tx, after, nil
		}
	}
	return nil, 0, domain.ErrNotFound
}

// UpdateProfilePhoto stores the encoded photo bytes on the account document.
func (s *Service) UpdateProfilePhoto(ctx context.Context, userID, encoded string) error {
	err := s.store.Update(ctx, docstore.Users, userID, docstore.FieldUpdates{
		"profilePhotoData": encoded,
	})
	if err != nil {
		s.logger.Error("update profile photo failed", "user_id", userID, "error", err)
		return domain.StoreFailure(err)
	}
	return nil
}

// ClearProfilePhoto removes the stored photo.
func (s *Service) ClearProfilePhoto(ctx context.Context, userID string) error {
	return s.UpdateProfilePhoto(ctx, userID, "")
}

// Load fetches and decodes a user document. Absent documents surface as
// domain.ErrNotFound, any other store error as the collapsed store failure.
func Load(ctx context.Context, store docstore.Store, userID string) (*domain.Account, error) {
	doc, err := store.Get(ctx, docstore.Users, userID)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, domain.StoreFailure(err)
	}
	return domain.AccountFromFields(doc.ID, doc.Fields)
}

// BalanceField reads one balance field straight off raw document fields,
// the way the transfer funds check does. A missing or non-numeric field is
// reported as an invalid account.
func BalanceField(fields map[string]any, code currency.Code) (float64, error) {
	bank, ok := fields["bankAccount"].(map[string]any)
	if !ok {
		return 0, domain.ErrInvalidAccount
	}
	balance, ok := bank[code.BalanceField()].(float64)
	if !ok {
		return 0, domain.ErrInvalidAccount
	}
	return balance, nil
}
