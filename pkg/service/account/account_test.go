package account_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walletd/walletcore/pkg/currency"
	"github.com/walletd/walletcore/pkg/docstore"
	"github.com/walletd/walletcore/pkg/domain"
	"github.com/walletd/walletcore/pkg/service/account"
)

func seedAccount(t *testing.T) (*account.Service, *docstore.MemoryStore) {
	t.Helper()
	store := docstore.NewMemoryStore()
	err := store.Set(context.Background(), docstore.Users, "user-1", map[string]any{
		"fullName":    "Ada Lovelace",
		"email":       "ada@example.com",
		"phoneNumber": "+905551112233",
		"idCash":      "1234567890",
		"iban":        "TR12 3456",
		"createdAt":   1700000000,
		"bankAccount": map[string]any{
			"balanceTL":  85.00,
			"balanceUSD": 5.00,
			"transactions": []any{
				map[string]any{
					"id": "tx-1", "type": "deposit", "amount": 100.00, "currency": "TL",
					"date": 1000, "receiverID": "user-1", "status": "completed",
				},
				map[string]any{
					"id": "tx-2", "type": "send", "amount": 40.00, "currency": "TL",
					"date":   2000,
					"status": "completed", "senderID": "user-1", "receiverID": "user-2",
				},
				map[string]any{
					"id": "tx-3", "type": "receive", "amount": 25.00, "currency": "TL",
					"date":   3000,
					"status": "completed", "senderID": "user-3", "receiverID": "user-1",
				},
			},
		},
	})
	require.NoError(t, err)
	return account.New(store, slog.Default()), store
}

func TestGet(t *testing.T) {
	svc, _ := seedAccount(t)

	acct, err := svc.Get(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", acct.ID)
	assert.Equal(t, "Ada Lovelace", acct.FullName)
	assert.Equal(t, "1234567890", acct.IdCash)
	assert.Len(t, acct.BankAccount.Transactions, 3)
}

func TestGetUnknownUser(t *testing.T) {
	svc, _ := seedAccount(t)

	_, err := svc.Get(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBalances(t *testing.T) {
	svc, _ := seedAccount(t)

	balanceTL, balanceUSD, err := svc.Balances(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 85.00, balanceTL)
	assert.Equal(t, 5.00, balanceUSD)
}

func TestTransactionsSortedNewestFirst(t *testing.T) {
	svc, _ := seedAccount(t)

	list, err := svc.Transactions(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "tx-3", list[0].ID)
	assert.Equal(t, "tx-2", list[1].ID)
	assert.Equal(t, "tx-1", list[2].ID)
}

func TestTransactionDetailReplaysBalance(t *testing.T) {
	svc, _ := seedAccount(t)

	tx, after, err := svc.Transaction(context.Background(), "user-1", "tx-2")
	require.NoError(t, err)
	assert.Equal(t, domain.TypeSend, tx.Type)
	// 100 deposit - 40 send, the later receive is excluded
	assert.Equal(t, 60.00, after)

	_, after, err = svc.Transaction(context.Background(), "user-1", "tx-3")
	require.NoError(t, err)
	assert.Equal(t, 85.00, after)
}

func TestTransactionUnknownID(t *testing.T) {
	svc, _ := seedAccount(t)

	_, _, err := svc.Transaction(context.Background(), "user-1", "tx-missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProfilePhotoRoundTrip(t *testing.T) {
	svc, store := seedAccount(t)

	require.NoError(t, svc.UpdateProfilePhoto(context.Background(), "user-1", "base64-bytes"))
	doc, err := store.Get(context.Background(), docstore.Users, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "base64-bytes", doc.Fields["profilePhotoData"])

	require.NoError(t, svc.ClearProfilePhoto(context.Background(), "user-1"))
	doc, err = store.Get(context.Background(), docstore.Users, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "", doc.Fields["profilePhotoData"])
}

func TestBalanceFieldRejectsMalformedDocument(t *testing.T) {
	_, err := account.BalanceField(map[string]any{}, currency.TL)
	assert.ErrorIs(t, err, domain.ErrInvalidAccount)

	_, err = account.BalanceField(map[string]any{
		"bankAccount": map[string]any{"balanceTL": "NaN"},
	}, currency.TL)
	assert.ErrorIs(t, err, domain.ErrInvalidAccount)

	got, err := account.BalanceField(map[string]any{
		"bankAccount": map[string]any{"balanceTL": 12.5},
	}, currency.TL)
	require.NoError(t, err)
	assert.Equal(t, 12.5, got)
}
