package domain

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/walletd/walletcore/pkg/currency"
)

// BankAccount is the balance-and-ledger part of a user document. Balances are
// authoritative; the ledger is an append-only list of entries.
type BankAccount struct {
	BalanceTL    float64       `json:"balanceTL"`
	BalanceUSD   float64       `json:"balanceUSD"`
	Transactions []Transaction `json:"transactions"`
}

// Balance returns the stored balance for the given currency.
func (b BankAccount) Balance(code currency.Code) float64 {
	if code == currency.TL {
		return b.BalanceTL
	}
	return b.BalanceUSD
}

// Account is one user document in the account store: identity plus exactly
// one BankAccount. IdCash and IBAN are unique only by the
// generate-and-verify loop at registration; the store enforces nothing.
type Account struct {
	ID               string      `json:"-"`
	FullName         string      `json:"fullName"`
	Email            string      `json:"email"`
	PhoneNumber      string      `json:"phoneNumber"`
	IdCash           string      `json:"idCash"`
	IBAN             string      `json:"iban"`
	ProfilePhotoData string      `json:"profilePhotoData,omitempty"`
	CreatedAt        int64       `json:"createdAt"`
	BankAccount      BankAccount `json:"bankAccount"`
}

// SortedTransactions returns the ledger ordered by date descending, the order
// the history feed renders. Entries sharing a timestamp keep their stored
// relative order.
func (a *Account) SortedTransactions() []Transaction {
	out := make([]Transaction, len(a.BankAccount.Transactions))
	copy(out, a.BankAccount.Transactions)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out
}

// AccountFromFields decodes a stored document field map into an Account.
// Malformed balance fields surface as ErrInvalidAccount.
func AccountFromFields(id string, fields map[string]any) (*Account, error) {
	raw, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAccount, err)
	}
	var a Account
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAccount, err)
	}
	a.ID = id
	return &a, nil
}
