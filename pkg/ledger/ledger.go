// Package ledger replays transaction history to recompute point-in-time
// balances for display. The stored balance fields remain authoritative; this
// fold can diverge from them only if entries were ever mutated outside the
// append-only ledger.
package ledger

import (
	"sort"

	"github.com/walletd/walletcore/pkg/currency"
	"github.com/walletd/walletcore/pkg/domain"
)

// BalanceAsOf replays entries of the given currency in ascending date order,
// crediting deposits/receives and debiting withdrawals/sends, stopping
// inclusively at the entry whose id equals targetID. Entries dated after the
// target never contribute. When targetID is not present, the whole ledger for
// the currency is folded.
//
// Entries sharing a timestamp are visited in their input order; no canonical
// tie-break exists, so a target inside a tied group can see either order.
// The fold is pure: the input slice is never modified.
func BalanceAsOf(entries []domain.Transaction, code currency.Code, targetID string) float64 {
	ordered := make([]domain.Transaction, len(entries))
	copy(ordered, entries)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Date < ordered[j].Date })

	targetDate, hasTarget := findDate(ordered, targetID)

	var balance float64
	for _, tx := range ordered {
		if tx.Currency != code {
			continue
		}
		if hasTarget && tx.Date > targetDate {
			continue
		}
		balance += tx.Direction() * tx.Amount
		if tx.ID == targetID {
			break
		}
	}
	return balance
}

func findDate(entries []domain.Transaction, id string) (int64, bool) {
	for _, tx := range entries {
		if tx.ID == id {
			return tx.Date, true
		}
	}
	return 0, false
}
