// Package events defines the domain events published after ledger commits.
// Subscribers (history feeds, dashboards) refresh from these instead of a
// process-wide publisher singleton.
package events

import "github.com/walletd/walletcore/pkg/domain"

// Event type identifiers used for bus subscription.
const (
	EventTransferCompleted = "transfer.completed"
	EventDepositCompleted  = "deposit.completed"
	EventWithdrawCompleted = "withdraw.completed"
	EventStoreStatus       = "store.status"
)

// TransferCompleted carries both ledger entries of a committed transfer.
type TransferCompleted struct {
	Send    domain.Transaction
	Receive domain.Transaction
}

func (TransferCompleted) Type() string { return EventTransferCompleted }

// DepositCompleted carries the ledger entry of a committed deposit.
type DepositCompleted struct {
	Entry domain.Transaction
}

func (DepositCompleted) Type() string { return EventDepositCompleted }

// WithdrawCompleted carries the ledger entry of a committed withdrawal.
type WithdrawCompleted struct {
	Entry domain.Transaction
}

func (WithdrawCompleted) Type() string { return EventWithdrawCompleted }

// StoreStatus reports a change in account-store reachability.
type StoreStatus struct {
	Reachable bool
}

func (StoreStatus) Type() string { return EventStoreStatus }
