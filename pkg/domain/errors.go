package domain

import (
	"errors"
	"fmt"
)

// Domain errors surfaced by the core services. Store-layer failures are
// wrapped with ErrStoreFailure so callers can collapse them into a single
// user-facing category.
var (
	// ErrNotFound is returned when a requested document is absent.
	ErrNotFound = errors.New("resource not found")
	// ErrRecipientNotFound is returned when no account matches a cash ID.
	ErrRecipientNotFound = errors.New("recipient not found")
	// ErrRecipientMismatch is returned when the claimed recipient identity
	// does not match the stored one.
	ErrRecipientMismatch = errors.New("recipient information does not match")
	// ErrInsufficientFunds is returned when a debit exceeds the balance.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrInvalidAccount is returned when stored balance fields are malformed.
	ErrInvalidAccount = errors.New("invalid account")
	// ErrStoreFailure wraps any read/write/batch error from the account store.
	ErrStoreFailure = errors.New("store failure")
	// ErrInvalidAmount is returned when an amount is not positive or carries
	// more than two decimal places.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrUnauthorized is returned when credentials do not match.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrAlreadyExists is returned when registering an email twice.
	ErrAlreadyExists = errors.New("resource already exists")
)

// StoreFailure collapses an underlying store error into the single
// user-facing failure category, keeping the cause in the message.
func StoreFailure(err error) error {
	return fmt.Errorf("%w: %v", ErrStoreFailure, err)
}

