// Package currency defines the currencies a wallet account can hold.
package currency

import "errors"

// Code identifies a wallet currency.
type Code string

const (
	// TL is the Turkish lira.
	TL Code = "TL"
	// USD is the United States dollar.
	USD Code = "USD"
)

// ErrUnsupportedCurrency is returned when a currency code is not one of the
// wallet currencies.
var ErrUnsupportedCurrency = errors.New("unsupported currency")

// Parse validates a raw currency code.
func Parse(raw string) (Code, error) {
	switch Code(raw) {
	case TL, USD:
		return Code(raw), nil
	default:
		return "", ErrUnsupportedCurrency
	}
}

// String returns the code as a plain string.
func (c Code) String() string { return string(c) }

// Symbol returns the display symbol for the currency.
func (c Code) Symbol() string {
	if c == TL {
		return "₺"
	}
	return "$"
}

// BalanceField returns the account document field holding the balance for
// this currency.
func (c Code) BalanceField() string {
	if c == TL {
		return "balanceTL"
	}
	return "balanceUSD"
}
