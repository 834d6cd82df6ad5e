// Package webapi exposes the wallet over HTTP with Fiber. All money routes
// are JWT-protected; errors surface as RFC 9457 problem details.
package webapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/walletd/walletcore/pkg/app"
	"github.com/walletd/walletcore/pkg/currency"
)

// AccountRoutes registers profile, balance, and cash operation endpoints.
func AccountRoutes(api *fiber.App, a *app.App) {
	api.Get("/account", Protected(a.Cfg.Jwt), GetAccount(a))
	api.Get("/account/balances", Protected(a.Cfg.Jwt), GetBalances(a))
	api.Put("/account/photo", Protected(a.Cfg.Jwt), UpdatePhoto(a))
	api.Delete("/account/photo", Protected(a.Cfg.Jwt), ClearPhoto(a))
	api.Post("/account/deposit", Protected(a.Cfg.Jwt), Deposit(a))
	api.Post("/account/withdraw", Protected(a.Cfg.Jwt), Withdraw(a))
}

// GetAccount returns the authenticated user's profile and balances.
func GetAccount(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUserID(c)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		acct, err := a.Accounts.Get(c.Context(), userID)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Account", AccountResponse{
			ID:          acct.ID,
			FullName:    acct.FullName,
			Email:       acct.Email,
			PhoneNumber: acct.PhoneNumber,
			IdCash:      acct.IdCash,
			IBAN:        acct.IBAN,
			CreatedAt:   acct.CreatedAt,
			BalanceTL:   acct.BankAccount.BalanceTL,
			BalanceUSD:  acct.BankAccount.BalanceUSD,
		})
	}
}

// GetBalances returns the stored balances for both currencies.
func GetBalances(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUserID(c)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		balanceTL, balanceUSD, err := a.Accounts.Balances(c.Context(), userID)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Balances", fiber.Map{
			"balanceTL":  balanceTL,
			"balanceUSD": balanceUSD,
		})
	}
}

// UpdatePhoto stores the profile photo payload.
func UpdatePhoto(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUserID(c)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		input, err := BindAndValidate[PhotoInput](c)
		if input == nil {
			return err
		}
		if err := a.Accounts.UpdateProfilePhoto(c.Context(), userID, input.Data); err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Photo updated", nil)
	}
}

// ClearPhoto removes the profile photo.
func ClearPhoto(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUserID(c)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		if err := a.Accounts.ClearProfilePhoto(c.Context(), userID); err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Photo removed", nil)
	}
}

// Deposit credits the authenticated user's balance.
func Deposit(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUserID(c)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		input, err := BindAndValidate[AmountInput](c)
		if input == nil {
			return err
		}
		code, err := currency.Parse(input.Currency)
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusUnprocessableEntity, "Unsupported currency", err.Error())
		}
		tx, err := a.Transfers.Deposit(c.Context(), userID, input.Amount, code)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Deposit completed", tx)
	}
}

// Withdraw debits the authenticated user's balance.
func Withdraw(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUserID(c)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		input, err := BindAndValidate[AmountInput](c)
		if input == nil {
			return err
		}
		code, err := currency.Parse(input.Currency)
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusUnprocessableEntity, "Unsupported currency", err.Error())
		}
		tx, err := a.Transfers.Withdraw(c.Context(), userID, input.Amount, code)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Withdrawal completed", tx)
	}
}
