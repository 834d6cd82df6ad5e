package webapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/walletd/walletcore/pkg/app"
)

// TransactionRoutes registers transaction history endpoints.
func TransactionRoutes(api *fiber.App, a *app.App) {
	api.Get("/transactions", Protected(a.Cfg.Jwt), ListTransactions(a))
	api.Get("/transactions/:id", Protected(a.Cfg.Jwt), GetTransaction(a))
}

// ListTransactions returns the user's ledger, newest first.
func ListTransactions(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUserID(c)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		txs, err := a.Accounts.Transactions(c.Context(), userID)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Transactions", txs)
	}
}

// GetTransaction returns one ledger entry plus the replayed balance after it.
func GetTransaction(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUserID(c)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		tx, balanceAfter, err := a.Accounts.Transaction(c.Context(), userID, c.Params("id"))
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Transaction", fiber.Map{
			"transaction":  tx,
			"balanceAfter": balanceAfter,
		})
	}
}
