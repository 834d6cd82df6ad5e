package webapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/walletd/walletcore/pkg/app"
	"github.com/walletd/walletcore/pkg/currency"
)

// TransferRoutes registers recipient resolution and money transfer endpoints.
func TransferRoutes(api *fiber.App, a *app.App) {
	api.Post("/transfer/resolve", Protected(a.Cfg.Jwt), ResolveRecipient(a))
	api.Post("/transfer", Protected(a.Cfg.Jwt), Transfer(a))
}

// ResolveRecipient verifies a recipient by cash ID plus claimed identity
// before a transfer is allowed.
func ResolveRecipient(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := currentUserID(c); err != nil {
			return DomainErrorJSON(c, err)
		}
		input, err := BindAndValidate[ResolveRecipientInput](c)
		if input == nil {
			return err
		}
		recipient, err := a.Identity.ResolveAndVerify(c.Context(),
			input.CashID, input.FullName, input.PhoneNumber)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Recipient verified", fiber.Map{
			"recipientID": recipient.ID,
			"fullName":    recipient.FullName,
		})
	}
}

// Transfer sends money from the authenticated user to a resolved recipient.
func Transfer(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUserID(c)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		input, err := BindAndValidate[TransferInput](c)
		if input == nil {
			return err
		}
		code, err := currency.Parse(input.Currency)
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusUnprocessableEntity, "Unsupported currency", err.Error())
		}
		tx, err := a.Transfers.Transfer(c.Context(),
			userID, input.RecipientID, input.Amount, code, input.Message)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Transfer completed", tx)
	}
}
