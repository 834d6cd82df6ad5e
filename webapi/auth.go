package webapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/walletd/walletcore/pkg/app"
)

// AuthRoutes registers registration, login, and account-closure endpoints.
func AuthRoutes(api *fiber.App, a *app.App) {
	api.Post("/auth/register", Register(a))
	api.Post("/auth/login", Login(a))
	api.Delete("/auth/account", Protected(a.Cfg.Jwt), CloseAccount(a))
}

// Register creates a new wallet user.
func Register(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[RegisterInput](c)
		if input == nil {
			return err
		}
		userID, err := a.Auth.Register(c.Context(),
			input.FullName, input.Email, input.PhoneNumber, input.Password)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		token, err := a.Auth.GenerateToken(userID)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusCreated, "Account created", fiber.Map{
			"userID": userID,
			"token":  token,
		})
	}
}

// Login authenticates a user and returns a JWT.
func Login(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[LoginInput](c)
		if input == nil {
			return err
		}
		token, userID, err := a.Auth.Login(c.Context(), input.Email, input.Password)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Success login", fiber.Map{
			"userID": userID,
			"token":  token,
		})
	}
}

// CloseAccount deletes the authenticated user's account. The closure fails
// open: the response is success even if server-side deletion only partially
// completed, so the client always signs out.
func CloseAccount(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUserID(c)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		a.Auth.CloseAccount(c.Context(), userID)
		return SuccessResponseJSON(c, fiber.StatusOK, "Account closed", nil)
	}
}
