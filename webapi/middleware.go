package webapi

import (
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/walletd/walletcore/pkg/config"
	"github.com/walletd/walletcore/pkg/service/auth"
)

// Protected guards a route with JWT bearer authentication.
func Protected(cfg config.Jwt) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   jwtware.SigningKey{Key: []byte(cfg.Secret)},
		ErrorHandler: jwtError,
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	if err.Error() == "missing or malformed JWT" {
		return ErrorResponseJSON(c, fiber.StatusBadRequest, "Bad Request", "Missing or malformed JWT")
	}
	return ErrorResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", "Invalid or expired JWT")
}

// currentUserID pulls the authenticated user id from the verified token the
// JWT middleware stored on the request.
func currentUserID(c *fiber.Ctx) (string, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return "", auth.ErrInvalidToken
	}
	return auth.CurrentUserID(token)
}
