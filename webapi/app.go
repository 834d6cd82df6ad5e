package webapi

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/walletd/walletcore/pkg/app"
)

// NewApp builds the Fiber application with middleware and all routes.
func NewApp(a *app.App) *fiber.App {
	api := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			status := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			}
			return ErrorResponseJSON(c, status, "Internal Server Error", err.Error())
		},
	})

	api.Use(limiter.New(limiter.Config{
		Max:        20,
		Expiration: 1 * time.Second,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return ErrorResponseJSON(c, fiber.StatusTooManyRequests, "Too Many Requests", "Rate limit exceeded")
		},
	}))
	api.Use(recover.New())

	api.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("walletcore is up")
	})
	api.Get("/health", func(c *fiber.Ctx) error {
		if !a.Monitor.Reachable() {
			return ErrorResponseJSON(c, fiber.StatusServiceUnavailable,
				"Service Unavailable", "account store unreachable")
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "ok", nil)
	})

	AuthRoutes(api, a)
	AccountRoutes(api, a)
	TransferRoutes(api, a)
	TransactionRoutes(api, a)
	NotificationRoutes(api, a)

	return api
}
