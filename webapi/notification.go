package webapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/walletd/walletcore/pkg/app"
)

// NotificationRoutes registers notification endpoints.
func NotificationRoutes(api *fiber.App, a *app.App) {
	api.Get("/notifications", Protected(a.Cfg.Jwt), ListNotifications(a))
	api.Post("/notifications/read-all", Protected(a.Cfg.Jwt), MarkNotificationsRead(a))
	api.Delete("/notifications/:id", Protected(a.Cfg.Jwt), DeleteNotification(a))
	api.Delete("/notifications", Protected(a.Cfg.Jwt), DeleteAllNotifications(a))
}

// ListNotifications returns the user's notifications, newest first, with the
// unread count.
func ListNotifications(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUserID(c)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		items, err := a.Notifications.List(c.Context(), userID)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		unread := 0
		for _, n := range items {
			if !n.IsRead {
				unread++
			}
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Notifications", fiber.Map{
			"notifications": items,
			"unreadCount":   unread,
		})
	}
}

// MarkNotificationsRead flags every unread notification.
func MarkNotificationsRead(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUserID(c)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		if err := a.Notifications.MarkAllRead(c.Context(), userID); err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "All notifications marked read", nil)
	}
}

// DeleteNotification removes one notification.
func DeleteNotification(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUserID(c)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		if err := a.Notifications.Delete(c.Context(), userID, c.Params("id")); err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Notification deleted", nil)
	}
}

// DeleteAllNotifications removes every notification of the user.
func DeleteAllNotifications(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUserID(c)
		if err != nil {
			return DomainErrorJSON(c, err)
		}
		if err := a.Notifications.DeleteAll(c.Context(), userID); err != nil {
			return DomainErrorJSON(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Notifications cleared", nil)
	}
}
