package details

import (
	"github.com/gofiber/fiber/v2"

	notifRoute "clubfund_backend/internals/features/notifications/route"
)

func NotificationAdminRoutes(admin fiber.Router, s *Services) {
	notifRoute.NotificationAdminRoutes(admin, s.Notifications, s.NotifLogs)
}
