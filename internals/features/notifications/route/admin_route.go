package route

import (
	"clubfund_backend/internals/features/notifications/controller"
	"clubfund_backend/internals/features/notifications/repository"
	"clubfund_backend/internals/features/notifications/service"

	"github.com/gofiber/fiber/v2"
)

// NotificationAdminRoutes → /api/a/notifications
func NotificationAdminRoutes(admin fiber.Router, svc *service.NotificationService, repo *repository.NotificationRepository) {
	ctrl := controller.NewNotificationController(svc, repo)

	g := admin.Group("/notifications")
	g.Get("/", ctrl.List)
	g.Post("/reminders", ctrl.SendReminders)
}
