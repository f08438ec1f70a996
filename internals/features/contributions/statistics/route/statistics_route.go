package route

import (
	"clubfund_backend/internals/features/contributions/statistics/controller"

	"github.com/gofiber/fiber/v2"
)

// StatisticsAdminRoutes → /api/a/statistics, /api/a/matrix
func StatisticsAdminRoutes(admin fiber.Router, ctrl *controller.StatisticsController) {
	admin.Get("/statistics", ctrl.Statistics)
	admin.Get("/matrix", ctrl.Matrix)
}
