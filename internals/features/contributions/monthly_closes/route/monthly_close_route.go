package route

import (
	"clubfund_backend/internals/features/contributions/monthly_closes/controller"

	"github.com/gofiber/fiber/v2"
)

// MonthlyCloseSuperAdminRoutes → /api/s/monthly-closes
func MonthlyCloseSuperAdminRoutes(super fiber.Router, ctrl *controller.MonthlyCloseController) {
	g := super.Group("/monthly-closes")
	g.Get("/", ctrl.List)
	g.Post("/", ctrl.Close)
}
