package route

import (
	"clubfund_backend/internals/features/contributions/reports/controller"

	"github.com/gofiber/fiber/v2"
)

// ReportAdminRoutes → /api/a/reports
func ReportAdminRoutes(admin fiber.Router, ctrl *controller.ReportController) {
	g := admin.Group("/reports")
	g.Get("/", ctrl.Report)
	g.Get("/export", ctrl.Export)
}
