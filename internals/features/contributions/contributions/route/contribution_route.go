package route

import (
	"clubfund_backend/internals/features/contributions/contributions/controller"
	"clubfund_backend/internals/middlewares"

	"github.com/gofiber/fiber/v2"
)

// ContributionUserRoutes → /api/u/contributions (member ACTIVE)
func ContributionUserRoutes(user fiber.Router, ctrl *controller.ContributionController) {
	g := user.Group("/contributions")
	g.Get("/", ctrl.ListMine)
	g.Get("/week-status", ctrl.WeekStatus)
	g.Post("/", middlewares.SubmitRateLimiter(), ctrl.Submit)
	g.Delete("/:id", ctrl.DeletePending)
}

// ContributionAdminRoutes → /api/a/contributions (ADMIN / SUPER_ADMIN)
func ContributionAdminRoutes(admin fiber.Router, ctrl *controller.ContributionController) {
	g := admin.Group("/contributions")
	g.Get("/", ctrl.List)
	g.Post("/:id/approve", ctrl.Approve)
	g.Post("/:id/reject", ctrl.Reject)
}
