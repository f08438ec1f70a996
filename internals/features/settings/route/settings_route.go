package route

import (
	"clubfund_backend/internals/features/settings/controller"

	"github.com/gofiber/fiber/v2"
)

// SettingsUserRoutes → GET /api/u/settings
func SettingsUserRoutes(user fiber.Router, ctrl *controller.SettingsController) {
	user.Get("/settings", ctrl.GetSettings)
}

// SettingsSuperAdminRoutes → PUT /api/s/settings
func SettingsSuperAdminRoutes(super fiber.Router, ctrl *controller.SettingsController) {
	super.Put("/settings", ctrl.UpdateSettings)
}
