package route

import (
	"clubfund_backend/internals/features/contributions/payments/controller"

	"github.com/gofiber/fiber/v2"
)

// PaymentPublicRoutes → /api/payments/midtrans/notification
func PaymentPublicRoutes(api fiber.Router, ctrl *controller.PaymentController) {
	api.Post("/payments/midtrans/notification", ctrl.Notification)
}

// PaymentUserRoutes → /api/u/contributions/online
func PaymentUserRoutes(user fiber.Router, ctrl *controller.PaymentController) {
	user.Post("/contributions/online", ctrl.CreateOnline)
}
