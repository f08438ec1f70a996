package route

import (
	"github.com/gofiber/fiber/v2"

	controller "clubfund_backend/internals/features/users/auth/controller"
	"clubfund_backend/internals/features/users/auth/service"
	rateLimiter "clubfund_backend/internals/middlewares"
)

// AuthPublicRoutes /api/auth/*
func AuthPublicRoutes(api fiber.Router, svc *service.AuthService) {
	ctrl := controller.NewAuthController(svc)

	auth := api.Group("/auth")
	auth.Post("/register", rateLimiter.RegisterRateLimiter(), ctrl.Register)
	auth.Post("/login", rateLimiter.LoginRateLimiter(), ctrl.Login)
	auth.Post("/google", rateLimiter.LoginRateLimiter(), ctrl.LoginGoogle)
}

// AuthMemberRoutes /api/u/auth/* (sudah lewat AuthJWT)
func AuthMemberRoutes(u fiber.Router, svc *service.AuthService) {
	ctrl := controller.NewAuthController(svc)
	u.Post("/auth/logout", ctrl.Logout)
}
