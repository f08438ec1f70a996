package details

import (
	"github.com/gofiber/fiber/v2"

	authRoute "clubfund_backend/internals/features/users/auth/route"
)

func AuthPublicRoutes(api fiber.Router, s *Services) {
	authRoute.AuthPublicRoutes(api, s.Auth)
}

func AuthMemberRoutes(user fiber.Router, s *Services) {
	authRoute.AuthMemberRoutes(user, s.Auth)
}
