package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"clubfund_backend/internals/constants"
	authMiddleware "clubfund_backend/internals/middlewares/auth"
	routeDetails "clubfund_backend/internals/route/details"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, s *routeDetails.Services) {
	startTime = time.Now()

	BaseRoutes(app)

	api := app.Group("/api")

	// ===================== PUBLIC =====================
	log.Println("[INFO] Setting up PUBLIC routes...")
	routeDetails.AuthPublicRoutes(api, s)
	routeDetails.FinancePublicRoutes(api, s)

	jwt := authMiddleware.AuthJWT(authMiddleware.StoreBlacklist(s.Tokens))
	lookup := authMiddleware.NewGormCallerLookup(s.DB)

	// ===================== MEMBER =====================
	log.Println("[INFO] Setting up MEMBER group (/api/u)...")
	user := api.Group("/u", jwt)
	// logout & /me juga untuk member PENDING
	routeDetails.AuthMemberRoutes(user, s)
	routeDetails.MemberSelfRoutes(user, s)

	active := user.Group("", authMiddleware.RequireRoles(lookup, constants.AllRoles...))
	routeDetails.UserRoutes(active, s)
	routeDetails.FinanceUserRoutes(active, s)

	// ===================== ADMIN =====================
	log.Println("[INFO] Setting up ADMIN group (/api/a)...")
	admin := api.Group("/a", jwt, authMiddleware.RequireRoles(lookup, constants.AdminAndAbove...))
	routeDetails.UserAdminRoutes(admin, s)
	routeDetails.FinanceAdminRoutes(admin, s)
	routeDetails.NotificationAdminRoutes(admin, s)

	// ===================== SUPER ADMIN =====================
	log.Println("[INFO] Setting up SUPER ADMIN group (/api/s)...")
	super := api.Group("/s", jwt, authMiddleware.RequireRoles(lookup, constants.SuperAdminOnly...))
	routeDetails.UserSuperAdminRoutes(super, s)
	routeDetails.FinanceSuperAdminRoutes(super, s)
}
