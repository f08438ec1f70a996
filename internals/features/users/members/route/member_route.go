package route

import (
	"clubfund_backend/internals/features/users/members/controller"

	"github.com/gofiber/fiber/v2"
)

// MemberSelfRoutes → /api/u/me (tanpa guard ACTIVE; member PENDING bisa cek status)
func MemberSelfRoutes(user fiber.Router, ctrl *controller.MemberController) {
	user.Get("/me", ctrl.Me)
}

// MemberProfileRoutes → /api/u/me (ACTIVE)
func MemberProfileRoutes(user fiber.Router, ctrl *controller.MemberController) {
	user.Patch("/me", ctrl.UpdateProfile)
	user.Post("/me/avatar", ctrl.UploadAvatar)
}

// MemberAdminRoutes → /api/a/members
func MemberAdminRoutes(admin fiber.Router, ctrl *controller.MemberController) {
	g := admin.Group("/members")
	g.Get("/", ctrl.List)
	g.Patch("/:id/status", ctrl.ReviewApplication)
}

// MemberSuperAdminRoutes → /api/s/members
func MemberSuperAdminRoutes(super fiber.Router, ctrl *controller.MemberController) {
	g := super.Group("/members")
	g.Patch("/:id/role", ctrl.UpdateRole)
	g.Patch("/:id/department", ctrl.UpdateDepartment)
	g.Delete("/:id", ctrl.Delete)
}
