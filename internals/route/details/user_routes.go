package details

import (
	"github.com/gofiber/fiber/v2"

	settingsController "clubfund_backend/internals/features/settings/controller"
	settingsRoute "clubfund_backend/internals/features/settings/route"
	memberController "clubfund_backend/internals/features/users/members/controller"
	memberRoute "clubfund_backend/internals/features/users/members/route"
)

func (s *Services) memberController() *memberController.MemberController {
	var uploader memberController.ImageUploader
	if s.Storage != nil {
		uploader = s.Storage
	}
	return memberController.NewMemberController(s.MemberSvc, uploader)
}

// MemberSelfRoutes /api/u/me untuk semua status (PENDING cek pendaftaran)
func MemberSelfRoutes(user fiber.Router, s *Services) {
	memberRoute.MemberSelfRoutes(user, s.memberController())
}

func UserRoutes(user fiber.Router, s *Services) {
	memberRoute.MemberProfileRoutes(user, s.memberController())
	settingsRoute.SettingsUserRoutes(user, settingsController.NewSettingsController(s.Settings))
}

func UserAdminRoutes(admin fiber.Router, s *Services) {
	memberRoute.MemberAdminRoutes(admin, s.memberController())
}

func UserSuperAdminRoutes(super fiber.Router, s *Services) {
	memberRoute.MemberSuperAdminRoutes(super, s.memberController())
	settingsRoute.SettingsSuperAdminRoutes(super, settingsController.NewSettingsController(s.Settings))
}
