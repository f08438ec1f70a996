package constants

import "fmt"

// Role anggota klub (mirror kolom member_role)
const (
	RoleMember     = "MEMBER"
	RoleAdmin      = "ADMIN"
	RoleSuperAdmin = "SUPER_ADMIN"
)

// Template pesan error role
const (
	ErrOnlyAdminsCanAccess = "❌ Chỉ quản trị viên hoặc siêu quản trị viên mới được dùng chức năng %s."
	ErrOnlySuperAdmin      = "❌ Chỉ siêu quản trị viên mới được dùng chức năng %s."
	ErrOnlyActiveMembers   = "❌ Tài khoản của bạn chưa được kích hoạt cho chức năng %s."
)

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorSuperAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlySuperAdmin, feature)
}

func RoleErrorInactive(feature string) string {
	return fmt.Sprintf(ErrOnlyActiveMembers, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleMember,
		RoleAdmin,
		RoleSuperAdmin,
	}

	AdminAndAbove = []string{
		RoleAdmin,
		RoleSuperAdmin,
	}

	SuperAdminOnly = []string{
		RoleSuperAdmin,
	}
)

func IsValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}
