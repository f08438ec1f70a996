package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Key Locals yang diisi middleware auth
const (
	LocUserID     = "user_id"
	LocUserRole   = "user_role"
	LocUserStatus = "user_status"
)

// GetUserUUID ambil user_id dari Locals (diisi AuthJWT).
func GetUserUUID(c *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := c.Locals(LocUserID).(string)
	if !ok || strings.TrimSpace(raw) == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Không tìm thấy ID người dùng trong token")
	}
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "ID người dùng trong token không hợp lệ")
	}
	return id, nil
}

// GetUserRole role yang sudah di-resolve dari DB oleh RequireRoles / LoadCaller.
func GetUserRole(c *fiber.Ctx) string {
	if v, ok := c.Locals(LocUserRole).(string); ok {
		return v
	}
	return ""
}

func ParseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params(name)))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, name+" không hợp lệ")
	}
	return id, nil
}
