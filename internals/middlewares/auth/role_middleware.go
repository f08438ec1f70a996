package auth

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"clubfund_backend/internals/constants"
	helper "clubfund_backend/internals/helpers"
)

// Caller data minimal pemanggil, dibaca ulang dari DB setiap request
type Caller struct {
	ID     uuid.UUID `gorm:"column:member_id"`
	Role   string    `gorm:"column:member_role"`
	Status string    `gorm:"column:member_status"`
}

type CallerLookup interface {
	FindCaller(ctx context.Context, id uuid.UUID) (*Caller, error)
}

type gormCallerLookup struct{ db *gorm.DB }

func NewGormCallerLookup(db *gorm.DB) CallerLookup { return gormCallerLookup{db: db} }

func (g gormCallerLookup) FindCaller(ctx context.Context, id uuid.UUID) (*Caller, error) {
	var c Caller
	err := g.db.WithContext(ctx).
		Table("members").
		Select("member_id, member_role, member_status").
		Where("member_id = ?", id).
		Take(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, constants.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// RequireRoles satu-satunya guard otorisasi: member harus ACTIVE
// dan role-nya termasuk salah satu roles. Pasang setelah AuthJWT.
func RequireRoles(lookup CallerLookup, roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		userID, err := helper.GetUserUUID(c)
		if err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Chưa đăng nhập")
		}

		caller, err := lookup.FindCaller(c.UserContext(), userID)
		if err != nil {
			if errors.Is(err, constants.ErrNotFound) {
				return helper.JsonError(c, fiber.StatusUnauthorized, "Không tìm thấy người dùng")
			}
			log.Println("[ERROR] RequireRoles lookup:", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Đã xảy ra lỗi máy chủ")
		}

		if caller.Status != constants.MemberStatusActive {
			return c.Status(fiber.StatusForbidden).JSON(helper.ErrorResponse{
				Message:   constants.RoleErrorInactive(featureOf(c.Path())),
				ErrorCode: "INACTIVE_MEMBER",
			})
		}
		if _, ok := allowed[caller.Role]; !ok {
			msg := constants.RoleErrorAdmin(featureOf(c.Path()))
			if _, adminOK := allowed[constants.RoleAdmin]; !adminOK {
				msg = constants.RoleErrorSuperAdmin(featureOf(c.Path()))
			}
			return c.Status(fiber.StatusForbidden).JSON(helper.ErrorResponse{
				Message:   msg,
				ErrorCode: "FORBIDDEN",
			})
		}

		c.Locals(helper.LocUserRole, caller.Role)
		c.Locals(helper.LocUserStatus, caller.Status)
		return c.Next()
	}
}

// featureOf "/api/a/contributions/x/approve" → "contributions"
func featureOf(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) >= 3 && parts[0] == "api" {
		return parts[2]
	}
	return parts[len(parts)-1]
}
