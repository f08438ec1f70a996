// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"context"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"clubfund_backend/internals/configs"
	helper "clubfund_backend/internals/helpers"
	helpersAuth "clubfund_backend/internals/helpers/auth"
)

// BlacklistChecker cek token yang sudah logout
type BlacklistChecker func(c *fiber.Ctx, rawToken string) (bool, error)

type RevocationStore interface {
	IsRevoked(ctx context.Context, rawToken string) (bool, error)
}

// StoreBlacklist adapter RevocationStore → BlacklistChecker
func StoreBlacklist(store RevocationStore) BlacklistChecker {
	return func(c *fiber.Ctx, raw string) (bool, error) {
		return store.IsRevoked(c.UserContext(), raw)
	}
}

func extractBearerToken(c *fiber.Ctx) string {
	auth := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if auth == "" {
		return strings.Trim(strings.TrimSpace(c.Cookies("access_token")), "\"'")
	}
	fields := strings.Fields(auth)
	if len(fields) < 2 || !strings.EqualFold(fields[0], "Bearer") {
		return ""
	}
	return strings.Trim(strings.TrimSpace(fields[1]), "\"'")
}

// AuthJWT verifikasi access token → Locals(user_id, raw_token).
// Role & status tidak dipercaya dari token; lihat RequireRoles.
func AuthJWT(isBlacklisted BlacklistChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := extractBearerToken(c)
		if raw == "" {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Thiếu token đăng nhập")
		}

		if isBlacklisted != nil {
			bl, err := isBlacklisted(c, raw)
			if err != nil {
				log.Println("[ERROR] DB error saat cek blacklist:", err)
				return helper.JsonError(c, fiber.StatusInternalServerError, "Đã xảy ra lỗi máy chủ")
			}
			if bl {
				return helper.JsonError(c, fiber.StatusUnauthorized, "Phiên đã đăng xuất. Vui lòng đăng nhập lại.")
			}
		}

		claims, err := helpersAuth.ParseAccessToken(configs.JWTSecret, raw)
		if err != nil {
			log.Println("[WARN] token ditolak:", err)
			return helper.JsonError(c, fiber.StatusUnauthorized, "Token không hợp lệ hoặc đã hết hạn")
		}
		userID, _ := claims.UserID()

		c.Locals(helper.LocUserID, userID.String())
		helper.SetRawAccessToken(c, raw)
		return c.Next()
	}
}
