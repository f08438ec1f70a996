package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	helper "clubfund_backend/internals/helpers"
)

func newLimiter(max int, exp time.Duration, key func(c *fiber.Ctx) string, message string) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:          max,
		Expiration:   exp,
		KeyGenerator: key,
		LimitReached: func(c *fiber.Ctx) error {
			return helper.JsonError(c, fiber.StatusTooManyRequests, message)
		},
	})
}

func byIP(c *fiber.Ctx) string { return c.IP() }

// per user kalau sudah login, fallback IP
func byUserOrIP(c *fiber.Ctx) string {
	if id, ok := c.Locals(helper.LocUserID).(string); ok && id != "" {
		return "u:" + id
	}
	return c.IP()
}

// Global limiter: untuk semua endpoint biasa
func GlobalRateLimiter() fiber.Handler {
	return newLimiter(100, 1*time.Minute, byIP, "❌ Quá nhiều yêu cầu. Vui lòng thử lại sau.")
}

// Rate limiter untuk login route (lebih ketat)
func LoginRateLimiter() fiber.Handler {
	return newLimiter(5, 1*time.Minute, byIP, "❌ Đăng nhập sai quá nhiều lần. Vui lòng thử lại sau ít phút.")
}

// Rate limiter untuk register route
func RegisterRateLimiter() fiber.Handler {
	return newLimiter(3, 5*time.Minute, byIP, "❌ Đăng ký quá nhiều lần. Vui lòng đợi vài phút.")
}

// Rate limiter upload bukti transfer
func SubmitRateLimiter() fiber.Handler {
	return newLimiter(10, 1*time.Minute, byUserOrIP, "❌ Tải lên quá nhiều lần. Vui lòng thử lại sau.")
}
