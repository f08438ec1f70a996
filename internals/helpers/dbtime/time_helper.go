// file: internals/helpers/dbtime/time_helper.go
package dbtime

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"clubfund_backend/internals/configs"
)

// Locals yang bisa di-set middleware/test untuk override zona waktu
const LocClubLoc = "club_loc"

// GetClubLocation:
// 1) c.Locals("club_loc") kalau ada
// 2) fallback configs.Location() (APP_TIMEZONE)
func GetClubLocation(c *fiber.Ctx) *time.Location {
	if c != nil {
		if loc, ok := c.Locals(LocClubLoc).(*time.Location); ok && loc != nil {
			return loc
		}
	}
	return configs.Location()
}

// NowInClub "sekarang" di zona klub; dipakai untuk menentukan minggu berjalan.
func NowInClub(c *fiber.Ctx) time.Time {
	return time.Now().In(GetClubLocation(c))
}
