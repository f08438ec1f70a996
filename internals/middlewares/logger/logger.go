package logger

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"clubfund_backend/internals/configs"
)

// LoggerMiddleware untuk mencatat semua request (ikut output log global, termasuk file rotasi)
func LoggerMiddleware() fiber.Handler {
	return logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   configs.Location().String(),
		Format:     "[${time}] ${ip} - ${locals:reqid} ${method} ${path} - ${status} - ${latency}\n",
		Output:     configs.LogWriter(),
	})
}
