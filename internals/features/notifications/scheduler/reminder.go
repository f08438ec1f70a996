package scheduler

import (
	"context"
	"log"
	"time"

	"clubfund_backend/internals/configs"
	"clubfund_backend/internals/features/notifications/service"
	"clubfund_backend/internals/helpers/weeks"

	"github.com/robfig/cron/v3"
)

const DefaultReminderSpec = "0 9 * * 6"

// RegisterWeeklyReminder daftarkan job reminder mingguan (REMINDER_CRON).
func RegisterWeeklyReminder(c *cron.Cron, svc *service.NotificationService) (cron.EntryID, error) {
	spec := configs.GetEnv("REMINDER_CRON", DefaultReminderSpec)
	if spec == "" {
		spec = DefaultReminderSpec
	}
	id, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
		defer cancel()

		week := weeks.Of(time.Now().In(configs.Location()))
		log.Printf("[REMINDER] Menjalankan reminder mingguan %s", week.Key())
		res, err := svc.SendBulkReminder(ctx, week)
		if err != nil {
			log.Printf("[REMINDER ERROR] %v", err)
			return
		}
		if len(res.Failures) > 0 {
			log.Printf("[REMINDER] %d gagal dari %d penerima", len(res.Failures), res.Total)
		}
	})
	if err != nil {
		return 0, err
	}
	log.Printf("[REMINDER] Terjadwal: %q", spec)
	return id, nil
}
