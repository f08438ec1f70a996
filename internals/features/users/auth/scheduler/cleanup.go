package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"clubfund_backend/internals/configs"
)

type TokenCleaner interface {
	CleanupExpired(ctx context.Context, olderThan time.Time) (int64, error)
}

// RunBlacklistCleanup sekali jalan; token yang exp-nya lebih tua dari ttlDays dihapus.
func RunBlacklistCleanup(ctx context.Context, cleaner TokenCleaner, ttlDays int, now time.Time) {
	log.Println("[CLEANUP] Menjalankan pembersihan token_blacklist...")
	deleteBefore := now.Add(-time.Duration(ttlDays) * 24 * time.Hour)
	n, err := cleaner.CleanupExpired(ctx, deleteBefore)
	switch {
	case err != nil:
		log.Printf("[CLEANUP ERROR] Gagal hapus token: %v", err)
	case n > 0:
		log.Printf("[CLEANUP] %d token kadaluarsa dihapus", n)
	default:
		log.Println("[CLEANUP] Tidak ada token yang memenuhi syarat dihapus")
	}
}

// RegisterBlacklistCleanup jadwal harian (BLACKLIST_CLEANUP_CRON, default 03:00).
func RegisterBlacklistCleanup(c *cron.Cron, cleaner TokenCleaner) (cron.EntryID, error) {
	ttlDays := configs.GetEnvInt("TOKEN_BLACKLIST_TTL_DAYS", 7)
	spec := configs.GetEnv("BLACKLIST_CLEANUP_CRON", "0 3 * * *")
	return c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		RunBlacklistCleanup(ctx, cleaner, ttlDays, time.Now())
	})
}
