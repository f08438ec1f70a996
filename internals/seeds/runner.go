package seeds

import (
	"context"
	"log"

	"gorm.io/gorm"

	"clubfund_backend/internals/configs"
	settingsRepo "clubfund_backend/internals/features/settings/repository"
	"clubfund_backend/internals/seeds/members"
)

// RunAllSeeds dijalankan kalau SEED_ON_START=true.
func RunAllSeeds(db *gorm.DB) {
	//* Settings (singleton dibuat kalau belum ada)
	if _, err := settingsRepo.NewSettingsRepository(db).Get(context.Background()); err != nil {
		log.Printf("❌ Seed settings gagal: %v", err)
	}

	//* Members
	file := configs.GetEnv("SEED_MEMBERS_FILE", "internals/seeds/members/data_members.json")
	if err := members.SeedMembersFromJSON(db, file); err != nil {
		log.Printf("❌ Seed members gagal: %v", err)
	}
}
