package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"clubfund_backend/internals/configs"
	contribModel "clubfund_backend/internals/features/contributions/contributions/model"
	closeModel "clubfund_backend/internals/features/contributions/monthly_closes/model"
	notifModel "clubfund_backend/internals/features/notifications/model"
	settingsModel "clubfund_backend/internals/features/settings/model"
	authModel "clubfund_backend/internals/features/users/auth/model"
	memberModel "clubfund_backend/internals/features/users/members/model"
)

var DB *gorm.DB

func ConnectDB() {
	log.Println("🔌 Koneksi ke PostgreSQL...")

	// kalau pakai PgBouncer, arahkan host/port ke PgBouncer dan biarkan PreferSimpleProtocol=true
	dsn := configs.GetEnv("DATABASE_URL")
	if dsn == "" {
		dsn = fmt.Sprintf(
			"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=clubfund&options=-c statement_timeout=3000",
			configs.GetEnv("DB_USER"),
			configs.GetEnv("DB_PASSWORD"),
			configs.GetEnv("DB_HOST", "localhost"),
			configs.GetEnv("DB_PORT", "5432"),
			configs.GetEnv("DB_NAME", "clubfund"),
			configs.GetEnv("DB_SSLMODE", "require"),
		)
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger:  configs.NewGormLogger(),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		log.Fatalf("❌ Gagal konek DB: %v", err)
	}
	DB = db
	log.Println("✅ DB connected.")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(configs.GetEnvInt("DB_MAX_OPEN_CONNS", 20))
	sqlDB.SetMaxIdleConns(configs.GetEnvInt("DB_MAX_IDLE_CONNS", 10))
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

/* ==========================
   Migrasi
========================== */

// index & constraint yang tidak bisa diekspresikan lewat tag gorm
var postMigrateSQL = []string{
	// satu kontribusi live per member per minggu
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_contributions_live_week
	   ON contributions (contribution_member_id, contribution_year, contribution_week_number)
	   WHERE contribution_status <> 'REJECTED'`,
	`ALTER TABLE contributions DROP CONSTRAINT IF EXISTS fk_contributions_member`,
	`ALTER TABLE contributions ADD CONSTRAINT fk_contributions_member
	   FOREIGN KEY (contribution_member_id) REFERENCES members(member_id) ON DELETE CASCADE`,
}

// Migrate AutoMigrate semua tabel + index parsial. Dimatikan dengan DB_AUTO_MIGRATE=false.
func Migrate(db *gorm.DB) error {
	if !configs.GetEnvBool("DB_AUTO_MIGRATE", true) {
		log.Println("[INFO] DB_AUTO_MIGRATE=false, migrasi dilewati")
		return nil
	}
	if err := db.AutoMigrate(
		&memberModel.MemberModel{},
		&contribModel.ContributionModel{},
		&settingsModel.SettingsModel{},
		&closeModel.MonthlyCloseModel{},
		&authModel.TokenBlacklist{},
		&notifModel.NotificationModel{},
	); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return db.Transaction(func(tx *gorm.DB) error {
		for _, q := range postMigrateSQL {
			if err := tx.Exec(q).Error; err != nil {
				return fmt.Errorf("post-migrate: %w", err)
			}
		}
		return nil
	})
}

func WarmUpQueries() {
	go func() {
		time.Sleep(500 * time.Millisecond)
		if err := Ping(); err != nil {
			log.Printf("warm-up ping err: %v", err)
			return
		}
		// settings dibaca hampir di setiap request member
		DB.Exec("SELECT 1 FROM settings LIMIT 1")
	}()
}

func Ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
