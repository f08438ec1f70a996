package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/utils"
	"github.com/robfig/cron/v3"

	"clubfund_backend/internals/configs"
	database "clubfund_backend/internals/databases"
	notifScheduler "clubfund_backend/internals/features/notifications/scheduler"
	notifService "clubfund_backend/internals/features/notifications/service"
	authScheduler "clubfund_backend/internals/features/users/auth/scheduler"
	helperOSS "clubfund_backend/internals/helpers/oss"
	middlewares "clubfund_backend/internals/middlewares"
	routes "clubfund_backend/internals/route"
	routeDetails "clubfund_backend/internals/route/details"
	"clubfund_backend/internals/seeds"
)

func main() {
	configs.LoadEnv()
	configs.InitLogOutput()

	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		BodyLimit:               configs.GetEnvInt("BODY_LIMIT_MB", 10) * 1024 * 1024,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
	})

	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())

	// 🔎 Request-ID + timeout per request
	app.Use(func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = utils.UUID()
		}
		c.Set("X-Request-ID", id)
		c.Locals("reqid", id)
		ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	})

	middlewares.SetupMiddlewares(app)

	// 🔌 DB connect + pool + migrasi + warm-up
	database.ConnectDB()
	database.TunePool()
	if err := database.Migrate(database.DB); err != nil {
		log.Fatalf("❌ Migrasi gagal: %v", err)
	}
	if configs.GetEnvBool("SEED_ON_START", false) {
		seeds.RunAllSeeds(database.DB)
	}
	database.WarmUpQueries()

	// ☁️ OSS opsional; tanpa OSS upload bukti/avatar → 503
	storage, err := helperOSS.NewOSSServiceFromEnv("clubfund/")
	if err != nil {
		if !errors.Is(err, helperOSS.ErrOSSNotConfigured) {
			log.Printf("[ERROR] OSS init: %v", err)
		} else {
			log.Println("[WARN] ALI_OSS_* belum diset, upload gambar nonaktif")
		}
		storage = nil
	}

	services := routeDetails.NewServices(database.DB, storage, notifService.NewMailerFromEnv())

	// ⏱ cron setelah DB siap
	scheduler := cron.New(
		cron.WithLocation(configs.Location()),
		cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)),
	)
	if _, err := notifScheduler.RegisterWeeklyReminder(scheduler, services.Notifications); err != nil {
		log.Printf("[ERROR] jadwal reminder tidak valid: %v", err)
	}
	if _, err := authScheduler.RegisterBlacklistCleanup(scheduler, services.Tokens); err != nil {
		log.Printf("[ERROR] jadwal cleanup token tidak valid: %v", err)
	}
	scheduler.Start()

	routes.SetupRoutes(app, services)

	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := configs.GetEnv("PORT", "3000")

	go func() {
		log.Printf("✅ Listening on :%s", port)
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown: cron → http → pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	<-scheduler.Stop().Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	if sqlDB, err := database.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
