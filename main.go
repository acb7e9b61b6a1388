package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"sweat-battle-system/config"
	"sweat-battle-system/handlers"
	"sweat-battle-system/logging"
	"sweat-battle-system/middleware"
	"sweat-battle-system/services"
	"sweat-battle-system/storage"
	"sweat-battle-system/utils"
	"sweat-battle-system/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("invalid configuration", err, nil)
	}

	db, err := storage.Open(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		logging.Fatal("failed to open database", err, logging.Fields{"driver": cfg.DBDriver})
	}
	store := storage.NewStore(db)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	notifications := services.NewNotificationService(store)

	engineOpts := []services.EngineOption{services.WithMaxRetries(cfg.BattleMaxRetries)}
	if cfg.R2.Enabled() {
		r2, err := utils.NewR2Client(ctx, cfg.R2)
		if err != nil {
			logging.Fatal("failed to initialize R2 client", err, nil)
		}
		engineOpts = append(engineOpts, services.WithArchiver(services.NewR2BattleArchiver(r2)))
	} else {
		logging.Warn("R2 not configured, finished battles will not be archived", nil)
	}
	engine := services.NewBattleEngine(store, notifications, engineOpts...)

	var health services.HealthProvider
	if cfg.HealthServiceURL != "" {
		health = services.NewHTTPHealthProvider(cfg.HealthServiceURL, cfg.HealthServiceToken)
	} else {
		logging.Warn("HEALTH_SERVICE_URL not set, activity sync disabled", nil)
	}
	progression := services.NewProgressionService(store, health)

	reconciler := services.NewRewardReconciler(store, notifications)
	sched, err := reconciler.Start(cfg.RewardReconcileInterval)
	if err != nil {
		logging.Fatal("failed to start reward reconciler", err, nil)
	}
	defer func() { _ = sched.Shutdown() }()

	if health != nil && cfg.ActivitySyncInterval > 0 {
		workers.NewActivitySyncWorker(store, progression, cfg.ActivitySyncInterval).Start(ctx)
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 1 * 1024 * 1024,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.AllowedOrigins, ","),
		AllowMethods:     "GET,POST,PATCH,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID, X-User-ID",
		ExposeHeaders:    "Content-Length, Content-Type, X-Request-ID",
		AllowCredentials: true,
		MaxAge:           86400,
	}))
	app.Use(middleware.GatewayAuthMiddleware(cfg.ServiceToken))

	handlers.SetupBattleRoutes(app, engine)
	handlers.SetupProgressionRoutes(app, progression, notifications)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			logging.Error("server error", err, nil)
			stop()
		}
	}()

	logging.Info("server running", logging.Fields{
		"port":             cfg.Port,
		"db_driver":        cfg.DBDriver,
		"allowed_origins":  cfg.AllowedOrigins,
		"reconcile_every":  cfg.RewardReconcileInterval.String(),
		"activity_sync_on": health != nil && cfg.ActivitySyncInterval > 0,
	})

	<-ctx.Done()
	logging.Info("shutting down server", nil)
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logging.Error("server shutdown failed", err, nil)
	}
}
