package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"conference-central/cache"
	"conference-central/config"
	"conference-central/database"
	"conference-central/handlers"
	"conference-central/logger"
	"conference-central/router"
	"conference-central/tasks"
)

func main() {
	cfg := config.Load()
	zlog, err := logger.New(cfg.LogLevel, cfg.IsDevelopment())
	if err != nil {
		log.Fatalf("cannot build logger: %v", err)
	}
	defer zlog.Sync()

	sign, err := config.GetSecret("SIGN")
	if err != nil {
		zlog.Fatal("missing token signing secret", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, aggregates, closeStores := openStores(ctx, cfg, zlog)
	defer closeStores()

	var mailer tasks.Mailer = tasks.NewLogMailer(zlog)
	if cfg.SMTPAddr != "" {
		mailer = tasks.NewSMTPMailer(cfg.SMTPAddr, cfg.SMTPFrom)
	}
	processor := tasks.NewProcessor(store, aggregates, mailer, zlog)
	mgr := tasks.NewManager(tasks.NewQueue(cfg.TaskBuffer), processor, zlog, cfg.WorkerCount, cfg.TaskMaxAttempts)
	mgr.Start(ctx)
	mgr.Enqueue(tasks.NewTask(tasks.KindSetAnnouncement, nil))

	scheduler := tasks.NewScheduler(mgr, zlog)
	if err := scheduler.Every(cfg.AnnouncementSchedule, tasks.KindSetAnnouncement); err != nil {
		zlog.Fatal("invalid announcement schedule", zap.String("schedule", cfg.AnnouncementSchedule), zap.Error(err))
	}
	scheduler.Start()

	app := fiber.New(fiber.Config{DisableStartupMessage: !cfg.IsDevelopment()})
	router.SetupRoutes(app, handlers.New(store, aggregates, mgr, zlog, sign, cfg.TokenTTL))

	go func() {
		zlog.Info("http listen", zap.String("addr", cfg.HTTPAddr), zap.String("storage", cfg.Storage))
		if err := app.Listen(cfg.HTTPAddr); err != nil {
			zlog.Fatal("http server error", zap.Error(err))
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	s := <-sigc
	zlog.Info("shutdown signal", zap.String("signal", s.String()))

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelShutdown()

	if err := app.Shutdown(); err != nil {
		zlog.Error("http shutdown error", zap.Error(err))
	}
	scheduler.Stop(shutdownCtx)

	mgr.CloseIntake()
	if drained := mgr.DrainUntil(shutdownCtx); !drained {
		zlog.Warn("task drain timeout")
	} else {
		zlog.Info("task drain complete")
	}
	mgr.Stop()
	zlog.Info("service stopped")
}

// openStores connects the entity store and the aggregate cache selected by
// the configuration. The returned func releases both.
func openStores(ctx context.Context, cfg config.Config, zlog *zap.Logger) (database.Store, cache.Cache, func()) {
	if cfg.Storage == config.StorageMemory {
		zlog.Warn("using in-memory storage, data is lost on restart")
		return database.NewMemoryStore(), cache.NewMemoryCache(), func() {}
	}

	client, db, err := database.DBInit(ctx, cfg.MongoConnString, cfg.MongoDatabase)
	if err != nil {
		zlog.Fatal("cannot open entity store", zap.Error(err))
	}
	if err := database.EnsureIndexes(ctx, db); err != nil {
		zlog.Fatal("cannot create indexes", zap.Error(err))
	}

	redisCache, err := cache.NewRedisCache(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		zlog.Fatal("cannot open aggregate cache", zap.Error(err))
	}

	return database.NewMongoStore(client, db), redisCache, func() {
		if err := redisCache.Close(); err != nil {
			zlog.Warn("cache close error", zap.Error(err))
		}
		if err := client.Disconnect(context.Background()); err != nil {
			zlog.Warn("db disconnect error", zap.Error(err))
		}
	}
}
