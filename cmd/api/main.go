package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/randevu-scheduler/internal/audit"
	"github.com/BruksfildServices01/randevu-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/randevu-scheduler/internal/db"
	"github.com/BruksfildServices01/randevu-scheduler/internal/handlers"
	"github.com/BruksfildServices01/randevu-scheduler/internal/infra/cache"
	"github.com/BruksfildServices01/randevu-scheduler/internal/infra/lock"
	infraRepo "github.com/BruksfildServices01/randevu-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/randevu-scheduler/internal/infra/storage"
	"github.com/BruksfildServices01/randevu-scheduler/internal/logger"
	"github.com/BruksfildServices01/randevu-scheduler/internal/notify"
	"github.com/BruksfildServices01/randevu-scheduler/internal/routes"
)

func main() {

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	logger.Init("randevu-api", cfg.Env, cfg.LogLevel)

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ======================================================
	// 🔧 INFRA
	// ======================================================
	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("database init failed")
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("database handle failed")
	}
	defer sqlDB.Close()

	required := map[string]handlers.Check{
		"postgres": sqlDB.PingContext,
	}
	optional := map[string]handlers.Check{}

	deps := routes.Deps{
		Config:        cfg,
		Appointments:  infraRepo.NewAppointmentGormRepository(db),
		Users:         infraRepo.NewUserGormRepository(db),
		Locker:        lock.NoopSlotLocker{},
		ProviderCache: cache.Noop{},
	}

	if cfg.RedisEnabled() {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Username: cfg.RedisUsername,
			Password: cfg.RedisPassword,
		})
		defer rdb.Close()

		if err := rdb.Ping(rootCtx).Err(); err != nil {
			log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis not reachable yet")
		}

		deps.Locker = lock.NewRedisSlotLocker(rdb, cfg.LockTTL)
		deps.ProviderCache = cache.NewProviderCache(rdb, cfg.ProviderCacheTTL)
		optional["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	} else {
		log.Info().Msg("redis disabled: slot lock and provider cache off")
	}

	if cfg.S3Enabled() {
		deps.Objects = storage.NewS3Store(cfg)
	} else {
		log.Info().Msg("S3_BUCKET empty: avatar uploads disabled")
	}

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)
	notifier := notify.NewSMSStub()

	deps.AuditLogs = auditLogger
	deps.Audit = auditDispatcher
	deps.Notifier = notifier
	deps.Health = handlers.NewHealthHandler(cfg.Env, required, optional)

	// ======================================================
	// 🌍 HTTP
	// ======================================================
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	routes.RegisterRoutes(r, deps)

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: r,
	}

	go func() {
		log.Info().
			Str("addr", cfg.Addr()).
			Str("env", cfg.Env).
			Str("status_policy", cfg.StatusPolicy).
			Msg("server running")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-rootCtx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}

	// flush queued audit events and notifications
	auditDispatcher.Close()
	notifier.Close()
}
