package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/klantroef/medialink/config"
	appmodel "github.com/klantroef/medialink/internal/app/model"
	apprepository "github.com/klantroef/medialink/internal/app/repository"
	appserver "github.com/klantroef/medialink/internal/app/server"
	appservice "github.com/klantroef/medialink/internal/app/service"
	httpUtil "github.com/klantroef/medialink/internal/http/util"
	"github.com/klantroef/medialink/internal/infra/logger"
	infraNATS "github.com/klantroef/medialink/internal/infra/nats"
	infraPostgres "github.com/klantroef/medialink/internal/infra/postgres"
	infraPrometheus "github.com/klantroef/medialink/internal/infra/prometheus"
	infraRedis "github.com/klantroef/medialink/internal/infra/redis"
	"go.uber.org/zap"
)

const defaultSessionTTL = 24 * time.Hour

func main() {
	ctx := context.Background()

	isDev := os.Getenv("APP_ENV") != "production"
	log := logger.MustInit(logger.Config{
		Development: isDev,
		Level:       os.Getenv("LOG_LEVEL"),
	})
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config", zap.Error(err))
	}

	if cfg.Server.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	sessionTTL := defaultSessionTTL
	if cfg.Server.SessionTTL != "" {
		if parsed, err := time.ParseDuration(cfg.Server.SessionTTL); err == nil {
			sessionTTL = parsed
		} else {
			log.Warn("Invalid session TTL, using default",
				zap.String("session_ttl", cfg.Server.SessionTTL),
				zap.Duration("default", defaultSessionTTL))
		}
	}

	log.Info("Configuration loaded successfully",
		zap.String("addr", cfg.Server.Addr),
		zap.String("postgres_user", cfg.Postgres.User),
		zap.String("postgres_host", cfg.Postgres.Host),
		zap.Int("postgres_port", cfg.Postgres.Port),
		zap.String("postgres_db", cfg.Postgres.Database),
		zap.String("redis_host", cfg.Redis.Host),
		zap.Int("redis_port", cfg.Redis.Port),
		zap.String("nats_host", cfg.NATS.Host),
		zap.Int("nats_port", cfg.NATS.Port),
	)

	gormDB, err := infraPostgres.NewGorm(cfg.Postgres)
	if err != nil {
		log.Fatal("Failed to open GORM connection", zap.Error(err))
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Fatal("Failed to access underlying SQL DB", zap.Error(err))
	}
	defer sqlDB.Close()

	if err := infraPostgres.AutoMigrate(ctx, gormDB,
		&appmodel.MediaAsset{},
		&appmodel.AdminUser{},
		&appmodel.ViewEvent{},
	); err != nil {
		log.Fatal("Failed to run database migrations", zap.Error(err))
	}

	pool, err := infraPostgres.NewPool(ctx, cfg.Postgres)
	if err != nil {
		log.Fatal("Failed to connect to Postgres", zap.Error(err))
	}
	defer pool.Close()

	log.Info("Connected to Postgres successfully")

	redisClient, err := infraRedis.NewClient(ctx, cfg.Redis)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	log.Info("Connected to Redis successfully")

	natsConn, js, err := infraNATS.Connect(cfg.NATS)
	if err != nil {
		log.Fatal("Failed to connect to NATS", zap.Error(err))
	}
	defer natsConn.Drain()
	log.Info("Connected to NATS successfully", zap.Bool("jetstream_ready", js != nil))

	if !isDev {
		promServer := infraPrometheus.NewServer(cfg.Prometheus)
		go func() {
			log.Info("Starting Prometheus metrics server",
				zap.Int("port", cfg.Prometheus.Port))
			if err := promServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("Prometheus metrics server stopped unexpectedly", zap.Error(err))
			}
		}()
		defer func() {
			if err := promServer.Close(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Warn("Failed to close Prometheus server", zap.Error(err))
			}
		}()
	} else {
		log.Info("Skipping Prometheus metrics server in development mode")
	}

	assetRepo := apprepository.NewCachedAssetRepository(
		apprepository.NewAssetRepository(gormDB), redisClient, log)
	userRepo := apprepository.NewUserRepository(gormDB)
	eventRepo := apprepository.NewViewEventRepository(gormDB)

	tokens := httpUtil.NewJWTManager([]byte(cfg.Server.JWTSecret), sessionTTL)

	publisher := appservice.NewViewPublisher(js)
	viewService := appservice.NewViewService(assetRepo, eventRepo, publisher, redisClient, log)
	streamService := appservice.NewStreamLinkService(assetRepo, viewService, log)
	mediaService := appservice.NewMediaService(assetRepo)
	authService := appservice.NewAuthService(userRepo, tokens)

	consumer := appservice.NewViewConsumer(js, log, redisClient)
	if err := consumer.Start(); err != nil {
		log.Fatal("Failed to start view event consumer", zap.Error(err))
	}

	reconciler := appservice.NewCounterReconciler(log, assetRepo, eventRepo, redisClient, 10*time.Minute)
	reconciler.Start()
	defer reconciler.Stop()

	server := appserver.New(appserver.Dependencies{
		Logger:    log,
		Postgres:  pool,
		Redis:     redisClient,
		NATS:      natsConn,
		JetStream: js,
		Auth:      authService,
		Media:     mediaService,
		Views:     viewService,
		Streams:   streamService,
		Tokens:    tokens,
	})

	if err := server.Listen(cfg.Server.Addr); err != nil {
		log.Fatal("Fiber server exited", zap.Error(err))
	}
}
