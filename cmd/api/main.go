// Eyedea | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/philtech/eyedea/internal/admin"
	"github.com/philtech/eyedea/internal/auth"
	"github.com/philtech/eyedea/internal/config"
	"github.com/philtech/eyedea/internal/core"
	"github.com/philtech/eyedea/internal/dashboard"
	"github.com/philtech/eyedea/internal/health"
	"github.com/philtech/eyedea/internal/idea"
	"github.com/philtech/eyedea/internal/mail"
	"github.com/philtech/eyedea/internal/middleware"
	"github.com/philtech/eyedea/internal/org"
	"github.com/philtech/eyedea/internal/server"
	"github.com/philtech/eyedea/internal/user"
)

const (
	drainDelay = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	genKeys := flag.Bool("generate-keys", false, "generate a JWT key pair and exit")
	flag.Parse()

	if *genKeys {
		if err := generateKeys(*configPath); err != nil {
			slog.Error("key generation failed", "error", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func generateKeys(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if err := auth.GenerateKeyPair(
		cfg.JWT.PrivateKeyPath,
		cfg.JWT.PublicKeyPath,
	); err != nil {
		return err
	}

	slog.Info("JWT key pair written",
		"private", cfg.JWT.PrivateKeyPath,
		"public", cfg.JWT.PublicKeyPath,
	)
	return nil
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected")

	jwtManager, err := auth.NewJWTManager(cfg.JWT)
	if err != nil {
		return err
	}
	logger.Info("JWT manager initialized", "algorithm", "ES256")

	sender := mail.NewSender(
		cfg.Mail.ResendAPIKey,
		cfg.Mail.SenderEmail,
		logger,
	)
	mailQueue := mail.NewQueue(sender, cfg.Mail.QueueSize, logger)

	userRepo := user.NewRepository(db.DB)
	userSvc := user.NewService(userRepo)
	userHandler := user.NewHandler(userSvc)

	authSvc := auth.NewService(
		userSvc, jwtManager, mailQueue, cfg.App.FrontendURL, logger)
	authHandler := auth.NewHandler(authSvc)

	ideaRepo := idea.NewRepository(db.DB)
	ideaSvc := idea.NewService(ideaRepo, userSvc, mailQueue, logger)
	ideaHandler := idea.NewHandler(ideaSvc)

	dashboardRepo := dashboard.NewRepository(db.DB)
	dashboardSvc := dashboard.NewService(dashboardRepo)
	dashboardHandler := dashboard.NewHandler(dashboardSvc)

	orgRepo := org.NewRepository(db.DB)
	orgSvc := org.NewService(orgRepo, userSvc, ideaSvc, logger)
	orgHandler := org.NewHandler(orgSvc)

	healthHandler := health.NewHandler(db, redis)

	adminHandler := admin.NewHandler(admin.HandlerConfig{
		DBStats:    db.Stats,
		RedisStats: redis.PoolStats,
		DBPing:     db.Ping,
		RedisPing:  redis.Ping,
	})

	srv := server.New(server.Config{
		ServerConfig: cfg.Server,
		CORSConfig:   cfg.CORS,
		Production:   cfg.App.Environment == "production",
		Logger:       logger,
	})

	router := srv.Router()

	router.Use(
		middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
			Limit: middleware.PerMinute(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
			),
			FailOpen: true,
		}).Handler,
	)

	healthHandler.RegisterRoutes(router)

	router.Get("/.well-known/jwks.json", jwtManager.GetJWKSHandler())

	authenticator := middleware.Authenticator(authSvc)
	adminOnly := middleware.RequireAdmin

	// Login and password-reset get a tighter, per-IP budget.
	loginLimiter := middleware.NewRateLimiter(
		redis.Client,
		middleware.RateLimitConfig{
			Limit:    middleware.PerMinute(10, 5),
			KeyFunc:  middleware.KeyByIP,
			FailOpen: true,
		},
	).Handler

	router.Route("/api", func(r chi.Router) {
		healthHandler.RegisterAPIRoutes(r)
		orgHandler.RegisterPublicRoutes(r)

		authHandler.RegisterRoutes(r, authenticator, loginLimiter)
		ideaHandler.RegisterRoutes(r, authenticator)
		dashboardHandler.RegisterRoutes(r, authenticator)

		userHandler.RegisterAdminRoutes(r, authenticator, adminOnly)
		orgHandler.RegisterAdminRoutes(r, authenticator, adminOnly)
		adminHandler.RegisterRoutes(r, authenticator, adminOnly)
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	healthHandler.SetShutdown(true)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if err := mailQueue.Close(shutdownCtx); err != nil {
		logger.Error("mail queue drain error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
