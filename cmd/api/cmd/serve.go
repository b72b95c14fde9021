// AngelaMos | 2026
// serve.go

package cmd

import (
	"context"
	"database/sql"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/attorneywenn/Pragati-Backend-2025/internal/admin"
	"github.com/attorneywenn/Pragati-Backend-2025/internal/auth"
	"github.com/attorneywenn/Pragati-Backend-2025/internal/core"
	"github.com/attorneywenn/Pragati-Backend-2025/internal/health"
	"github.com/attorneywenn/Pragati-Backend-2025/internal/metrics"
	"github.com/attorneywenn/Pragati-Backend-2025/internal/middleware"
	"github.com/attorneywenn/Pragati-Backend-2025/internal/notification"
	"github.com/attorneywenn/Pragati-Backend-2025/internal/organizer"
	"github.com/attorneywenn/Pragati-Backend-2025/internal/server"
	"github.com/attorneywenn/Pragati-Backend-2025/internal/user"
)

const drainDelay = 5 * time.Second

var (
	serverHost string
	serverPort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the HTTP server. Both database stores and Redis must be
reachable; the process exits on SIGINT or SIGTERM after draining
in-flight requests.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serverHost, "host", "", "server host address")
	serveCmd.Flags().IntVar(&serverPort, "port", 0, "server port")
}

//nolint:funlen // bootstrap code is inherently verbose
func runServer() error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	if serverHost != "" {
		cfg.Server.Host = serverHost
	}
	if serverPort != 0 {
		cfg.Server.Port = serverPort
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()
	ctx = logger.WithContext(ctx)

	logger.Info().
		Str("name", cfg.App.Name).
		Str("version", cfg.App.Version).
		Str("environment", cfg.App.Environment).
		Msg("starting application")

	telemetry, err := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to initialize telemetry")
	}

	mainDB, err := core.NewDatabase(ctx, core.StoreMain, cfg.Database)
	if err != nil {
		return err
	}
	defer closeWithLog(logger, "main database", mainDB.Close)

	txnDB, err := core.NewDatabase(ctx, core.StoreTransactions, cfg.TransactionsDatabase)
	if err != nil {
		return err
	}
	defer closeWithLog(logger, "transactions database", txnDB.Close)

	logger.Info().
		Int("main_max_open_conns", cfg.Database.MaxOpenConns).
		Int("txn_max_open_conns", cfg.TransactionsDatabase.MaxOpenConns).
		Msg("databases connected")

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer closeWithLog(logger, "redis", redis.Close)

	jwtManager, err := auth.NewJWTManager(cfg.JWT)
	if err != nil {
		return err
	}
	revocations := auth.NewRevocations(redis.Client)
	jwtManager.WithRevocations(revocations)
	logger.Info().
		Str("algorithm", "ES256").
		Str("key_id", jwtManager.KeyID()).
		Msg("JWT manager initialized")

	mainStore := mainDB.Store()
	txnStore := txnDB.Store()

	userHandler := user.NewHandler(user.NewService(mainStore, user.NewRepository))
	authHandler := auth.NewHandler(revocations)
	notificationHandler := notification.NewHandler(
		notification.NewService(mainStore, notification.NewRepository),
	)
	organizerHandler := organizer.NewHandler(
		organizer.NewService(mainStore, organizer.NewRepository),
	)
	adminHandler := admin.NewHandler(
		admin.NewService(admin.ServiceConfig{
			MainStore:         mainStore,
			TransactionsStore: txnStore,
		}),
		admin.HandlerConfig{
			Stores: []admin.StoreProbe{
				{Name: core.StoreMain, Stats: mainDB.DB.Stats, Ping: mainDB.Ping},
				{Name: core.StoreTransactions, Stats: txnDB.DB.Stats, Ping: txnDB.Ping},
			},
			RedisStats: redis.Client.PoolStats,
			RedisPing:  redis.Ping,
		},
	)

	healthHandler := health.NewHandler(
		health.Dependency{Name: "database_" + core.StoreMain, Checker: mainDB},
		health.Dependency{Name: "database_" + core.StoreTransactions, Checker: txnDB},
		health.Dependency{Name: "redis", Checker: redis},
	)

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})
	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	if cfg.Metrics.Enabled {
		router.Use(metrics.HTTPMiddleware)
	}
	router.Use(
		middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
			Limit:    middleware.PerMinute(cfg.RateLimit.Requests, cfg.RateLimit.Burst),
			FailOpen: true,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)
	router.Get("/.well-known/jwks.json", jwtManager.JWKSHandler())

	if cfg.Metrics.Enabled {
		metrics.Init(cfg.App.Version, cfg.App.Environment)
		metrics.RegisterRuntimeCollectors()
		router.Handle(cfg.Metrics.Path, metrics.Handler())

		collector := metrics.NewDBCollector(map[string]func() sql.DBStats{
			core.StoreMain:         mainDB.DB.Stats,
			core.StoreTransactions: txnDB.DB.Stats,
		})
		go collector.Start(ctx, cfg.Metrics.CollectInterval)
		defer collector.Stop()
	}

	authenticator := middleware.Authenticator(jwtManager)
	roleLimiter := middleware.RoleRateLimiter(
		redis.Client,
		map[int]middleware.RoleLimit{
			middleware.AdminRoleID: {
				RequestsPerMinute: cfg.RateLimit.Requests * 5,
				BurstSize:         cfg.RateLimit.Burst * 5,
			},
		},
		middleware.RoleLimit{
			RequestsPerMinute: cfg.RateLimit.Requests,
			BurstSize:         cfg.RateLimit.Burst,
		},
	)
	adminOnly := func(next http.Handler) http.Handler {
		return middleware.RequireAdmin(roleLimiter(next))
	}

	router.Route("/v1", func(r chi.Router) {
		authHandler.RegisterRoutes(r, authenticator)
		userHandler.RegisterRoutes(r, authenticator)
		notificationHandler.RegisterRoutes(r, authenticator)
		notificationHandler.RegisterAdminRoutes(r, authenticator, adminOnly)
		organizerHandler.RegisterAdminRoutes(r, authenticator, adminOnly)
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
		logger.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error().Err(err).Msg("server shutdown error")
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("telemetry shutdown error")
		}
	}

	logger.Info().Msg("application stopped")
	return nil
}

func closeWithLog(logger zerolog.Logger, name string, closeFn func() error) {
	if err := closeFn(); err != nil {
		logger.Error().Err(err).Str("resource", name).Msg("close failed")
	}
}
