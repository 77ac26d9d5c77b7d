package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"

	"github.com/miketud/realestateapp/internal/adapter/geocode"
	"github.com/miketud/realestateapp/internal/adapter/httpserver"
	"github.com/miketud/realestateapp/internal/adapter/metrics"
	"github.com/miketud/realestateapp/internal/adapter/postgres"
	"github.com/miketud/realestateapp/internal/adapter/redis"
	"github.com/miketud/realestateapp/internal/app"
	"github.com/miketud/realestateapp/internal/platform/config"
	"github.com/miketud/realestateapp/internal/platform/logging"
	"github.com/miketud/realestateapp/internal/platform/version"
)

const zipCacheEvictionInterval = 10 * time.Minute

func runGracefulShutdown(srv *httpserver.Server) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		close(done)
	}()

	return done
}

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func setupDB(cfg *config.Config) *pgxpool.Pool {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := postgres.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := postgres.RunMigrationsWithLock(ctx, db); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	return db
}

// setupRedis returns nil when REDIS_URL is unset; the ZIP cache then runs
// on its in-memory layer alone.
func setupRedis(ctx context.Context, cfg *config.Config, reg prometheus.Registerer) *goredis.Client {
	if cfg.RedisURL == "" {
		slog.Info("REDIS_URL not set, ZIP cache is memory only")
		return nil
	}

	client, err := redis.NewClient(ctx, cfg.RedisURL, metrics.NewRedisMetrics(reg))
	if err != nil {
		slog.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	return client
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port, "version", version.Get().String())

	registry := metrics.NewRegistry()

	pool := setupDB(cfg)
	defer pool.Close()

	healthChecks := []httpserver.HealthCheck{
		{Name: "postgres", Check: pool.Ping},
	}

	// Typed as the interface so a missing client stays a true nil.
	var rdb goredis.Cmdable
	if redisClient := setupRedis(context.Background(), cfg, registry); redisClient != nil {
		defer func() { _ = redisClient.Close() }()
		rdb = redisClient
		healthChecks = append(healthChecks, httpserver.HealthCheck{
			Name:  "redis",
			Check: func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
		})
	}

	geocoder := geocode.New(geocode.Config{
		BaseURL:       cfg.GeocoderBaseURL,
		Timeout:       cfg.GeocoderTimeout,
		RatePerSecond: cfg.GeocoderRate,
		Clock:         clock,
	}, metrics.NewGeocoderMetrics(registry))

	zipCache := redis.NewZipCache(rdb, geocoder, cfg.ZipCacheTTL, clock, metrics.NewCacheMetrics(registry))
	stopEviction := zipCache.StartEvictionTimer(zipCacheEvictionInterval)
	defer stopEviction()

	appSvc := app.NewService(app.Repositories{
		Properties:   postgres.NewPropertyRepo(pool),
		Purchases:    postgres.NewPurchaseRepo(pool),
		Loans:        postgres.NewLoanRepo(pool),
		RentRoll:     postgres.NewRentRollRepo(pool),
		PaymentLog:   postgres.NewPaymentLogRepo(pool),
		LoanPayments: postgres.NewLoanPaymentRepo(pool),
		Transactions: postgres.NewTransactionRepo(pool),
		Contacts:     postgres.NewContactRepo(pool),
	}, zipCache, clock)

	srv := httpserver.NewServer(cfg, appSvc, httpserver.Ledgers{
		RentRoll:     appSvc.RentRoll,
		PaymentLog:   appSvc.PaymentLog,
		LoanPayments: appSvc.LoanPayments,
	}, registry, healthChecks)

	done := runGracefulShutdown(srv)

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
