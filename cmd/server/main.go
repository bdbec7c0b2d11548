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

	"github.com/PrajwalS-26/Sustainability-Tracker/internal/adapter/httpserver"
	"github.com/PrajwalS-26/Sustainability-Tracker/internal/adapter/metrics"
	"github.com/PrajwalS-26/Sustainability-Tracker/internal/adapter/postgres"
	"github.com/PrajwalS-26/Sustainability-Tracker/internal/app"
	"github.com/PrajwalS-26/Sustainability-Tracker/internal/auth"
	"github.com/PrajwalS-26/Sustainability-Tracker/internal/platform/config"
	"github.com/PrajwalS-26/Sustainability-Tracker/internal/platform/logging"
	"github.com/PrajwalS-26/Sustainability-Tracker/internal/tips"
)

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

	pool, err := postgres.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := postgres.RunMigrationsWithLock(ctx, pool); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	return pool
}

func runGracefulShutdown(srv *httpserver.Server, shutdownTimeout time.Duration) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		close(done)
	}()

	return done
}

func main() {
	cfg := setupConfig()

	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port)

	pool := setupDB(cfg)
	defer pool.Close()

	registry := metrics.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)
	pointsMetrics := metrics.NewPointsMetrics(registry)

	awardWeekday, err := config.ParseWeekday(cfg.AwardWeekday)
	if err != nil {
		slog.Error("Invalid award weekday", "error", err)
		os.Exit(1)
	}

	appSvc := app.NewService(app.ServiceConfig{
		Users:        postgres.NewUserRepo(pool),
		Factors:      postgres.NewFactorRepo(pool),
		Activities:   postgres.NewActivityRepo(pool, cfg.StatementTimeout),
		Rewards:      postgres.NewRewardRepo(pool, cfg.StatementTimeout),
		Redemptions:  postgres.NewRedemptionRepo(pool),
		Awards:       postgres.NewAwardRepo(pool, cfg.StatementTimeout),
		Challenges:   postgres.NewChallengeRepo(pool),
		Tips:         tips.NewStaticSource(),
		Clock:        clockwork.NewRealClock(),
		AwardWeekday: awardWeekday,
		Points:       pointsMetrics,
	})

	healthChecks := []httpserver.HealthCheck{
		{Name: "database", Check: pool.Ping},
	}

	srv := httpserver.NewServer(cfg, appSvc, auth.NewVerifier(cfg.JWTSecret), httpMetrics, metrics.Handler(registry), healthChecks)

	done := runGracefulShutdown(srv, cfg.ShutdownTimeout)

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
