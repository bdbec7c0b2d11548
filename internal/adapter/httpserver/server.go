package httpserver

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/PrajwalS-26/Sustainability-Tracker/internal/adapter/metrics"
	"github.com/PrajwalS-26/Sustainability-Tracker/internal/app"
	"github.com/PrajwalS-26/Sustainability-Tracker/internal/auth"
	"github.com/PrajwalS-26/Sustainability-Tracker/internal/domain"
	"github.com/PrajwalS-26/Sustainability-Tracker/internal/platform/config"
)

type appService interface {
	Dashboard(ctx context.Context, userID uuid.UUID) (*app.Dashboard, error)
	Profile(ctx context.Context, userID uuid.UUID) (*app.Profile, error)

	LogActivity(ctx context.Context, userID uuid.UUID, input app.LogActivityInput) (*domain.Activity, error)
	ListActivities(ctx context.Context, userID uuid.UUID) ([]domain.ActivityDetail, error)
	ListFactors(ctx context.Context) ([]domain.EmissionFactor, error)
	ListChallenges(ctx context.Context) ([]domain.Challenge, error)

	ListAvailableRewards(ctx context.Context) ([]domain.Reward, error)
	RedeemReward(ctx context.Context, userID, rewardID uuid.UUID) (*app.RedemptionResult, error)
	RedemptionHistory(ctx context.Context, userID uuid.UUID) ([]domain.RedemptionDetail, error)

	AdminStats(ctx context.Context) (*app.AdminStats, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	CreateUser(ctx context.Context, input app.CreateUserInput) (*domain.User, error)
	DeleteUser(ctx context.Context, actorID, targetID uuid.UUID) error
	ListRecentActivities(ctx context.Context, limit int) ([]domain.AdminActivity, error)

	ListAllRewards(ctx context.Context) ([]domain.Reward, error)
	CreateReward(ctx context.Context, params domain.SaveRewardParams) (*domain.Reward, error)
	UpdateReward(ctx context.Context, rewardID uuid.UUID, params domain.SaveRewardParams) error
	DeleteReward(ctx context.Context, rewardID uuid.UUID) error

	CreateChallenge(ctx context.Context, params domain.SaveChallengeParams) (*domain.Challenge, error)
	UpdateChallenge(ctx context.Context, challengeID uuid.UUID, params domain.SaveChallengeParams) error
	DeleteChallenge(ctx context.Context, challengeID uuid.UUID) error
}

type Server struct {
	echo   *echo.Echo
	config *config.Config

	app      appService
	verifier *auth.Verifier

	httpMetrics    *metrics.HTTPMetrics
	metricsHandler http.Handler

	healthChecks []HealthCheck
	startTime    time.Time
}

func NewServer(cfg *config.Config, app appService, verifier *auth.Verifier, httpMetrics *metrics.HTTPMetrics, metricsHandler http.Handler, healthChecks []HealthCheck) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	srv := &Server{
		echo:           e,
		config:         cfg,
		app:            app,
		verifier:       verifier,
		httpMetrics:    httpMetrics,
		metricsHandler: metricsHandler,
		healthChecks:   healthChecks,
		startTime:      time.Now(),
	}

	srv.registerRoutes()

	return srv
}

func (s *Server) Start() error {
	slog.Info("Starting server", "port", s.config.Port)
	if err := s.echo.Start(":" + s.config.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}
