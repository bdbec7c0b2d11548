package httpserver

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/PrajwalS-26/Sustainability-Tracker/internal/app"
	"github.com/PrajwalS-26/Sustainability-Tracker/internal/auth"
	"github.com/PrajwalS-26/Sustainability-Tracker/internal/domain"
	"github.com/PrajwalS-26/Sustainability-Tracker/internal/platform/config"
)

const testJWTSecret = "test-secret-key-32-bytes-long!!!"

// --- Mock implementations ---

type mockAppService struct {
	dashboardFn            func(ctx context.Context, userID uuid.UUID) (*app.Dashboard, error)
	profileFn              func(ctx context.Context, userID uuid.UUID) (*app.Profile, error)
	logActivityFn          func(ctx context.Context, userID uuid.UUID, input app.LogActivityInput) (*domain.Activity, error)
	listActivitiesFn       func(ctx context.Context, userID uuid.UUID) ([]domain.ActivityDetail, error)
	listFactorsFn          func(ctx context.Context) ([]domain.EmissionFactor, error)
	listChallengesFn       func(ctx context.Context) ([]domain.Challenge, error)
	listAvailableRewardsFn func(ctx context.Context) ([]domain.Reward, error)
	redeemRewardFn         func(ctx context.Context, userID, rewardID uuid.UUID) (*app.RedemptionResult, error)
	redemptionHistoryFn    func(ctx context.Context, userID uuid.UUID) ([]domain.RedemptionDetail, error)
	adminStatsFn           func(ctx context.Context) (*app.AdminStats, error)
	listUsersFn            func(ctx context.Context) ([]domain.User, error)
	createUserFn           func(ctx context.Context, input app.CreateUserInput) (*domain.User, error)
	deleteUserFn           func(ctx context.Context, actorID, targetID uuid.UUID) error
	listRecentActivitiesFn func(ctx context.Context, limit int) ([]domain.AdminActivity, error)
	listAllRewardsFn       func(ctx context.Context) ([]domain.Reward, error)
	createRewardFn         func(ctx context.Context, params domain.SaveRewardParams) (*domain.Reward, error)
	updateRewardFn         func(ctx context.Context, rewardID uuid.UUID, params domain.SaveRewardParams) error
	deleteRewardFn         func(ctx context.Context, rewardID uuid.UUID) error
	createChallengeFn      func(ctx context.Context, params domain.SaveChallengeParams) (*domain.Challenge, error)
	updateChallengeFn      func(ctx context.Context, challengeID uuid.UUID, params domain.SaveChallengeParams) error
	deleteChallengeFn      func(ctx context.Context, challengeID uuid.UUID) error
}

func (m *mockAppService) Dashboard(ctx context.Context, userID uuid.UUID) (*app.Dashboard, error) {
	if m.dashboardFn != nil {
		return m.dashboardFn(ctx, userID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAppService) Profile(ctx context.Context, userID uuid.UUID) (*app.Profile, error) {
	if m.profileFn != nil {
		return m.profileFn(ctx, userID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAppService) LogActivity(ctx context.Context, userID uuid.UUID, input app.LogActivityInput) (*domain.Activity, error) {
	if m.logActivityFn != nil {
		return m.logActivityFn(ctx, userID, input)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAppService) ListActivities(ctx context.Context, userID uuid.UUID) ([]domain.ActivityDetail, error) {
	if m.listActivitiesFn != nil {
		return m.listActivitiesFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockAppService) ListFactors(ctx context.Context) ([]domain.EmissionFactor, error) {
	if m.listFactorsFn != nil {
		return m.listFactorsFn(ctx)
	}
	return nil, nil
}

func (m *mockAppService) ListChallenges(ctx context.Context) ([]domain.Challenge, error) {
	if m.listChallengesFn != nil {
		return m.listChallengesFn(ctx)
	}
	return nil, nil
}

func (m *mockAppService) ListAvailableRewards(ctx context.Context) ([]domain.Reward, error) {
	if m.listAvailableRewardsFn != nil {
		return m.listAvailableRewardsFn(ctx)
	}
	return nil, nil
}

func (m *mockAppService) RedeemReward(ctx context.Context, userID, rewardID uuid.UUID) (*app.RedemptionResult, error) {
	if m.redeemRewardFn != nil {
		return m.redeemRewardFn(ctx, userID, rewardID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAppService) RedemptionHistory(ctx context.Context, userID uuid.UUID) ([]domain.RedemptionDetail, error) {
	if m.redemptionHistoryFn != nil {
		return m.redemptionHistoryFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockAppService) AdminStats(ctx context.Context) (*app.AdminStats, error) {
	if m.adminStatsFn != nil {
		return m.adminStatsFn(ctx)
	}
	return &app.AdminStats{}, nil
}

func (m *mockAppService) ListUsers(ctx context.Context) ([]domain.User, error) {
	if m.listUsersFn != nil {
		return m.listUsersFn(ctx)
	}
	return nil, nil
}

func (m *mockAppService) CreateUser(ctx context.Context, input app.CreateUserInput) (*domain.User, error) {
	if m.createUserFn != nil {
		return m.createUserFn(ctx, input)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAppService) DeleteUser(ctx context.Context, actorID, targetID uuid.UUID) error {
	if m.deleteUserFn != nil {
		return m.deleteUserFn(ctx, actorID, targetID)
	}
	return nil
}

func (m *mockAppService) ListRecentActivities(ctx context.Context, limit int) ([]domain.AdminActivity, error) {
	if m.listRecentActivitiesFn != nil {
		return m.listRecentActivitiesFn(ctx, limit)
	}
	return nil, nil
}

func (m *mockAppService) ListAllRewards(ctx context.Context) ([]domain.Reward, error) {
	if m.listAllRewardsFn != nil {
		return m.listAllRewardsFn(ctx)
	}
	return nil, nil
}

func (m *mockAppService) CreateReward(ctx context.Context, params domain.SaveRewardParams) (*domain.Reward, error) {
	if m.createRewardFn != nil {
		return m.createRewardFn(ctx, params)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAppService) UpdateReward(ctx context.Context, rewardID uuid.UUID, params domain.SaveRewardParams) error {
	if m.updateRewardFn != nil {
		return m.updateRewardFn(ctx, rewardID, params)
	}
	return nil
}

func (m *mockAppService) DeleteReward(ctx context.Context, rewardID uuid.UUID) error {
	if m.deleteRewardFn != nil {
		return m.deleteRewardFn(ctx, rewardID)
	}
	return nil
}

func (m *mockAppService) CreateChallenge(ctx context.Context, params domain.SaveChallengeParams) (*domain.Challenge, error) {
	if m.createChallengeFn != nil {
		return m.createChallengeFn(ctx, params)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAppService) UpdateChallenge(ctx context.Context, challengeID uuid.UUID, params domain.SaveChallengeParams) error {
	if m.updateChallengeFn != nil {
		return m.updateChallengeFn(ctx, challengeID, params)
	}
	return nil
}

func (m *mockAppService) DeleteChallenge(ctx context.Context, challengeID uuid.UUID) error {
	if m.deleteChallengeFn != nil {
		return m.deleteChallengeFn(ctx, challengeID)
	}
	return nil
}

// --- Test helpers ---

func newTestServer(t *testing.T, appSvc appService, opts ...func(*Server)) *Server {
	t.Helper()

	e := echo.New()

	srv := &Server{
		echo:      e,
		config:    &config.Config{AppEnv: "test", Port: "8080"},
		app:       appSvc,
		verifier:  auth.NewVerifier(testJWTSecret),
		startTime: time.Now(),
	}

	for _, opt := range opts {
		opt(srv)
	}

	srv.registerRoutes()

	return srv
}

func withHealthChecks(checks ...HealthCheck) func(*Server) {
	return func(s *Server) {
		s.healthChecks = checks
	}
}

// bearerToken mints a valid token for the given identity.
func bearerToken(t *testing.T, userID uuid.UUID, role string) string {
	t.Helper()
	token, err := auth.Sign(testJWTSecret, userID, role, time.Now(), time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}
