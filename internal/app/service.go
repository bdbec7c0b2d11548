package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/singleflight"

	"github.com/PrajwalS-26/Sustainability-Tracker/internal/adapter/metrics"
	"github.com/PrajwalS-26/Sustainability-Tracker/internal/domain"
	apperrors "github.com/PrajwalS-26/Sustainability-Tracker/internal/platform/errors"
	"github.com/PrajwalS-26/Sustainability-Tracker/internal/scoring"
)

// Service orchestrates the domain repositories behind the HTTP handlers.
type Service struct {
	users       domain.UserRepository
	factors     domain.FactorRepository
	activities  domain.ActivityRepository
	rewards     domain.RewardRepository
	redemptions domain.RedemptionRepository
	awards      domain.AwardRepository
	challenges  domain.ChallengeRepository
	tips        domain.TipSource

	clock        clockwork.Clock
	awardWeekday time.Weekday
	points       *metrics.PointsMetrics

	// awardGroup collapses concurrent award attempts for the same user and
	// week into a single Grant call.
	awardGroup singleflight.Group
}

type ServiceConfig struct {
	Users       domain.UserRepository
	Factors     domain.FactorRepository
	Activities  domain.ActivityRepository
	Rewards     domain.RewardRepository
	Redemptions domain.RedemptionRepository
	Awards      domain.AwardRepository
	Challenges  domain.ChallengeRepository
	Tips        domain.TipSource

	Clock        clockwork.Clock
	AwardWeekday time.Weekday
	Points       *metrics.PointsMetrics
}

func NewService(cfg ServiceConfig) *Service {
	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &Service{
		users:        cfg.Users,
		factors:      cfg.Factors,
		activities:   cfg.Activities,
		rewards:      cfg.Rewards,
		redemptions:  cfg.Redemptions,
		awards:       cfg.Awards,
		challenges:   cfg.Challenges,
		tips:         cfg.Tips,
		clock:        clock,
		awardWeekday: cfg.AwardWeekday,
		points:       cfg.Points,
	}
}

// Dashboard is everything the dashboard view needs for one user.
type Dashboard struct {
	User             domain.UserWithStats
	Summary          scoring.Summary
	Awarded          bool
	RecentActivities []domain.ActivityDetail
	Breakdown        []domain.CategoryBreakdown
	ActiveGoals      int
	Tips             []string
}

// Dashboard assembles the weekly summary for the user and, on the configured
// award day, credits the bonus for an improved week. The award is guarded by
// the (user, week key) uniqueness constraint, so repeated dashboard requests
// within the same week credit at most once. Awarded reports whether this
// particular call committed the credit.
func (s *Service) Dashboard(ctx context.Context, userID uuid.UUID) (*Dashboard, error) {
	user, err := s.users.GetWithStats(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading user: %w", err)
	}

	now := s.clock.Now()
	windows := scoring.WindowsAt(now)

	thisWeek, err := s.activities.SumEmissions(ctx, userID, windows.ThisWeekFrom, windows.ThisWeekTo)
	if err != nil {
		return nil, fmt.Errorf("summing this week: %w", err)
	}

	lastWeek, err := s.activities.SumEmissions(ctx, userID, windows.LastWeekFrom, windows.LastWeekTo)
	if err != nil {
		return nil, fmt.Errorf("summing last week: %w", err)
	}

	summary := scoring.Summarize(thisWeek, lastWeek)

	awarded := false
	if summary.Award > 0 && now.Weekday() == s.awardWeekday {
		awarded, err = s.grantWeeklyAward(ctx, userID, scoring.WeekKey(now), summary.Award)
		if err != nil {
			return nil, err
		}
		if awarded {
			// Reflect the credit in the balance we just read.
			user.TotalPoints += summary.Award
		}
	}

	recent, err := s.activities.ListRecent(ctx, userID, 5)
	if err != nil {
		return nil, fmt.Errorf("listing recent activities: %w", err)
	}

	breakdown, err := s.activities.CategoryBreakdown(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading category breakdown: %w", err)
	}

	activeGoals, err := s.users.ActiveGoalCount(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("counting active goals: %w", err)
	}

	return &Dashboard{
		User:             *user,
		Summary:          summary,
		Awarded:          awarded,
		RecentActivities: recent,
		Breakdown:        breakdown,
		ActiveGoals:      activeGoals,
		Tips:             s.tips.Tips(ctx, summary.ThisWeek, summary.LastWeek),
	}, nil
}

func (s *Service) grantWeeklyAward(ctx context.Context, userID uuid.UUID, weekKey string, points int) (bool, error) {
	key := userID.String() + ":" + weekKey

	granted, err, _ := s.awardGroup.Do(key, func() (any, error) {
		err := s.awards.Grant(ctx, userID, weekKey, points)
		if errors.Is(err, domain.ErrAwardAlreadyGranted) {
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("granting weekly award: %w", err)
		}
		return true, nil
	})
	if err != nil {
		return false, err
	}

	if granted.(bool) && s.points != nil {
		s.points.WeeklyPointsAwarded.Add(float64(points))
	}
	return granted.(bool), nil
}

// RedemptionResult is the outcome of a committed redemption.
type RedemptionResult struct {
	RewardName string
	NewBalance int
}

// RedeemReward exchanges points for one unit of the reward's stock. The
// exchange is atomic: either the stock decrement, redemption record, and
// balance debit all commit, or nothing changes.
func (s *Service) RedeemReward(ctx context.Context, userID, rewardID uuid.UUID) (*RedemptionResult, error) {
	reward, err := s.rewards.GetByID(ctx, rewardID)
	if err != nil {
		s.countRedemption(err)
		return nil, err
	}

	newBalance, err := s.rewards.Redeem(ctx, userID, rewardID)
	if err != nil {
		s.countRedemption(err)
		return nil, err
	}

	s.countRedemption(nil)
	return &RedemptionResult{RewardName: reward.Name, NewBalance: newBalance}, nil
}

func (s *Service) countRedemption(err error) {
	if s.points == nil {
		return
	}

	result := metrics.RedemptionResultSuccess
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrRewardNotFound):
		result = metrics.RedemptionResultNotFound
	case errors.Is(err, domain.ErrRewardOutOfStock):
		result = metrics.RedemptionResultOutOfStock
	case errors.Is(err, domain.ErrInsufficientPoints):
		result = metrics.RedemptionResultInsufficientPoints
	default:
		result = metrics.RedemptionResultError
	}
	s.points.RedemptionsTotal.WithLabelValues(result).Inc()
}

func (s *Service) ListAvailableRewards(ctx context.Context) ([]domain.Reward, error) {
	return s.rewards.ListAvailable(ctx)
}

func (s *Service) RedemptionHistory(ctx context.Context, userID uuid.UUID) ([]domain.RedemptionDetail, error) {
	return s.redemptions.ListByUser(ctx, userID)
}

// LogActivityInput is the validated payload for logging one activity.
type LogActivityInput struct {
	FactorID         uuid.UUID
	ActivityDate     time.Time
	ConsumptionValue float64
}

// LogActivity converts the consumption into a CO2 quantity via the emission
// factor, derives the points credit, and persists both atomically.
func (s *Service) LogActivity(ctx context.Context, userID uuid.UUID, input LogActivityInput) (*domain.Activity, error) {
	if input.ConsumptionValue <= 0 {
		return nil, apperrors.ValidationError("consumption value must be positive")
	}
	if input.ActivityDate.After(s.clock.Now()) {
		return nil, apperrors.ValidationError("activity date must not be in the future")
	}

	factor, err := s.factors.GetByID(ctx, input.FactorID)
	if err != nil {
		return nil, err
	}

	emission := scoring.Round2(input.ConsumptionValue * factor.CO2PerUnit)

	activity, err := s.activities.Log(ctx, domain.LogActivityParams{
		UserID:             userID,
		FactorID:           factor.ID,
		ActivityDate:       input.ActivityDate,
		ConsumptionValue:   input.ConsumptionValue,
		CalculatedEmission: emission,
		PointsEarned:       activityPoints(emission),
	})
	if err != nil {
		return nil, fmt.Errorf("logging activity: %w", err)
	}

	if s.points != nil {
		s.points.ActivitiesLogged.Inc()
		s.points.EmissionLoggedKg.Add(emission)
	}
	return activity, nil
}

// activityPoints is the engagement credit for one logged activity: one point
// per kg of CO2, with a floor of one so every log counts.
func activityPoints(emission float64) int {
	points := int(emission + 0.5)
	if points < 1 {
		points = 1
	}
	return points
}

func (s *Service) ListActivities(ctx context.Context, userID uuid.UUID) ([]domain.ActivityDetail, error) {
	return s.activities.ListByUser(ctx, userID)
}

func (s *Service) ListFactors(ctx context.Context) ([]domain.EmissionFactor, error) {
	return s.factors.List(ctx)
}

func (s *Service) ListChallenges(ctx context.Context) ([]domain.Challenge, error) {
	return s.challenges.List(ctx)
}

// Profile wraps the user with their points accounting for the profile view.
type Profile struct {
	User         domain.UserWithStats
	PointsEarned int
	PointsSpent  int
	AwardPoints  int
	ActiveGoals  int
}

func (s *Service) Profile(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	user, err := s.users.GetWithStats(ctx, userID)
	if err != nil {
		return nil, err
	}

	earned, err := s.activities.EarnedPoints(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("summing earned points: %w", err)
	}

	spent, err := s.redemptions.SpentPoints(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("summing spent points: %w", err)
	}

	awards, err := s.awards.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing weekly awards: %w", err)
	}

	awardPoints := 0
	for _, a := range awards {
		awardPoints += a.Points
	}

	activeGoals, err := s.users.ActiveGoalCount(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("counting active goals: %w", err)
	}

	return &Profile{
		User:         *user,
		PointsEarned: earned,
		PointsSpent:  spent,
		AwardPoints:  awardPoints,
		ActiveGoals:  activeGoals,
	}, nil
}

// --- admin operations ---

// AdminStats are the platform-wide counts shown on the admin overview.
type AdminStats struct {
	Users      int
	Activities int
	Rewards    int
	Challenges int
}

func (s *Service) AdminStats(ctx context.Context) (*AdminStats, error) {
	users, err := s.users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting users: %w", err)
	}
	activities, err := s.activities.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting activities: %w", err)
	}
	rewards, err := s.rewards.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting rewards: %w", err)
	}
	challenges, err := s.challenges.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting challenges: %w", err)
	}

	return &AdminStats{
		Users:      users,
		Activities: activities,
		Rewards:    rewards,
		Challenges: challenges,
	}, nil
}

func (s *Service) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

func (s *Service) ListRecentActivities(ctx context.Context, limit int) ([]domain.AdminActivity, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.activities.ListRecentGlobal(ctx, limit)
}

// CreateUserInput is the validated payload for creating a user account.
type CreateUserInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	UserType  string
}

func (s *Service) CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	if input.FirstName == "" || input.LastName == "" {
		return nil, apperrors.ValidationError("first and last name are required")
	}
	if input.Email == "" || !strings.Contains(input.Email, "@") {
		return nil, apperrors.ValidationError("a valid email address is required")
	}
	if len(input.Password) < 8 {
		return nil, apperrors.ValidationError("password must be at least 8 characters")
	}
	if input.UserType == "" {
		input.UserType = domain.UserTypeMember
	}
	if input.UserType != domain.UserTypeMember && input.UserType != domain.UserTypeAdmin {
		return nil, apperrors.ValidationError("user type must be member or admin")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	return s.users.Create(ctx, domain.CreateUserParams{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: string(hash),
		UserType:     input.UserType,
	})
}

// DeleteUser removes a user account. Admins cannot delete themselves.
func (s *Service) DeleteUser(ctx context.Context, actorID, targetID uuid.UUID) error {
	if actorID == targetID {
		return apperrors.ValidationError("you cannot delete your own account")
	}
	return s.users.Delete(ctx, targetID)
}

func (s *Service) ListAllRewards(ctx context.Context) ([]domain.Reward, error) {
	return s.rewards.ListAll(ctx)
}

func (s *Service) CreateReward(ctx context.Context, params domain.SaveRewardParams) (*domain.Reward, error) {
	if err := validateReward(params); err != nil {
		return nil, err
	}
	return s.rewards.Create(ctx, params)
}

func (s *Service) UpdateReward(ctx context.Context, rewardID uuid.UUID, params domain.SaveRewardParams) error {
	if err := validateReward(params); err != nil {
		return err
	}
	return s.rewards.Update(ctx, rewardID, params)
}

// DeleteReward removes the reward together with its redemption history.
func (s *Service) DeleteReward(ctx context.Context, rewardID uuid.UUID) error {
	return s.rewards.Delete(ctx, rewardID)
}

func validateReward(params domain.SaveRewardParams) error {
	if params.Name == "" {
		return apperrors.ValidationError("reward name is required")
	}
	if params.PointsRequired <= 0 {
		return apperrors.ValidationError("points required must be positive")
	}
	if params.StockCount < 0 {
		return apperrors.ValidationError("stock count must not be negative")
	}
	return nil
}

func (s *Service) CreateChallenge(ctx context.Context, params domain.SaveChallengeParams) (*domain.Challenge, error) {
	if err := validateChallenge(params); err != nil {
		return nil, err
	}
	return s.challenges.Create(ctx, params)
}

func (s *Service) UpdateChallenge(ctx context.Context, challengeID uuid.UUID, params domain.SaveChallengeParams) error {
	if err := validateChallenge(params); err != nil {
		return err
	}
	return s.challenges.Update(ctx, challengeID, params)
}

func (s *Service) DeleteChallenge(ctx context.Context, challengeID uuid.UUID) error {
	return s.challenges.Delete(ctx, challengeID)
}

func validateChallenge(params domain.SaveChallengeParams) error {
	if params.Name == "" {
		return apperrors.ValidationError("challenge name is required")
	}
	if params.RewardPoints < 0 {
		return apperrors.ValidationError("reward points must not be negative")
	}
	if params.EndDate.Before(params.StartDate) {
		return apperrors.ValidationError("end date must not be before start date")
	}
	return nil
}
