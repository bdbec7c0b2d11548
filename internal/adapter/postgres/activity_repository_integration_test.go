package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PrajwalS-26/Sustainability-Tracker/internal/domain"
)

func logTestActivity(t *testing.T, repo *ActivityRepo, userID, factorID uuid.UUID, date time.Time, emission float64, points int) *domain.Activity {
	t.Helper()

	activity, err := repo.Log(context.Background(), domain.LogActivityParams{
		UserID:             userID,
		FactorID:           factorID,
		ActivityDate:       date,
		ConsumptionValue:   emission * 10,
		CalculatedEmission: emission,
		PointsEarned:       points,
	})
	require.NoError(t, err)
	return activity
}

func TestLogActivity_CreditsPointsAtomically(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewActivityRepo(pool, testStatementTimeout)

	user := createTestUser(t, pool, 0)
	factor := anyFactor(t, pool)

	activity := logTestActivity(t, repo, user.ID, factor.ID, time.Now(), 12.5, 13)

	assert.NotEqual(t, uuid.Nil, activity.ID)
	assert.Equal(t, 13, userBalance(t, pool, user.ID))
}

func TestLogActivity_UnknownUser(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewActivityRepo(pool, testStatementTimeout)

	factor := anyFactor(t, pool)

	_, err := repo.Log(context.Background(), domain.LogActivityParams{
		UserID:             uuid.New(),
		FactorID:           factor.ID,
		ActivityDate:       time.Now(),
		ConsumptionValue:   1,
		CalculatedEmission: 1,
		PointsEarned:       1,
	})
	assert.Error(t, err)
}

func TestSumEmissions_WindowIsHalfOpen(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewActivityRepo(pool, testStatementTimeout)
	ctx := context.Background()

	user := createTestUser(t, pool, 0)
	factor := anyFactor(t, pool)

	base := time.Date(2026, time.August, 24, 0, 0, 0, 0, time.UTC)

	logTestActivity(t, repo, user.ID, factor.ID, base.AddDate(0, 0, -8), 5, 5)  // before window
	logTestActivity(t, repo, user.ID, factor.ID, base.AddDate(0, 0, -7), 10, 10) // at lower bound, included
	logTestActivity(t, repo, user.ID, factor.ID, base.AddDate(0, 0, -1), 20, 20) // inside
	logTestActivity(t, repo, user.ID, factor.ID, base, 40, 40)                   // at upper bound, excluded

	sum, err := repo.SumEmissions(ctx, user.ID, base.AddDate(0, 0, -7), base)
	require.NoError(t, err)
	assert.InDelta(t, 30, sum, 0.001)
}

func TestSumEmissions_NoActivitiesIsZero(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewActivityRepo(pool, testStatementTimeout)

	user := createTestUser(t, pool, 0)

	sum, err := repo.SumEmissions(context.Background(), user.ID, time.Now().AddDate(0, 0, -7), time.Now())
	require.NoError(t, err)
	assert.Zero(t, sum)
}

func TestListRecent_LimitsAndOrders(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewActivityRepo(pool, testStatementTimeout)
	ctx := context.Background()

	user := createTestUser(t, pool, 0)
	factor := anyFactor(t, pool)

	base := time.Date(2026, time.August, 24, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		logTestActivity(t, repo, user.ID, factor.ID, base.AddDate(0, 0, -i), float64(i+1), 1)
	}

	recent, err := repo.ListRecent(ctx, user.ID, 5)
	require.NoError(t, err)
	require.Len(t, recent, 5)

	// Newest first.
	for i := 1; i < len(recent); i++ {
		assert.False(t, recent[i].ActivityDate.After(recent[i-1].ActivityDate))
	}
	assert.Equal(t, factor.ActivityName, recent[0].ActivityName)
}

func TestCategoryBreakdown_GroupsByCategory(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewActivityRepo(pool, testStatementTimeout)
	ctx := context.Background()

	user := createTestUser(t, pool, 0)
	factor := anyFactor(t, pool)

	logTestActivity(t, repo, user.ID, factor.ID, time.Now(), 10, 10)
	logTestActivity(t, repo, user.ID, factor.ID, time.Now(), 5, 5)

	breakdown, err := repo.CategoryBreakdown(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, breakdown, 1)
	assert.Equal(t, factor.Category, breakdown[0].Category)
	assert.Equal(t, 2, breakdown[0].ActivityCount)
	assert.InDelta(t, 15, breakdown[0].TotalEmission, 0.001)
}

func TestEarnedPoints_SumsActivityCredits(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewActivityRepo(pool, testStatementTimeout)

	user := createTestUser(t, pool, 0)
	factor := anyFactor(t, pool)

	logTestActivity(t, repo, user.ID, factor.ID, time.Now(), 10, 10)
	logTestActivity(t, repo, user.ID, factor.ID, time.Now(), 5, 5)

	earned, err := repo.EarnedPoints(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, 15, earned)
}
