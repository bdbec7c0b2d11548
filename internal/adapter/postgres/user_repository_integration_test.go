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

func TestCreateUser_Defaults(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewUserRepo(pool)
	ctx := context.Background()

	user, err := repo.Create(ctx, domain.CreateUserParams{
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Email:        "ada@example.com",
		PasswordHash: "hash",
		UserType:     domain.UserTypeMember,
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Zero(t, user.TotalPoints)
	assert.False(t, user.DateJoined.IsZero())
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewUserRepo(pool)
	ctx := context.Background()

	params := domain.CreateUserParams{
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Email:        "ada@example.com",
		PasswordHash: "hash",
		UserType:     domain.UserTypeMember,
	}

	_, err := repo.Create(ctx, params)
	require.NoError(t, err)

	_, err = repo.Create(ctx, params)
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestGetUser_NotFound(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewUserRepo(pool)

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestGetWithStats_AggregatesActivities(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewUserRepo(pool)
	activityRepo := NewActivityRepo(pool, testStatementTimeout)
	ctx := context.Background()

	user := createTestUser(t, pool, 0)
	factor := anyFactor(t, pool)

	logTestActivity(t, activityRepo, user.ID, factor.ID, time.Now(), 10, 10)
	logTestActivity(t, activityRepo, user.ID, factor.ID, time.Now(), 5, 5)

	stats, err := repo.GetWithStats(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalActivities)
	assert.InDelta(t, 15, stats.TotalEmission, 0.001)
	assert.Equal(t, 15, stats.TotalPoints)
}

func TestGetWithStats_NoActivities(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewUserRepo(pool)

	user := createTestUser(t, pool, 0)

	stats, err := repo.GetWithStats(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Zero(t, stats.TotalActivities)
	assert.Zero(t, stats.TotalEmission)
}

func TestDeleteUser_RemovesActivities(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewUserRepo(pool)
	activityRepo := NewActivityRepo(pool, testStatementTimeout)
	ctx := context.Background()

	user := createTestUser(t, pool, 0)
	factor := anyFactor(t, pool)
	logTestActivity(t, activityRepo, user.ID, factor.ID, time.Now(), 10, 10)

	require.NoError(t, repo.Delete(ctx, user.ID))

	_, err := repo.GetByID(ctx, user.ID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	activities, err := activityRepo.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, activities)
}

func TestDeleteUser_NotFound(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewUserRepo(pool)

	err := repo.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

// The goals table is optional; without it the count is zero rather than an
// error.
func TestActiveGoalCount_MissingTableIsZero(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewUserRepo(pool)

	user := createTestUser(t, pool, 0)

	count, err := repo.ActiveGoalCount(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}
