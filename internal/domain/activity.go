package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EmissionFactor converts a consumption activity into a CO2 quantity.
type EmissionFactor struct {
	ID           uuid.UUID
	ActivityName string
	Category     string
	Unit         string
	CO2PerUnit   float64
}

// Activity is a single logged consumption event. Immutable once created.
type Activity struct {
	ID                 uuid.UUID
	UserID             uuid.UUID
	FactorID           uuid.UUID
	ActivityDate       time.Time
	ConsumptionValue   float64
	CalculatedEmission float64
	PointsEarned       int
	CreatedAt          time.Time
}

// ActivityDetail is an activity joined with its emission factor, as rendered
// in activity lists.
type ActivityDetail struct {
	Activity
	ActivityName string
	Category     string
	Unit         string
}

// AdminActivity additionally carries the owning user's name for the admin
// overview.
type AdminActivity struct {
	ActivityDetail
	FirstName string
	LastName  string
}

type CategoryBreakdown struct {
	Category      string
	ActivityCount int
	TotalEmission float64
}

type LogActivityParams struct {
	UserID             uuid.UUID
	FactorID           uuid.UUID
	ActivityDate       time.Time
	ConsumptionValue   float64
	CalculatedEmission float64
	PointsEarned       int
}

type ActivityRepository interface {
	// Log inserts the activity and credits PointsEarned to the user's
	// balance in a single transaction.
	Log(ctx context.Context, params LogActivityParams) (*Activity, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]ActivityDetail, error)
	ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]ActivityDetail, error)
	ListRecentGlobal(ctx context.Context, limit int) ([]AdminActivity, error)
	// SumEmissions totals calculated_emission over activity dates in
	// [from, to).
	SumEmissions(ctx context.Context, userID uuid.UUID, from, to time.Time) (float64, error)
	CategoryBreakdown(ctx context.Context, userID uuid.UUID) ([]CategoryBreakdown, error)
	EarnedPoints(ctx context.Context, userID uuid.UUID) (int, error)
	Count(ctx context.Context) (int, error)
}

type FactorRepository interface {
	List(ctx context.Context) ([]EmissionFactor, error)
	GetByID(ctx context.Context, factorID uuid.UUID) (*EmissionFactor, error)
}
