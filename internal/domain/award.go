package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// WeeklyAward records a committed weekly bonus credit. The (user, week key)
// pair is unique, so a user is credited at most once per calendar week no
// matter how often the dashboard is requested on the award day.
type WeeklyAward struct {
	UserID    uuid.UUID
	WeekKey   string
	Points    int
	AwardedAt time.Time
}

type AwardRepository interface {
	// Grant credits points to the user and records the award for weekKey in
	// one transaction. Returns ErrAwardAlreadyGranted when an award for the
	// same (user, week key) already exists; nothing is mutated in that case.
	Grant(ctx context.Context, userID uuid.UUID, weekKey string, points int) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]WeeklyAward, error)
}
