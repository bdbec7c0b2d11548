package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Challenge struct {
	ID               uuid.UUID
	Name             string
	Description      string
	Category         string
	TargetReduction  float64
	RewardPoints     int
	StartDate        time.Time
	EndDate          time.Time
	IsActive         bool
	ParticipantCount int
}

type SaveChallengeParams struct {
	Name            string
	Description     string
	Category        string
	TargetReduction float64
	RewardPoints    int
	StartDate       time.Time
	EndDate         time.Time
	IsActive        bool
}

type ChallengeRepository interface {
	List(ctx context.Context) ([]Challenge, error)
	Create(ctx context.Context, params SaveChallengeParams) (*Challenge, error)
	Update(ctx context.Context, challengeID uuid.UUID, params SaveChallengeParams) error
	Delete(ctx context.Context, challengeID uuid.UUID) error
	Count(ctx context.Context) (int, error)
}
