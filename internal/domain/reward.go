package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Reward struct {
	ID             uuid.UUID
	Name           string
	Description    string
	PointsRequired int
	StockCount     int
	CreatedAt      time.Time
}

// Redemption is an append-only record of a points-for-stock exchange.
type Redemption struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	RewardID    uuid.UUID
	PointsSpent int
	RedeemedAt  time.Time
}

// RedemptionDetail is a redemption joined with its reward for history lists.
type RedemptionDetail struct {
	Redemption
	RewardName        string
	RewardDescription string
}

type SaveRewardParams struct {
	Name           string
	Description    string
	PointsRequired int
	StockCount     int
}

type RewardRepository interface {
	GetByID(ctx context.Context, rewardID uuid.UUID) (*Reward, error)
	// ListAvailable returns in-stock rewards ordered by points required.
	ListAvailable(ctx context.Context) ([]Reward, error)
	ListAll(ctx context.Context) ([]Reward, error)
	Create(ctx context.Context, params SaveRewardParams) (*Reward, error)
	Update(ctx context.Context, rewardID uuid.UUID, params SaveRewardParams) error
	// Delete removes the reward and cascades its redemptions.
	Delete(ctx context.Context, rewardID uuid.UUID) error
	Count(ctx context.Context) (int, error)

	// Redeem atomically exchanges points_required for one unit of stock.
	// It locks the reward row, then the user row, and either applies the
	// stock decrement, redemption insert, and balance debit together or
	// rolls everything back. Returns the user's new balance.
	// Errors: ErrRewardNotFound, ErrRewardOutOfStock, ErrUserNotFound,
	// ErrInsufficientPoints, ErrStoreTimeout.
	Redeem(ctx context.Context, userID, rewardID uuid.UUID) (int, error)
}

type RedemptionRepository interface {
	// ListByUser returns redemptions newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]RedemptionDetail, error)
	SpentPoints(ctx context.Context, userID uuid.UUID) (int, error)
}
