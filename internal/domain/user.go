package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	UserTypeMember = "member"
	UserTypeAdmin  = "admin"
)

type User struct {
	ID           uuid.UUID
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	UserType     string
	// TotalPoints is the persistent points ledger: credited by activity
	// logging and weekly awards, debited by redemptions. Never negative
	// after a committed redemption.
	TotalPoints int
	DateJoined  time.Time
}

func (u *User) IsAdmin() bool {
	return u.UserType == UserTypeAdmin
}

// UserWithStats is a user joined with lifetime activity aggregates, as shown
// on the dashboard header.
type UserWithStats struct {
	User
	TotalActivities int
	TotalEmission   float64
}

type CreateUserParams struct {
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	UserType     string
}

type UserRepository interface {
	GetByID(ctx context.Context, userID uuid.UUID) (*User, error)
	GetWithStats(ctx context.Context, userID uuid.UUID) (*UserWithStats, error)
	List(ctx context.Context) ([]User, error)
	Create(ctx context.Context, params CreateUserParams) (*User, error)
	Delete(ctx context.Context, userID uuid.UUID) error
	Count(ctx context.Context) (int, error)
	// ActiveGoalCount reports unachieved goals for a user. A deployment
	// without the optional goals table reports zero rather than an error.
	ActiveGoalCount(ctx context.Context, userID uuid.UUID) (int, error)
}
