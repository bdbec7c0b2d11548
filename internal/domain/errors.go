package domain

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrFactorNotFound     = errors.New("emission factor not found")
	ErrRewardNotFound     = errors.New("reward not found")
	ErrRewardOutOfStock   = errors.New("reward out of stock")
	ErrInsufficientPoints = errors.New("not enough points")
	ErrChallengeNotFound  = errors.New("challenge not found")
	ErrEmailTaken         = errors.New("email already registered")

	// ErrAwardAlreadyGranted signals that the (user, week) uniqueness guard
	// rejected a second weekly credit.
	ErrAwardAlreadyGranted = errors.New("weekly award already granted")

	// ErrStoreTimeout distinguishes statement/transaction timeouts from other
	// store failures.
	ErrStoreTimeout = errors.New("store operation timed out")
)
