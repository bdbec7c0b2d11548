package domain

import "context"

// TipSource supplies contextual sustainability tips for a user's weekly
// emission trend. Implementations may be static or backed by an external
// service.
type TipSource interface {
	Tips(ctx context.Context, thisWeek, lastWeek float64) []string
}
