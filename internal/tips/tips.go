// Package tips provides the contextual tip source shown on the dashboard.
package tips

import "context"

// StaticSource picks tips from a fixed catalog based on the weekly trend.
// It stands in for an external tip service behind the domain.TipSource
// contract.
type StaticSource struct{}

func NewStaticSource() *StaticSource {
	return &StaticSource{}
}

var (
	improvingTips = []string{
		"Great progress! Keep combining errands into a single trip.",
		"Your emissions are trending down - consider a meat-free day to keep it going.",
		"Nice work this week. Switching to LED bulbs locks in further savings.",
	}
	regressingTips = []string{
		"Emissions went up this week. Public transport on your commute can cut them quickly.",
		"Try lowering your thermostat by one degree - it saves up to 7% of heating emissions.",
		"Batch your laundry into full loads to reduce electricity use.",
	}
	startingTips = []string{
		"Log your daily activities to see where your emissions come from.",
		"Small changes add up: start with one car-free day per week.",
	}
)

func (s *StaticSource) Tips(_ context.Context, thisWeek, lastWeek float64) []string {
	switch {
	case lastWeek == 0 && thisWeek == 0:
		return startingTips
	case lastWeek > thisWeek:
		return improvingTips
	default:
		return regressingTips
	}
}
