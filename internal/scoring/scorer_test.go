package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSummarize_NoActivity(t *testing.T) {
	s := Summarize(0, 0)

	assert.Zero(t, s.ThisWeek)
	assert.Zero(t, s.LastWeek)
	assert.Zero(t, s.Delta)
	assert.Zero(t, s.ChangePct)
	assert.Zero(t, s.Award)
}

func TestSummarize_Improvement(t *testing.T) {
	s := Summarize(10, 20)

	assert.Equal(t, 10.0, s.Delta)
	assert.Equal(t, 50.0, s.ChangePct)
	assert.Equal(t, 25, s.Award) // round(10/20 * 50)
}

func TestSummarize_Regression(t *testing.T) {
	s := Summarize(20, 10)

	assert.Equal(t, -10.0, s.Delta)
	assert.Equal(t, -100.0, s.ChangePct)
	assert.Zero(t, s.Award)
}

func TestSummarize_AwardLowerBound(t *testing.T) {
	// 1% improvement rounds to 1, clamps up to 5.
	s := Summarize(99, 100)

	assert.Equal(t, 1.0, s.Delta)
	assert.Equal(t, 5, s.Award)
}

func TestSummarize_AwardUpperBound(t *testing.T) {
	// Full elimination of emissions caps at 50.
	s := Summarize(0, 100)

	assert.Equal(t, 50, s.Award)
}

func TestSummarize_NoLastWeekNoPct(t *testing.T) {
	// First week of activity: no baseline, no award, pct stays zero.
	s := Summarize(42.5, 0)

	assert.Equal(t, 42.5, s.ThisWeek)
	assert.Equal(t, -42.5, s.Delta)
	assert.Zero(t, s.ChangePct)
	assert.Zero(t, s.Award)
}

func TestSummarize_Rounding(t *testing.T) {
	s := Summarize(3.14159, 9.87654)

	assert.Equal(t, 3.14, s.ThisWeek)
	assert.Equal(t, 9.88, s.LastWeek)
	assert.Equal(t, 6.73, s.Delta)
	assert.Equal(t, 68.19, s.ChangePct)
}

func TestWindowsAt(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	w := WindowsAt(now)

	assert.Equal(t, now, w.ThisWeekTo)
	assert.Equal(t, now.AddDate(0, 0, -7), w.ThisWeekFrom)
	assert.Equal(t, w.ThisWeekFrom, w.LastWeekTo)
	assert.Equal(t, now.AddDate(0, 0, -14), w.LastWeekFrom)
}

func TestWeekKey(t *testing.T) {
	// 2026-01-01 falls in ISO week 1 of 2026.
	assert.Equal(t, "2026-W01", WeekKey(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))
	// 2027-01-01 is a Friday belonging to ISO week 53 of 2026.
	assert.Equal(t, "2026-W53", WeekKey(time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)))
}
