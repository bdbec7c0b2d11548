// Package scoring implements the weekly emission scorer: trailing-window
// emission sums, the improvement delta, and the bounded bonus-point award.
package scoring

import (
	"fmt"
	"math"
	"time"
)

const (
	// WindowDays is the length of one scoring window.
	WindowDays = 7

	awardScale = 50
	awardMin   = 5
	awardMax   = 50
)

// Windows are half-open: this week covers [now-7d, now), last week covers
// [now-14d, now-7d).
type Windows struct {
	ThisWeekFrom time.Time
	ThisWeekTo   time.Time
	LastWeekFrom time.Time
	LastWeekTo   time.Time
}

func WindowsAt(now time.Time) Windows {
	weekAgo := now.AddDate(0, 0, -WindowDays)
	return Windows{
		ThisWeekFrom: weekAgo,
		ThisWeekTo:   now,
		LastWeekFrom: now.AddDate(0, 0, -2*WindowDays),
		LastWeekTo:   weekAgo,
	}
}

// Summary is the outcome of scoring one user's trailing two weeks.
// Emission values are rounded to two decimal places.
type Summary struct {
	ThisWeek float64
	LastWeek float64
	// Delta is last week minus this week; positive means improvement.
	Delta float64
	// ChangePct is the delta relative to last week, in percent. Zero when
	// last week had no emissions.
	ChangePct float64
	// Award is the tentative bonus for the improvement, bounded to
	// [awardMin, awardMax], zero when there was no improvement. Computing
	// an award does not imply it has been credited.
	Award int
}

// Summarize derives the weekly summary from the two window sums.
func Summarize(thisWeek, lastWeek float64) Summary {
	delta := lastWeek - thisWeek

	s := Summary{
		ThisWeek: Round2(thisWeek),
		LastWeek: Round2(lastWeek),
		Delta:    Round2(delta),
	}

	if lastWeek > 0 {
		s.ChangePct = Round2(delta / lastWeek * 100)

		if delta > 0 {
			award := int(math.Round(delta / lastWeek * awardScale))
			if award < awardMin {
				award = awardMin
			}
			if award > awardMax {
				award = awardMax
			}
			s.Award = award
		}
	}

	return s
}

// WeekKey returns the ISO year-week key used by the once-per-week award
// guard, e.g. "2026-W35".
func WeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
