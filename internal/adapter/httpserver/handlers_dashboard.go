package httpserver

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/PrajwalS-26/Sustainability-Tracker/internal/app"
	"github.com/PrajwalS-26/Sustainability-Tracker/internal/domain"
)

type dashboardResponse struct {
	User             dashboardUser       `json:"user"`
	Stats            dashboardStats      `json:"stats"`
	Weekly           weeklySummary       `json:"weekly"`
	RecentActivities []activityResponse  `json:"recent_activities"`
	Breakdown        []breakdownResponse `json:"category_breakdown"`
	Tips             []string            `json:"tips"`
}

type dashboardUser struct {
	ID          string `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	TotalPoints int    `json:"total_points"`
}

type dashboardStats struct {
	TotalActivities int     `json:"total_activities"`
	TotalEmission   float64 `json:"total_emission"`
	ActiveGoals     int     `json:"active_goals"`
}

// weeklySummary carries the scorer outcome. Awarded reports whether this
// request committed the bonus; PointsAward alone never implies a credit.
type weeklySummary struct {
	ThisWeekKg  float64 `json:"this_week_kg"`
	LastWeekKg  float64 `json:"last_week_kg"`
	DeltaKg     float64 `json:"delta_kg"`
	ChangePct   float64 `json:"change_pct"`
	PointsAward int     `json:"points_award"`
	Awarded     bool    `json:"awarded"`
}

type activityResponse struct {
	ID                 string  `json:"id"`
	ActivityName       string  `json:"activity_name"`
	Category           string  `json:"category"`
	Unit               string  `json:"unit"`
	ActivityDate       string  `json:"activity_date"`
	ConsumptionValue   float64 `json:"consumption_value"`
	CalculatedEmission float64 `json:"calculated_emission"`
	PointsEarned       int     `json:"points_earned"`
}

type breakdownResponse struct {
	Category      string  `json:"category"`
	ActivityCount int     `json:"activity_count"`
	TotalEmission float64 `json:"total_emission"`
}

func (s *Server) handleDashboard(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	dashboard, err := s.app.Dashboard(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	if err := c.JSON(http.StatusOK, toDashboardResponse(dashboard)); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func toDashboardResponse(d *app.Dashboard) dashboardResponse {
	recent := make([]activityResponse, 0, len(d.RecentActivities))
	for _, a := range d.RecentActivities {
		recent = append(recent, toActivityResponse(a))
	}

	breakdown := make([]breakdownResponse, 0, len(d.Breakdown))
	for _, b := range d.Breakdown {
		breakdown = append(breakdown, breakdownResponse{
			Category:      b.Category,
			ActivityCount: b.ActivityCount,
			TotalEmission: b.TotalEmission,
		})
	}

	return dashboardResponse{
		User: dashboardUser{
			ID:          d.User.ID.String(),
			FirstName:   d.User.FirstName,
			LastName:    d.User.LastName,
			TotalPoints: d.User.TotalPoints,
		},
		Stats: dashboardStats{
			TotalActivities: d.User.TotalActivities,
			TotalEmission:   d.User.TotalEmission,
			ActiveGoals:     d.ActiveGoals,
		},
		Weekly: weeklySummary{
			ThisWeekKg:  d.Summary.ThisWeek,
			LastWeekKg:  d.Summary.LastWeek,
			DeltaKg:     d.Summary.Delta,
			ChangePct:   d.Summary.ChangePct,
			PointsAward: d.Summary.Award,
			Awarded:     d.Awarded,
		},
		RecentActivities: recent,
		Breakdown:        breakdown,
		Tips:             d.Tips,
	}
}

func toActivityResponse(a domain.ActivityDetail) activityResponse {
	return activityResponse{
		ID:                 a.ID.String(),
		ActivityName:       a.ActivityName,
		Category:           a.Category,
		Unit:               a.Unit,
		ActivityDate:       a.ActivityDate.Format(time.DateOnly),
		ConsumptionValue:   a.ConsumptionValue,
		CalculatedEmission: a.CalculatedEmission,
		PointsEarned:       a.PointsEarned,
	}
}
