package httpserver

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/PrajwalS-26/Sustainability-Tracker/internal/app"
	apperrors "github.com/PrajwalS-26/Sustainability-Tracker/internal/platform/errors"
)

type logActivityRequest struct {
	FactorID         string  `json:"factor_id"`
	ActivityDate     string  `json:"activity_date"`
	ConsumptionValue float64 `json:"consumption_value"`
}

func (s *Server) handleLogActivity(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req logActivityRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	factorID, err := uuid.Parse(req.FactorID)
	if err != nil {
		return apperrors.ValidationError("invalid factor ID").WithField("factor_id", req.FactorID)
	}

	activityDate, err := time.Parse(time.DateOnly, req.ActivityDate)
	if err != nil {
		return apperrors.ValidationError("activity date must be YYYY-MM-DD").WithField("activity_date", req.ActivityDate)
	}

	activity, err := s.app.LogActivity(c.Request().Context(), userID, app.LogActivityInput{
		FactorID:         factorID,
		ActivityDate:     activityDate,
		ConsumptionValue: req.ConsumptionValue,
	})
	if err != nil {
		return err
	}

	response := map[string]any{
		"id":                  activity.ID.String(),
		"calculated_emission": activity.CalculatedEmission,
		"points_earned":       activity.PointsEarned,
	}
	if err := c.JSON(http.StatusCreated, response); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleListActivities(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	activities, err := s.app.ListActivities(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	response := make([]activityResponse, 0, len(activities))
	for _, a := range activities {
		response = append(response, toActivityResponse(a))
	}

	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleListFactors(c echo.Context) error {
	factors, err := s.app.ListFactors(c.Request().Context())
	if err != nil {
		return err
	}

	type factorResponse struct {
		ID           string  `json:"id"`
		ActivityName string  `json:"activity_name"`
		Category     string  `json:"category"`
		Unit         string  `json:"unit"`
		CO2PerUnit   float64 `json:"co2_per_unit"`
	}

	response := make([]factorResponse, 0, len(factors))
	for _, f := range factors {
		response = append(response, factorResponse{
			ID:           f.ID.String(),
			ActivityName: f.ActivityName,
			Category:     f.Category,
			Unit:         f.Unit,
			CO2PerUnit:   f.CO2PerUnit,
		})
	}

	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

type challengeResponse struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Description      string  `json:"description"`
	Category         string  `json:"category"`
	TargetReduction  float64 `json:"target_reduction"`
	RewardPoints     int     `json:"reward_points"`
	StartDate        string  `json:"start_date"`
	EndDate          string  `json:"end_date"`
	IsActive         bool    `json:"is_active"`
	ParticipantCount int     `json:"participant_count"`
}

func (s *Server) handleListChallenges(c echo.Context) error {
	challenges, err := s.app.ListChallenges(c.Request().Context())
	if err != nil {
		return err
	}

	response := make([]challengeResponse, 0, len(challenges))
	for _, ch := range challenges {
		response = append(response, challengeResponse{
			ID:               ch.ID.String(),
			Name:             ch.Name,
			Description:      ch.Description,
			Category:         ch.Category,
			TargetReduction:  ch.TargetReduction,
			RewardPoints:     ch.RewardPoints,
			StartDate:        ch.StartDate.Format(time.DateOnly),
			EndDate:          ch.EndDate.Format(time.DateOnly),
			IsActive:         ch.IsActive,
			ParticipantCount: ch.ParticipantCount,
		})
	}

	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}
