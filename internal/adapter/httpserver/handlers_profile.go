package httpserver

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

func (s *Server) handleProfile(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	profile, err := s.app.Profile(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	response := map[string]any{
		"id":               profile.User.ID.String(),
		"first_name":       profile.User.FirstName,
		"last_name":        profile.User.LastName,
		"email":            profile.User.Email,
		"user_type":        profile.User.UserType,
		"date_joined":      profile.User.DateJoined.Format(time.DateOnly),
		"total_points":     profile.User.TotalPoints,
		"total_activities": profile.User.TotalActivities,
		"total_emission":   profile.User.TotalEmission,
		"active_goals":     profile.ActiveGoals,
	}
	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handlePoints(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	profile, err := s.app.Profile(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	response := map[string]any{
		"balance":       profile.User.TotalPoints,
		"points_earned": profile.PointsEarned,
		"points_spent":  profile.PointsSpent,
		"award_points":  profile.AwardPoints,
	}
	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handlePointsEarned(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	profile, err := s.app.Profile(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	response := map[string]any{
		"points_earned": profile.PointsEarned,
		"award_points":  profile.AwardPoints,
	}
	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handlePointsSpent(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	profile, err := s.app.Profile(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	response := map[string]any{
		"points_spent": profile.PointsSpent,
	}
	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}
