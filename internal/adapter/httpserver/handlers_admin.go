package httpserver

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/PrajwalS-26/Sustainability-Tracker/internal/app"
	"github.com/PrajwalS-26/Sustainability-Tracker/internal/domain"
	apperrors "github.com/PrajwalS-26/Sustainability-Tracker/internal/platform/errors"
)

type adminActivityResponse struct {
	activityResponse
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (s *Server) handleAdminStats(c echo.Context) error {
	ctx := c.Request().Context()

	stats, err := s.app.AdminStats(ctx)
	if err != nil {
		return err
	}

	activities, err := s.app.ListRecentActivities(ctx, 10)
	if err != nil {
		return err
	}

	recent := make([]adminActivityResponse, 0, len(activities))
	for _, a := range activities {
		recent = append(recent, adminActivityResponse{
			activityResponse: toActivityResponse(a.ActivityDetail),
			FirstName:        a.FirstName,
			LastName:         a.LastName,
		})
	}

	response := map[string]any{
		"users":             stats.Users,
		"activities":        stats.Activities,
		"rewards":           stats.Rewards,
		"challenges":        stats.Challenges,
		"recent_activities": recent,
	}
	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

// --- users ---

type userResponse struct {
	ID          string `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	UserType    string `json:"user_type"`
	TotalPoints int    `json:"total_points"`
	DateJoined  string `json:"date_joined"`
}

func toUserResponse(u domain.User) userResponse {
	return userResponse{
		ID:          u.ID.String(),
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		UserType:    u.UserType,
		TotalPoints: u.TotalPoints,
		DateJoined:  u.DateJoined.Format(time.DateOnly),
	}
}

func (s *Server) handleListUsers(c echo.Context) error {
	users, err := s.app.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}

	response := make([]userResponse, 0, len(users))
	for _, u := range users {
		response = append(response, toUserResponse(u))
	}

	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

type createUserRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	UserType  string `json:"user_type"`
}

func (s *Server) handleCreateUser(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	user, err := s.app.CreateUser(c.Request().Context(), app.CreateUserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		UserType:  req.UserType,
	})
	if err != nil {
		return err
	}

	if err := c.JSON(http.StatusCreated, toUserResponse(*user)); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleDeleteUser(c echo.Context) error {
	actorID, err := currentUserID(c)
	if err != nil {
		return err
	}

	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperrors.ValidationError("invalid user ID").WithField("id", c.Param("id"))
	}

	if err := s.app.DeleteUser(c.Request().Context(), actorID, targetID); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// --- rewards ---

type saveRewardRequest struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	PointsRequired int    `json:"points_required"`
	StockCount     int    `json:"stock_count"`
}

func (r saveRewardRequest) toParams() domain.SaveRewardParams {
	return domain.SaveRewardParams{
		Name:           r.Name,
		Description:    r.Description,
		PointsRequired: r.PointsRequired,
		StockCount:     r.StockCount,
	}
}

func (s *Server) handleAdminListRewards(c echo.Context) error {
	rewards, err := s.app.ListAllRewards(c.Request().Context())
	if err != nil {
		return err
	}

	if err := c.JSON(http.StatusOK, toRewardResponses(rewards)); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleCreateReward(c echo.Context) error {
	var req saveRewardRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	reward, err := s.app.CreateReward(c.Request().Context(), req.toParams())
	if err != nil {
		return err
	}

	response := rewardResponse{
		ID:             reward.ID.String(),
		Name:           reward.Name,
		Description:    reward.Description,
		PointsRequired: reward.PointsRequired,
		StockCount:     reward.StockCount,
	}
	if err := c.JSON(http.StatusCreated, response); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleUpdateReward(c echo.Context) error {
	rewardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperrors.ValidationError("invalid reward ID").WithField("id", c.Param("id"))
	}

	var req saveRewardRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	if err := s.app.UpdateReward(c.Request().Context(), rewardID, req.toParams()); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleDeleteReward(c echo.Context) error {
	rewardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperrors.ValidationError("invalid reward ID").WithField("id", c.Param("id"))
	}

	if err := s.app.DeleteReward(c.Request().Context(), rewardID); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// --- challenges ---

type saveChallengeRequest struct {
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	Category        string  `json:"category"`
	TargetReduction float64 `json:"target_reduction"`
	RewardPoints    int     `json:"reward_points"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	IsActive        bool    `json:"is_active"`
}

func (r saveChallengeRequest) toParams() (domain.SaveChallengeParams, error) {
	startDate, err := time.Parse(time.DateOnly, r.StartDate)
	if err != nil {
		return domain.SaveChallengeParams{}, apperrors.ValidationError("start date must be YYYY-MM-DD")
	}
	endDate, err := time.Parse(time.DateOnly, r.EndDate)
	if err != nil {
		return domain.SaveChallengeParams{}, apperrors.ValidationError("end date must be YYYY-MM-DD")
	}

	return domain.SaveChallengeParams{
		Name:            r.Name,
		Description:     r.Description,
		Category:        r.Category,
		TargetReduction: r.TargetReduction,
		RewardPoints:    r.RewardPoints,
		StartDate:       startDate,
		EndDate:         endDate,
		IsActive:        r.IsActive,
	}, nil
}

func (s *Server) handleCreateChallenge(c echo.Context) error {
	var req saveChallengeRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	params, err := req.toParams()
	if err != nil {
		return err
	}

	challenge, err := s.app.CreateChallenge(c.Request().Context(), params)
	if err != nil {
		return err
	}

	response := challengeResponse{
		ID:              challenge.ID.String(),
		Name:            challenge.Name,
		Description:     challenge.Description,
		Category:        challenge.Category,
		TargetReduction: challenge.TargetReduction,
		RewardPoints:    challenge.RewardPoints,
		StartDate:       challenge.StartDate.Format(time.DateOnly),
		EndDate:         challenge.EndDate.Format(time.DateOnly),
		IsActive:        challenge.IsActive,
	}
	if err := c.JSON(http.StatusCreated, response); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleUpdateChallenge(c echo.Context) error {
	challengeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperrors.ValidationError("invalid challenge ID").WithField("id", c.Param("id"))
	}

	var req saveChallengeRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	params, err := req.toParams()
	if err != nil {
		return err
	}

	if err := s.app.UpdateChallenge(c.Request().Context(), challengeID, params); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleDeleteChallenge(c echo.Context) error {
	challengeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperrors.ValidationError("invalid challenge ID").WithField("id", c.Param("id"))
	}

	if err := s.app.DeleteChallenge(c.Request().Context(), challengeID); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
