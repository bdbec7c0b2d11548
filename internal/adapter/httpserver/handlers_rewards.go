package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/PrajwalS-26/Sustainability-Tracker/internal/domain"
	apperrors "github.com/PrajwalS-26/Sustainability-Tracker/internal/platform/errors"
)

type rewardResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	PointsRequired int    `json:"points_required"`
	StockCount     int    `json:"stock_count"`
}

// redeemResponse is the contract of the redemption endpoint: clients branch
// on success and show message verbatim.
type redeemResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	NewBalance int    `json:"new_balance"`
}

func (s *Server) handleListRewards(c echo.Context) error {
	rewards, err := s.app.ListAvailableRewards(c.Request().Context())
	if err != nil {
		return err
	}

	if err := c.JSON(http.StatusOK, toRewardResponses(rewards)); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

type redeemRequest struct {
	RewardID string `json:"reward_id"`
}

func (s *Server) handleRedeemReward(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req redeemRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	rewardID, err := uuid.Parse(req.RewardID)
	if err != nil {
		return apperrors.ValidationError("invalid reward ID").WithField("reward_id", req.RewardID)
	}

	result, err := s.app.RedeemReward(c.Request().Context(), userID, rewardID)
	if err != nil {
		if message, ok := redeemFailureMessage(err); ok {
			failure := map[string]any{"success": false, "message": message}
			if err := c.JSON(http.StatusBadRequest, failure); err != nil {
				return fmt.Errorf("failed to send JSON response: %w", err)
			}
			return nil
		}
		return err
	}

	response := redeemResponse{
		Success:    true,
		Message:    fmt.Sprintf("Redeemed %s", result.RewardName),
		NewBalance: result.NewBalance,
	}
	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

// redeemFailureMessage translates the expected redemption failures into their
// client-facing messages. Anything else is a server-side error.
func redeemFailureMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, domain.ErrRewardNotFound):
		return "Reward not found", true
	case errors.Is(err, domain.ErrRewardOutOfStock):
		return "Reward out of stock", true
	case errors.Is(err, domain.ErrUserNotFound):
		return "User not found", true
	case errors.Is(err, domain.ErrInsufficientPoints):
		return "Not enough points", true
	default:
		return "", false
	}
}

type redemptionResponse struct {
	ID                string `json:"id"`
	RewardName        string `json:"reward_name"`
	RewardDescription string `json:"reward_description"`
	PointsSpent       int    `json:"points_spent"`
	RedeemedAt        string `json:"redeemed_at"`
}

func (s *Server) handleRedemptionHistory(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	redemptions, err := s.app.RedemptionHistory(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	response := make([]redemptionResponse, 0, len(redemptions))
	for _, r := range redemptions {
		response = append(response, redemptionResponse{
			ID:                r.ID.String(),
			RewardName:        r.RewardName,
			RewardDescription: r.RewardDescription,
			PointsSpent:       r.PointsSpent,
			RedeemedAt:        r.RedeemedAt.Format(time.RFC3339),
		})
	}

	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func toRewardResponses(rewards []domain.Reward) []rewardResponse {
	response := make([]rewardResponse, 0, len(rewards))
	for _, r := range rewards {
		response = append(response, rewardResponse{
			ID:             r.ID.String(),
			Name:           r.Name,
			Description:    r.Description,
			PointsRequired: r.PointsRequired,
			StockCount:     r.StockCount,
		})
	}
	return response
}
