package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PrajwalS-26/Sustainability-Tracker/internal/app"
	"github.com/PrajwalS-26/Sustainability-Tracker/internal/domain"
)

func TestRedeemReward_SuccessResponse(t *testing.T) {
	rewardID := uuid.New()
	mock := &mockAppService{
		redeemRewardFn: func(_ context.Context, _, gotRewardID uuid.UUID) (*app.RedemptionResult, error) {
			assert.Equal(t, rewardID, gotRewardID)
			return &app.RedemptionResult{RewardName: "Tote Bag", NewBalance: 60}, nil
		},
	}
	srv := newTestServer(t, mock)

	req := httptest.NewRequest(http.MethodPost, "/api/rewards/redeem", strings.NewReader(`{"reward_id":"`+rewardID.String()+`"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(echo.HeaderAuthorization, bearerToken(t, uuid.New(), domain.UserTypeMember))
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body redeemResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "Redeemed Tote Bag", body.Message)
	assert.Equal(t, 60, body.NewBalance)
}

func TestRedeemReward_FailureMessages(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		message string
	}{
		{"reward not found", domain.ErrRewardNotFound, "Reward not found"},
		{"out of stock", domain.ErrRewardOutOfStock, "Reward out of stock"},
		{"user not found", domain.ErrUserNotFound, "User not found"},
		{"insufficient points", domain.ErrInsufficientPoints, "Not enough points"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockAppService{
				redeemRewardFn: func(_ context.Context, _, _ uuid.UUID) (*app.RedemptionResult, error) {
					return nil, tt.err
				},
			}
			srv := newTestServer(t, mock)

			req := httptest.NewRequest(http.MethodPost, "/api/rewards/redeem", strings.NewReader(`{"reward_id":"`+uuid.NewString()+`"}`))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			req.Header.Set(echo.HeaderAuthorization, bearerToken(t, uuid.New(), domain.UserTypeMember))
			rec := httptest.NewRecorder()
			srv.echo.ServeHTTP(rec, req)

			require.Equal(t, http.StatusBadRequest, rec.Code)

			var body redeemResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
			assert.Equal(t, tt.message, body.Message)
			assert.Zero(t, body.NewBalance)
		})
	}
}

func TestRedeemReward_StoreTimeoutIs504(t *testing.T) {
	mock := &mockAppService{
		redeemRewardFn: func(_ context.Context, _, _ uuid.UUID) (*app.RedemptionResult, error) {
			return nil, domain.ErrStoreTimeout
		},
	}
	srv := newTestServer(t, mock)

	req := httptest.NewRequest(http.MethodPost, "/api/rewards/redeem", strings.NewReader(`{"reward_id":"`+uuid.NewString()+`"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(echo.HeaderAuthorization, bearerToken(t, uuid.New(), domain.UserTypeMember))
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
}

func TestRedeemReward_InvalidRewardID(t *testing.T) {
	srv := newTestServer(t, &mockAppService{})

	req := httptest.NewRequest(http.MethodPost, "/api/rewards/redeem", strings.NewReader(`{"reward_id":"not-a-uuid"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(echo.HeaderAuthorization, bearerToken(t, uuid.New(), domain.UserTypeMember))
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListRewards_ReturnsCatalog(t *testing.T) {
	mock := &mockAppService{
		listAvailableRewardsFn: func(_ context.Context) ([]domain.Reward, error) {
			return []domain.Reward{
				{ID: uuid.New(), Name: "Tote Bag", PointsRequired: 40, StockCount: 3},
				{ID: uuid.New(), Name: "Mug", PointsRequired: 80, StockCount: 1},
			}, nil
		},
	}
	srv := newTestServer(t, mock)

	req := httptest.NewRequest(http.MethodGet, "/api/rewards", nil)
	req.Header.Set(echo.HeaderAuthorization, bearerToken(t, uuid.New(), domain.UserTypeMember))
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body []rewardResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 2)
	assert.Equal(t, "Tote Bag", body[0].Name)
	assert.Equal(t, 40, body[0].PointsRequired)
}
