package httpserver

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/PrajwalS-26/Sustainability-Tracker/internal/auth"
	"github.com/PrajwalS-26/Sustainability-Tracker/internal/domain"
	apperrors "github.com/PrajwalS-26/Sustainability-Tracker/internal/platform/errors"
)

// requireAuth verifies the bearer token and stores the caller's identity in
// the request context under "userID" and "userRole".
func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return apperrors.UnauthorizedError("missing bearer token")
		}

		identity, err := s.verifier.Verify(token)
		if errors.Is(err, auth.ErrTokenExpired) {
			return apperrors.UnauthorizedError("token expired")
		}
		if err != nil {
			return apperrors.UnauthorizedError("invalid token")
		}

		c.Set("userID", identity.UserID)
		c.Set("userRole", identity.Role)
		return next(c)
	}
}

func (s *Server) requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		role, _ := c.Get("userRole").(string)
		if role != domain.UserTypeAdmin {
			return apperrors.ForbiddenError("admin access required")
		}
		return next(c)
	}
}

func currentUserID(c echo.Context) (uuid.UUID, error) {
	userID, ok := c.Get("userID").(uuid.UUID)
	if !ok {
		return uuid.Nil, apperrors.InternalError("invalid user ID in context", nil)
	}
	return userID, nil
}
