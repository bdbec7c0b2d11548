package httpserver

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/labstack/echo/v4"

	"github.com/PrajwalS-26/Sustainability-Tracker/internal/domain"
	"github.com/PrajwalS-26/Sustainability-Tracker/internal/platform/correlation"
	apperrors "github.com/PrajwalS-26/Sustainability-Tracker/internal/platform/errors"
)

func correlationMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := correlation.WithID(c.Request().Context(), correlation.NewID())
		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}

func ErrorHandlingMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err == nil {
				return nil
			}

			var httpErr *echo.HTTPError
			if errors.As(err, &httpErr) {
				return err
			}

			structuredErr := asStructuredError(err)
			logError(c, structuredErr)

			if err := c.JSON(structuredErr.HTTPStatus(), structuredErr.ToResponse()); err != nil {
				return fmt.Errorf("failed to write error response: %w", err)
			}
			return nil
		}
	}
}

// asStructuredError maps known domain errors onto response types before
// falling back to the generic conversion.
func asStructuredError(err error) *apperrors.Error {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return apperrors.NotFoundError("User not found")
	case errors.Is(err, domain.ErrFactorNotFound):
		return apperrors.NotFoundError("Emission factor not found")
	case errors.Is(err, domain.ErrRewardNotFound):
		return apperrors.NotFoundError("Reward not found")
	case errors.Is(err, domain.ErrChallengeNotFound):
		return apperrors.NotFoundError("Challenge not found")
	case errors.Is(err, domain.ErrEmailTaken):
		return apperrors.ConflictError("Email already registered")
	case errors.Is(err, domain.ErrStoreTimeout):
		return apperrors.StoreTimeoutError("The operation took too long, please try again", err)
	default:
		return apperrors.AsStructuredError(err)
	}
}

func logError(c echo.Context, err *apperrors.Error) {
	attrs := []any{
		"error_type", err.Type,
		"message", err.Message,
		"path", c.Request().URL.Path,
		"method", c.Request().Method,
		"status", err.HTTPStatus(),
	}

	for k, v := range err.Context {
		attrs = append(attrs, k, v)
	}

	if userID := c.Get("userID"); userID != nil {
		attrs = append(attrs, "user_id", userID)
	}

	switch err.Type {
	case apperrors.TypeValidation:
		slog.Info("Validation error", attrs...)
	case apperrors.TypeUnauthorized:
		slog.Info("Unauthorized", attrs...)
	case apperrors.TypeForbidden:
		slog.Warn("Forbidden", attrs...)
	case apperrors.TypeNotFound:
		slog.Info("Not found", attrs...)
	case apperrors.TypeConflict:
		slog.Warn("Conflict", attrs...)
	case apperrors.TypeStoreTimeout:
		if err.Cause != nil {
			attrs = append(attrs, "cause", err.Cause)
		}
		slog.Error("Store timeout", attrs...)
	case apperrors.TypeInternal:
		if err.Cause != nil {
			attrs = append(attrs, "cause", err.Cause)
		}
		slog.Error("Internal error", attrs...)
	default:
		slog.Error("Unknown error type", attrs...)
	}
}
