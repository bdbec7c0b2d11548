package httpserver

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func (s *Server) registerRoutes() {
	s.echo.Use(s.setupRequestLoggerMiddleware())
	s.echo.Use(middleware.Recover())
	s.echo.Use(correlationMiddleware)
	s.echo.Use(ErrorHandlingMiddleware())
	s.echo.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:      "",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		HSTSMaxAge:         63072000, // 2 years; only sent over HTTPS
		HSTSPreloadEnabled: true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}))
	if s.httpMetrics != nil {
		s.echo.Use(s.httpMetrics.Middleware())
	}

	s.registerHealthRoutes()

	api := s.echo.Group("/api", s.requireAuth)
	api.GET("/dashboard", s.handleDashboard)
	api.GET("/profile", s.handleProfile)
	api.GET("/points", s.handlePoints)
	api.GET("/points/earned", s.handlePointsEarned)
	api.GET("/points/spent", s.handlePointsSpent)

	api.GET("/activities", s.handleListActivities)
	api.POST("/activities", s.handleLogActivity)
	api.GET("/emission-factors", s.handleListFactors)
	api.GET("/challenges", s.handleListChallenges)

	api.GET("/rewards", s.handleListRewards)
	api.POST("/rewards/redeem", s.handleRedeemReward)
	api.GET("/rewards/history", s.handleRedemptionHistory)

	admin := api.Group("/admin", s.requireAdmin)
	admin.GET("/stats", s.handleAdminStats)

	admin.GET("/users", s.handleListUsers)
	admin.POST("/users", s.handleCreateUser)
	admin.DELETE("/users/:id", s.handleDeleteUser)

	admin.GET("/rewards", s.handleAdminListRewards)
	admin.POST("/rewards", s.handleCreateReward)
	admin.PUT("/rewards/:id", s.handleUpdateReward)
	admin.DELETE("/rewards/:id", s.handleDeleteReward)

	admin.POST("/challenges", s.handleCreateChallenge)
	admin.PUT("/challenges/:id", s.handleUpdateChallenge)
	admin.DELETE("/challenges/:id", s.handleDeleteChallenge)
}

func (s *Server) setupRequestLoggerMiddleware() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
			}
			if v.Error != nil {
				attrs = append(attrs, "error", v.Error)
			}
			slog.Info("Request", attrs...)
			return nil
		},
	})
}
